package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// defaultWidgets is the layout created for users who never customized theirs.
var defaultWidgets = []Widget{
	{ID: "recent-feedings", Type: "feedings", Position: 0},
	{ID: "recent-diapers", Type: "diapers", Position: 1},
	{ID: "sleep-overview", Type: "sleep", Position: 2},
	{ID: "growth-chart", Type: "measurements", Position: 3},
}

// AvailableWidgetTypes lists every widget type a dashboard may contain.
var AvailableWidgetTypes = []string{
	"feedings", "diapers", "sleep", "pumpings",
	"measurements", "milestones", "reminders", "meal_plans",
}

// ErrUnknownWidgetType is returned when adding a widget of a type not in
// AvailableWidgetTypes.
var ErrUnknownWidgetType = errors.New("store: unknown widget type")

// GetDashboardLayout fetches the user's layout, creating the default one
// on first access.
func (s *Store) GetDashboardLayout(ctx context.Context, userID uuid.UUID) (*DashboardLayout, error) {
	var (
		raw       []byte
		updatedAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT layout, updated_at FROM dashboard_layouts WHERE user_id = $1`,
		userID).Scan(&raw, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.ReplaceDashboardLayout(ctx, userID, defaultWidgets)
	}
	if err != nil {
		return nil, fmt.Errorf("getting dashboard layout: %w", err)
	}

	layout := DashboardLayout{UserID: userID, UpdatedAt: updatedAt}
	if err := json.Unmarshal(raw, &layout.Widgets); err != nil {
		return nil, fmt.Errorf("decoding dashboard layout: %w", err)
	}
	return &layout, nil
}

// ReplaceDashboardLayout overwrites the user's layout wholesale.
func (s *Store) ReplaceDashboardLayout(ctx context.Context, userID uuid.UUID, widgets []Widget) (*DashboardLayout, error) {
	if widgets == nil {
		widgets = []Widget{}
	}
	raw, err := json.Marshal(widgets)
	if err != nil {
		return nil, fmt.Errorf("encoding dashboard layout: %w", err)
	}

	var updatedAt time.Time
	err = s.pool.QueryRow(ctx,
		`INSERT INTO dashboard_layouts (user_id, layout, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET layout = EXCLUDED.layout, updated_at = now()
		 RETURNING updated_at`,
		userID, raw).Scan(&updatedAt)
	if err != nil {
		return nil, fmt.Errorf("saving dashboard layout: %w", err)
	}

	return &DashboardLayout{UserID: userID, Widgets: widgets, UpdatedAt: updatedAt}, nil
}

// AddWidget appends a widget of the given type to the user's dashboard.
func (s *Store) AddWidget(ctx context.Context, userID uuid.UUID, widgetType string) (*DashboardLayout, error) {
	known := false
	for _, t := range AvailableWidgetTypes {
		if t == widgetType {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidgetType, widgetType)
	}

	layout, err := s.GetDashboardLayout(ctx, userID)
	if err != nil {
		return nil, err
	}

	layout.Widgets = append(layout.Widgets, Widget{
		ID:       uuid.NewString(),
		Type:     widgetType,
		Position: len(layout.Widgets),
	})
	return s.ReplaceDashboardLayout(ctx, userID, layout.Widgets)
}

// RemoveWidget deletes a widget by ID and renumbers the remainder.
// Returns ErrNotFound when the widget is not on the dashboard.
func (s *Store) RemoveWidget(ctx context.Context, userID uuid.UUID, widgetID string) (*DashboardLayout, error) {
	layout, err := s.GetDashboardLayout(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := layout.Widgets[:0]
	found := false
	for _, w := range layout.Widgets {
		if w.ID == widgetID {
			found = true
			continue
		}
		w.Position = len(kept)
		kept = append(kept, w)
	}
	if !found {
		return nil, ErrNotFound
	}
	return s.ReplaceDashboardLayout(ctx, userID, kept)
}

// DashboardSummary builds today's activity overview for one baby.
// "Today" is computed in UTC.
func (s *Store) DashboardSummary(ctx context.Context, userID, babyID uuid.UUID) (*DashboardSummary, error) {
	baby, err := s.GetBaby(ctx, userID, babyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	summary := DashboardSummary{
		Baby:      *baby,
		AgeMonths: baby.AgeMonths(now),
	}

	err = s.pool.QueryRow(ctx,
		`SELECT
		     (SELECT count(*) FROM feedings WHERE baby_id = $1 AND started_at >= $2),
		     (SELECT count(*) FROM diapers WHERE baby_id = $1 AND changed_at >= $2),
		     (SELECT count(*) FROM sleep_sessions WHERE baby_id = $1 AND started_at >= $2)`,
		babyID, dayStart).Scan(&summary.FeedingsToday, &summary.DiapersToday, &summary.SleepToday)
	if err != nil {
		return nil, fmt.Errorf("counting today's activity: %w", err)
	}

	feeding, err := scanFeeding(s.pool.QueryRow(ctx,
		`SELECT `+feedingCols+` FROM feedings WHERE baby_id = $1 ORDER BY started_at DESC LIMIT 1`, babyID))
	switch {
	case err == nil:
		summary.LatestFeeding = feeding
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("latest feeding: %w", err)
	}

	var d Diaper
	err = s.pool.QueryRow(ctx,
		`SELECT `+diaperCols+` FROM diapers WHERE baby_id = $1 ORDER BY changed_at DESC LIMIT 1`, babyID).
		Scan(&d.ID, &d.BabyID, &d.Type, &d.ChangedAt, &d.Notes, &d.CreatedAt)
	switch {
	case err == nil:
		summary.LatestDiaper = &d
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("latest diaper: %w", err)
	}

	sleep, err := scanSleep(s.pool.QueryRow(ctx,
		`SELECT `+sleepCols+` FROM sleep_sessions WHERE baby_id = $1 ORDER BY started_at DESC LIMIT 1`, babyID))
	switch {
	case err == nil:
		summary.LatestSleep = sleep
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("latest sleep: %w", err)
	}

	var m Milestone
	err = s.pool.QueryRow(ctx,
		`SELECT `+milestoneCols+` FROM milestones WHERE baby_id = $1 ORDER BY achieved_at DESC LIMIT 1`, babyID).
		Scan(&m.ID, &m.BabyID, &m.Title, &m.AchievedAt, &m.Category, &m.Notes, &m.CreatedAt)
	switch {
	case err == nil:
		summary.LatestMilestone = &m
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("latest milestone: %w", err)
	}

	return &summary, nil
}
