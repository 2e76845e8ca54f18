package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const reminderCols = `id, user_id, baby_id, title, remind_at, interval_hours, notified, notes, created_at, updated_at`

// CreateReminder schedules a reminder for the user. When the reminder is
// tied to a baby, ownership of the baby is verified first.
func (s *Store) CreateReminder(ctx context.Context, userID uuid.UUID, r Reminder) (*Reminder, error) {
	if r.BabyID != nil {
		if err := s.ownsBaby(ctx, userID, *r.BabyID); err != nil {
			return nil, err
		}
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO reminders (user_id, baby_id, title, remind_at, interval_hours, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+reminderCols,
		userID, r.BabyID, r.Title, r.RemindAt, r.IntervalHours, r.Notes)

	created, err := scanReminder(row)
	if err != nil {
		return nil, fmt.Errorf("creating reminder: %w", err)
	}
	return created, nil
}

// ListReminders returns the user's reminders ordered by due time.
func (s *Store) ListReminders(ctx context.Context, userID uuid.UUID) ([]Reminder, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+reminderCols+` FROM reminders
		 WHERE user_id = $1 ORDER BY remind_at LIMIT $2`,
		userID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reminder: %w", err)
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}

// GetReminder returns one reminder owned by the user.
func (s *Store) GetReminder(ctx context.Context, userID, reminderID uuid.UUID) (*Reminder, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+reminderCols+` FROM reminders WHERE id = $1 AND user_id = $2`,
		reminderID, userID)

	r, err := scanReminder(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "getting reminder")
	}
	return r, nil
}

// UpdateReminder replaces a reminder's editable fields.
func (s *Store) UpdateReminder(ctx context.Context, userID uuid.UUID, r Reminder) (*Reminder, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE reminders SET title = $3, remind_at = $4, interval_hours = $5, notes = $6, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+reminderCols,
		r.ID, userID, r.Title, r.RemindAt, r.IntervalHours, r.Notes)

	updated, err := scanReminder(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "updating reminder")
	}
	return updated, nil
}

// MarkReminderNotified acknowledges a fired reminder. A recurring reminder
// (interval_hours set) advances its due time by the interval and stays
// pending; a one-shot reminder is marked notified.
func (s *Store) MarkReminderNotified(ctx context.Context, userID, reminderID uuid.UUID) (*Reminder, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE reminders SET
		     remind_at = CASE WHEN interval_hours IS NOT NULL
		         THEN remind_at + make_interval(hours => interval_hours)
		         ELSE remind_at END,
		     notified = (interval_hours IS NULL),
		     updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+reminderCols,
		reminderID, userID)

	r, err := scanReminder(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "marking reminder notified")
	}
	return r, nil
}

// DeleteReminder removes a reminder owned by the user.
func (s *Store) DeleteReminder(ctx context.Context, userID, reminderID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM reminders WHERE id = $1 AND user_id = $2`, reminderID, userID)
	if err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReminder(row interface{ Scan(...any) error }) (*Reminder, error) {
	var r Reminder
	err := row.Scan(&r.ID, &r.UserID, &r.BabyID, &r.Title, &r.RemindAt,
		&r.IntervalHours, &r.Notified, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
