package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Baby-scoped activity records. Every operation first checks that the baby
// belongs to the calling user; a failed check surfaces as ErrNotFound so
// the API cannot leak whether another user's baby ID exists.

// listLimit caps activity listings; clients paginate by before-timestamp.
const listLimit = 100

// --- Feedings ---

const feedingCols = `id, baby_id, feeding_type, started_at, ended_at, amount_ml, breast_side, notes, created_at`

// CreateFeeding records a feeding for one of the user's babies.
func (s *Store) CreateFeeding(ctx context.Context, userID uuid.UUID, f Feeding) (*Feeding, error) {
	if err := s.ownsBaby(ctx, userID, f.BabyID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO feedings (baby_id, feeding_type, started_at, ended_at, amount_ml, breast_side, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+feedingCols,
		f.BabyID, f.Type, f.StartedAt, f.EndedAt, f.AmountML, f.BreastSide, f.Notes)

	created, err := scanFeeding(row)
	if err != nil {
		return nil, fmt.Errorf("creating feeding: %w", err)
	}
	return created, nil
}

// ListFeedings returns the user's feedings newest first, up to listLimit,
// optionally filtered to one baby.
func (s *Store) ListFeedings(ctx context.Context, userID uuid.UUID, babyID *uuid.UUID) ([]Feeding, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT f.id, f.baby_id, f.feeding_type, f.started_at, f.ended_at, f.amount_ml, f.breast_side, f.notes, f.created_at
		 FROM feedings f JOIN babies b ON f.baby_id = b.id
		 WHERE b.user_id = $1 AND ($2::uuid IS NULL OR f.baby_id = $2)
		 ORDER BY f.started_at DESC LIMIT $3`,
		userID, babyID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing feedings: %w", err)
	}
	defer rows.Close()

	var feedings []Feeding
	for rows.Next() {
		f, err := scanFeeding(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning feeding: %w", err)
		}
		feedings = append(feedings, *f)
	}
	return feedings, rows.Err()
}

// DeleteFeeding removes a feeding record.
func (s *Store) DeleteFeeding(ctx context.Context, userID, feedingID uuid.UUID) error {
	return s.deleteBabyRecord(ctx, userID, feedingID, "feedings")
}

func scanFeeding(row interface{ Scan(...any) error }) (*Feeding, error) {
	var f Feeding
	err := row.Scan(&f.ID, &f.BabyID, &f.Type, &f.StartedAt, &f.EndedAt,
		&f.AmountML, &f.BreastSide, &f.Notes, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// --- Diapers ---

const diaperCols = `id, baby_id, diaper_type, changed_at, notes, created_at`

// CreateDiaper records a diaper change.
func (s *Store) CreateDiaper(ctx context.Context, userID uuid.UUID, d Diaper) (*Diaper, error) {
	if err := s.ownsBaby(ctx, userID, d.BabyID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO diapers (baby_id, diaper_type, changed_at, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+diaperCols,
		d.BabyID, d.Type, d.ChangedAt, d.Notes)

	var created Diaper
	err := row.Scan(&created.ID, &created.BabyID, &created.Type,
		&created.ChangedAt, &created.Notes, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating diaper record: %w", err)
	}
	return &created, nil
}

// ListDiapers returns the user's diaper changes newest first, optionally
// filtered to one baby.
func (s *Store) ListDiapers(ctx context.Context, userID uuid.UUID, babyID *uuid.UUID) ([]Diaper, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT d.id, d.baby_id, d.diaper_type, d.changed_at, d.notes, d.created_at
		 FROM diapers d JOIN babies b ON d.baby_id = b.id
		 WHERE b.user_id = $1 AND ($2::uuid IS NULL OR d.baby_id = $2)
		 ORDER BY d.changed_at DESC LIMIT $3`,
		userID, babyID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing diapers: %w", err)
	}
	defer rows.Close()

	var diapers []Diaper
	for rows.Next() {
		var d Diaper
		if err := rows.Scan(&d.ID, &d.BabyID, &d.Type, &d.ChangedAt, &d.Notes, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning diaper record: %w", err)
		}
		diapers = append(diapers, d)
	}
	return diapers, rows.Err()
}

// DeleteDiaper removes a diaper record.
func (s *Store) DeleteDiaper(ctx context.Context, userID, diaperID uuid.UUID) error {
	return s.deleteBabyRecord(ctx, userID, diaperID, "diapers")
}

// --- Sleep ---

const sleepCols = `id, baby_id, started_at, ended_at, location, notes, created_at`

// StartSleep begins a sleep session with no end time.
func (s *Store) StartSleep(ctx context.Context, userID uuid.UUID, sess SleepSession) (*SleepSession, error) {
	if err := s.ownsBaby(ctx, userID, sess.BabyID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO sleep_sessions (baby_id, started_at, ended_at, location, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+sleepCols,
		sess.BabyID, sess.StartedAt, sess.EndedAt, sess.Location, sess.Notes)

	created, err := scanSleep(row)
	if err != nil {
		return nil, fmt.Errorf("creating sleep session: %w", err)
	}
	return created, nil
}

// EndSleep sets the end time on an open sleep session.
func (s *Store) EndSleep(ctx context.Context, userID, sleepID uuid.UUID, endedAt time.Time) (*SleepSession, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE sleep_sessions ss SET ended_at = $3
		 FROM babies b
		 WHERE ss.id = $1 AND ss.baby_id = b.id AND b.user_id = $2 AND ss.ended_at IS NULL
		 RETURNING ss.id, ss.baby_id, ss.started_at, ss.ended_at, ss.location, ss.notes, ss.created_at`,
		sleepID, userID, endedAt)

	sess, err := scanSleep(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "ending sleep session")
	}
	return sess, nil
}

// ListSleep returns the user's sleep sessions newest first, optionally
// filtered to one baby.
func (s *Store) ListSleep(ctx context.Context, userID uuid.UUID, babyID *uuid.UUID) ([]SleepSession, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT ss.id, ss.baby_id, ss.started_at, ss.ended_at, ss.location, ss.notes, ss.created_at
		 FROM sleep_sessions ss JOIN babies b ON ss.baby_id = b.id
		 WHERE b.user_id = $1 AND ($2::uuid IS NULL OR ss.baby_id = $2)
		 ORDER BY ss.started_at DESC LIMIT $3`,
		userID, babyID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing sleep sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SleepSession
	for rows.Next() {
		sess, err := scanSleep(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sleep session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// DeleteSleep removes a sleep session.
func (s *Store) DeleteSleep(ctx context.Context, userID, sleepID uuid.UUID) error {
	return s.deleteBabyRecord(ctx, userID, sleepID, "sleep_sessions")
}

func scanSleep(row interface{ Scan(...any) error }) (*SleepSession, error) {
	var sess SleepSession
	err := row.Scan(&sess.ID, &sess.BabyID, &sess.StartedAt, &sess.EndedAt,
		&sess.Location, &sess.Notes, &sess.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// --- Pumpings (user-scoped, not tied to a baby) ---

const pumpingCols = `id, user_id, pumped_at, amount_ml, breast_side, duration_minutes, notes, created_at`

// CreatePumping records a pumping session for the user.
func (s *Store) CreatePumping(ctx context.Context, userID uuid.UUID, p Pumping) (*Pumping, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO pumpings (user_id, pumped_at, amount_ml, breast_side, duration_minutes, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+pumpingCols,
		userID, p.PumpedAt, p.AmountML, p.BreastSide, p.DurationMinutes, p.Notes)

	var created Pumping
	err := row.Scan(&created.ID, &created.UserID, &created.PumpedAt, &created.AmountML,
		&created.BreastSide, &created.DurationMinutes, &created.Notes, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating pumping record: %w", err)
	}
	return &created, nil
}

// ListPumpings returns the user's pumping records newest first.
func (s *Store) ListPumpings(ctx context.Context, userID uuid.UUID) ([]Pumping, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pumpingCols+` FROM pumpings
		 WHERE user_id = $1 ORDER BY pumped_at DESC LIMIT $2`,
		userID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing pumpings: %w", err)
	}
	defer rows.Close()

	var pumpings []Pumping
	for rows.Next() {
		var p Pumping
		err := rows.Scan(&p.ID, &p.UserID, &p.PumpedAt, &p.AmountML,
			&p.BreastSide, &p.DurationMinutes, &p.Notes, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning pumping record: %w", err)
		}
		pumpings = append(pumpings, p)
	}
	return pumpings, rows.Err()
}

// DeletePumping removes a pumping record owned by the user.
func (s *Store) DeletePumping(ctx context.Context, userID, pumpingID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM pumpings WHERE id = $1 AND user_id = $2`, pumpingID, userID)
	if err != nil {
		return fmt.Errorf("deleting pumping record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Measurements ---

const measurementCols = `id, baby_id, measured_at, weight_kg, height_cm, head_circumference_cm, notes, created_at`

// CreateMeasurement records a growth measurement.
func (s *Store) CreateMeasurement(ctx context.Context, userID uuid.UUID, m Measurement) (*Measurement, error) {
	if err := s.ownsBaby(ctx, userID, m.BabyID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO measurements (baby_id, measured_at, weight_kg, height_cm, head_circumference_cm, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+measurementCols,
		m.BabyID, m.MeasuredAt, m.WeightKG, m.HeightCM, m.HeadCircumferenceCM, m.Notes)

	var created Measurement
	err := row.Scan(&created.ID, &created.BabyID, &created.MeasuredAt, &created.WeightKG,
		&created.HeightCM, &created.HeadCircumferenceCM, &created.Notes, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating measurement: %w", err)
	}
	return &created, nil
}

// ListMeasurements returns the user's measurements newest first, optionally
// filtered to one baby.
func (s *Store) ListMeasurements(ctx context.Context, userID uuid.UUID, babyID *uuid.UUID) ([]Measurement, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.id, m.baby_id, m.measured_at, m.weight_kg, m.height_cm, m.head_circumference_cm, m.notes, m.created_at
		 FROM measurements m JOIN babies b ON m.baby_id = b.id
		 WHERE b.user_id = $1 AND ($2::uuid IS NULL OR m.baby_id = $2)
		 ORDER BY m.measured_at DESC LIMIT $3`,
		userID, babyID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing measurements: %w", err)
	}
	defer rows.Close()

	var measurements []Measurement
	for rows.Next() {
		var m Measurement
		err := rows.Scan(&m.ID, &m.BabyID, &m.MeasuredAt, &m.WeightKG,
			&m.HeightCM, &m.HeadCircumferenceCM, &m.Notes, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning measurement: %w", err)
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

// DeleteMeasurement removes a measurement record.
func (s *Store) DeleteMeasurement(ctx context.Context, userID, measurementID uuid.UUID) error {
	return s.deleteBabyRecord(ctx, userID, measurementID, "measurements")
}

// --- Milestones ---

const milestoneCols = `id, baby_id, title, achieved_at, category, notes, created_at`

// CreateMilestone records a developmental milestone.
func (s *Store) CreateMilestone(ctx context.Context, userID uuid.UUID, m Milestone) (*Milestone, error) {
	if err := s.ownsBaby(ctx, userID, m.BabyID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO milestones (baby_id, title, achieved_at, category, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+milestoneCols,
		m.BabyID, m.Title, m.AchievedAt, m.Category, m.Notes)

	var created Milestone
	err := row.Scan(&created.ID, &created.BabyID, &created.Title,
		&created.AchievedAt, &created.Category, &created.Notes, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating milestone: %w", err)
	}
	return &created, nil
}

// ListMilestones returns the user's milestones newest first, optionally
// filtered to one baby.
func (s *Store) ListMilestones(ctx context.Context, userID uuid.UUID, babyID *uuid.UUID) ([]Milestone, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.id, m.baby_id, m.title, m.achieved_at, m.category, m.notes, m.created_at
		 FROM milestones m JOIN babies b ON m.baby_id = b.id
		 WHERE b.user_id = $1 AND ($2::uuid IS NULL OR m.baby_id = $2)
		 ORDER BY m.achieved_at DESC LIMIT $3`,
		userID, babyID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var milestones []Milestone
	for rows.Next() {
		var m Milestone
		err := rows.Scan(&m.ID, &m.BabyID, &m.Title, &m.AchievedAt,
			&m.Category, &m.Notes, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// DeleteMilestone removes a milestone record.
func (s *Store) DeleteMilestone(ctx context.Context, userID, milestoneID uuid.UUID) error {
	return s.deleteBabyRecord(ctx, userID, milestoneID, "milestones")
}

// deleteBabyRecord deletes one row from a baby-scoped table, enforcing
// ownership through the babies join. The table name is always one of the
// package's own constants, never caller input.
func (s *Store) deleteBabyRecord(ctx context.Context, userID, recordID uuid.UUID, table string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM `+table+` t USING babies b
		 WHERE t.id = $1 AND t.baby_id = b.id AND b.user_id = $2`,
		recordID, userID)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
