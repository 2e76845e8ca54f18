package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const babyCols = `id, user_id, name, birth_date, gender, created_at, updated_at`

// CreateBaby adds a child profile for the given user.
func (s *Store) CreateBaby(ctx context.Context, userID uuid.UUID, name string, birthDate time.Time, gender string) (*Baby, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO babies (user_id, name, birth_date, gender)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+babyCols,
		userID, name, birthDate, gender)

	b, err := scanBaby(row)
	if err != nil {
		return nil, fmt.Errorf("creating baby: %w", err)
	}

	s.logger.Info("baby profile created", "baby_id", b.ID, "user_id", userID)
	return b, nil
}

// GetBaby fetches one of the user's babies. Returns ErrNotFound for a baby
// that does not exist or belongs to a different user.
func (s *Store) GetBaby(ctx context.Context, userID, babyID uuid.UUID) (*Baby, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+babyCols+` FROM babies WHERE id = $1 AND user_id = $2`,
		babyID, userID)

	b, err := scanBaby(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "getting baby")
	}
	return b, nil
}

// ListBabies returns all of the user's babies, oldest first.
func (s *Store) ListBabies(ctx context.Context, userID uuid.UUID) ([]Baby, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+babyCols+` FROM babies WHERE user_id = $1 ORDER BY birth_date, created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("listing babies: %w", err)
	}
	defer rows.Close()

	var babies []Baby
	for rows.Next() {
		b, err := scanBaby(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning baby: %w", err)
		}
		babies = append(babies, *b)
	}
	return babies, rows.Err()
}

// UpdateBaby updates a baby's profile fields.
func (s *Store) UpdateBaby(ctx context.Context, userID, babyID uuid.UUID, name string, birthDate time.Time, gender string) (*Baby, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE babies SET name = $3, birth_date = $4, gender = $5, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+babyCols,
		babyID, userID, name, birthDate, gender)

	b, err := scanBaby(row)
	if err != nil {
		return nil, notFoundIfNoRows(err, "updating baby")
	}
	return b, nil
}

// DeleteBaby removes a baby profile and, via cascade, all its activity records.
func (s *Store) DeleteBaby(ctx context.Context, userID, babyID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM babies WHERE id = $1 AND user_id = $2`, babyID, userID)
	if err != nil {
		return fmt.Errorf("deleting baby: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.logger.Info("baby profile deleted", "baby_id", babyID, "user_id", userID)
	return nil
}

// ownsBaby reports whether the baby exists and belongs to the user.
func (s *Store) ownsBaby(ctx context.Context, userID, babyID uuid.UUID) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM babies WHERE id = $1 AND user_id = $2)`,
		babyID, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking baby ownership: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func scanBaby(row interface{ Scan(...any) error }) (*Baby, error) {
	var b Baby
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.BirthDate, &b.Gender,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
