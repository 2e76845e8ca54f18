package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const foodCheckCols = `id, user_id, baby_id, food_item, age_months, is_safe, safety_notes, checked_at`

// RecordFoodSafetyCheck logs an LLM food safety assessment. Ownership of
// the baby is verified first.
func (s *Store) RecordFoodSafetyCheck(ctx context.Context, userID uuid.UUID, c FoodSafetyCheck) (*FoodSafetyCheck, error) {
	if err := s.ownsBaby(ctx, userID, c.BabyID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO food_safety_checks (user_id, baby_id, food_item, age_months, is_safe, safety_notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+foodCheckCols,
		userID, c.BabyID, c.FoodItem, c.AgeMonths, c.IsSafe, c.SafetyNotes)

	created, err := scanFoodCheck(row)
	if err != nil {
		return nil, fmt.Errorf("recording food safety check: %w", err)
	}
	return created, nil
}

// ListFoodSafetyChecks returns the user's past assessments newest first,
// optionally filtered to one baby.
func (s *Store) ListFoodSafetyChecks(ctx context.Context, userID uuid.UUID, babyID *uuid.UUID) ([]FoodSafetyCheck, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+foodCheckCols+` FROM food_safety_checks
		 WHERE user_id = $1 AND ($2::uuid IS NULL OR baby_id = $2)
		 ORDER BY checked_at DESC LIMIT $3`,
		userID, babyID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing food safety checks: %w", err)
	}
	defer rows.Close()

	var checks []FoodSafetyCheck
	for rows.Next() {
		c, err := scanFoodCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning food safety check: %w", err)
		}
		checks = append(checks, *c)
	}
	return checks, rows.Err()
}

func scanFoodCheck(row interface{ Scan(...any) error }) (*FoodSafetyCheck, error) {
	var c FoodSafetyCheck
	err := row.Scan(&c.ID, &c.UserID, &c.BabyID, &c.FoodItem, &c.AgeMonths,
		&c.IsSafe, &c.SafetyNotes, &c.CheckedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
