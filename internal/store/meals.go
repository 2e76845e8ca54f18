package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const mealPlanCols = `id, user_id, baby_id, age_months, meal_name, ingredients, instructions, nutrition_notes, created_at`

// CreateMealPlan saves a meal idea for one of the user's babies.
// Ingredients and instructions are stored as JSONB arrays.
func (s *Store) CreateMealPlan(ctx context.Context, userID uuid.UUID, m MealPlan) (*MealPlan, error) {
	if err := s.ownsBaby(ctx, userID, m.BabyID); err != nil {
		return nil, err
	}

	ingredients, err := marshalStrings(m.Ingredients, "ingredients")
	if err != nil {
		return nil, err
	}
	instructions, err := marshalStrings(m.Instructions, "instructions")
	if err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO meal_plans (user_id, baby_id, age_months, meal_name, ingredients, instructions, nutrition_notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+mealPlanCols,
		userID, m.BabyID, m.AgeMonths, m.MealName, ingredients, instructions, m.NutritionNotes)

	created, err := scanMealPlan(row)
	if err != nil {
		return nil, fmt.Errorf("creating meal plan: %w", err)
	}
	return created, nil
}

// ListMealPlans returns the user's meal plans newest first, optionally
// filtered by baby and exact age in months.
func (s *Store) ListMealPlans(ctx context.Context, userID uuid.UUID, babyID *uuid.UUID, ageMonths *int) ([]MealPlan, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+mealPlanCols+` FROM meal_plans
		 WHERE user_id = $1
		   AND ($2::uuid IS NULL OR baby_id = $2)
		   AND ($3::int IS NULL OR age_months = $3)
		 ORDER BY created_at DESC LIMIT $4`,
		userID, babyID, ageMonths, listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing meal plans: %w", err)
	}
	defer rows.Close()

	var plans []MealPlan
	for rows.Next() {
		p, err := scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning meal plan: %w", err)
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func marshalStrings(values []string, field string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", field, err)
	}
	return data, nil
}

func scanMealPlan(row interface{ Scan(...any) error }) (*MealPlan, error) {
	var (
		p            MealPlan
		ingredients  []byte
		instructions []byte
	)
	err := row.Scan(&p.ID, &p.UserID, &p.BabyID, &p.AgeMonths, &p.MealName,
		&ingredients, &instructions, &p.NutritionNotes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ingredients, &p.Ingredients); err != nil {
		return nil, fmt.Errorf("decoding ingredients: %w", err)
	}
	if err := json.Unmarshal(instructions, &p.Instructions); err != nil {
		return nil, fmt.Errorf("decoding instructions: %w", err)
	}
	return &p, nil
}
