package store

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	DisplayName   string    `json:"display_name"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Baby is a child profile owned by a user.
type Baby struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgeMonths returns the baby's age in whole months at the given time.
func (b Baby) AgeMonths(at time.Time) int {
	months := (at.Year()-b.BirthDate.Year())*12 + int(at.Month()) - int(b.BirthDate.Month())
	if at.Day() < b.BirthDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// Feeding is a single bottle, breast, or solid feeding record.
type Feeding struct {
	ID         uuid.UUID  `json:"id"`
	BabyID     uuid.UUID  `json:"baby_id"`
	Type       string     `json:"feeding_type"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	AmountML   *float64   `json:"amount_ml,omitempty"`
	BreastSide *string    `json:"breast_side,omitempty"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Diaper is a diaper change record.
type Diaper struct {
	ID        uuid.UUID `json:"id"`
	BabyID    uuid.UUID `json:"baby_id"`
	Type      string    `json:"diaper_type"`
	ChangedAt time.Time `json:"changed_at"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// SleepSession is a single sleep record; EndedAt is nil while ongoing.
type SleepSession struct {
	ID        uuid.UUID  `json:"id"`
	BabyID    uuid.UUID  `json:"baby_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Location  string     `json:"location"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

// Pumping is a breast milk pumping record, owned by the user directly.
type Pumping struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"-"`
	PumpedAt        time.Time `json:"pumped_at"`
	AmountML        float64   `json:"amount_ml"`
	BreastSide      string    `json:"breast_side"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// Measurement is a growth measurement snapshot.
type Measurement struct {
	ID                  uuid.UUID `json:"id"`
	BabyID              uuid.UUID `json:"baby_id"`
	MeasuredAt          time.Time `json:"measured_at"`
	WeightKG            *float64  `json:"weight_kg,omitempty"`
	HeightCM            *float64  `json:"height_cm,omitempty"`
	HeadCircumferenceCM *float64  `json:"head_circumference_cm,omitempty"`
	Notes               string    `json:"notes"`
	CreatedAt           time.Time `json:"created_at"`
}

// Milestone is a developmental milestone record.
type Milestone struct {
	ID         uuid.UUID `json:"id"`
	BabyID     uuid.UUID `json:"baby_id"`
	Title      string    `json:"title"`
	AchievedAt time.Time `json:"achieved_at"`
	Category   string    `json:"category"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Reminder is a user-scheduled reminder, optionally tied to a baby.
// A non-nil IntervalHours makes the reminder recurring.
type Reminder struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"-"`
	BabyID        *uuid.UUID `json:"baby_id,omitempty"`
	Title         string     `json:"title"`
	RemindAt      time.Time  `json:"remind_at"`
	IntervalHours *int       `json:"interval_hours,omitempty"`
	Notified      bool       `json:"notified"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// MealPlan is a saved meal idea for one baby at a given age.
type MealPlan struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"-"`
	BabyID         uuid.UUID `json:"baby_id"`
	AgeMonths      int       `json:"age_months"`
	MealName       string    `json:"meal_name"`
	Ingredients    []string  `json:"ingredients"`
	Instructions   []string  `json:"instructions"`
	NutritionNotes *string   `json:"nutrition_notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// FoodSafetyCheck is a logged LLM food safety assessment for one baby.
type FoodSafetyCheck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	BabyID      uuid.UUID `json:"baby_id"`
	FoodItem    string    `json:"food_item"`
	AgeMonths   int       `json:"age_months"`
	IsSafe      bool      `json:"is_safe"`
	SafetyNotes string    `json:"safety_notes"`
	CheckedAt   time.Time `json:"checked_at"`
}

// Widget is one tile on a user's dashboard.
type Widget struct {
	ID       string `json:"id"`
	Type     string `json:"widget_type"`
	Position int    `json:"position"`
}

// DashboardLayout is a user's dashboard widget arrangement.
type DashboardLayout struct {
	UserID    uuid.UUID `json:"-"`
	Widgets   []Widget  `json:"widgets"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DashboardSummary aggregates a baby's activity for the summary endpoint.
type DashboardSummary struct {
	Baby            Baby          `json:"baby"`
	AgeMonths       int           `json:"age_months"`
	FeedingsToday   int           `json:"feedings_today"`
	DiapersToday    int           `json:"diapers_today"`
	SleepToday      int           `json:"sleep_sessions_today"`
	LatestFeeding   *Feeding      `json:"latest_feeding,omitempty"`
	LatestDiaper    *Diaper       `json:"latest_diaper,omitempty"`
	LatestSleep     *SleepSession `json:"latest_sleep,omitempty"`
	LatestMilestone *Milestone    `json:"latest_milestone,omitempty"`
}
