package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBabyAgeMonths(t *testing.T) {
	t.Parallel()

	birth := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	baby := Baby{BirthDate: birth}

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"on birth date", birth, 0},
		{"day before one month", time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), 0},
		{"exactly one month", time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), 1},
		{"six months", time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), 6},
		{"across year boundary", time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), 10},
		{"one year", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 12},
		{"before birth clamps to zero", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, baby.AgeMonths(tt.at))
		})
	}
}
