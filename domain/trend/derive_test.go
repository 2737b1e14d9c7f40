package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDirection(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected Direction
	}{
		{"empty", nil, DirectionUnknown},
		{"single point", []float64{42}, DirectionUnknown},
		{"steady climb", []float64{10, 20, 30, 40, 50, 60, 70}, DirectionRising},
		{"steady decline", []float64{70, 60, 50, 40, 30, 20, 10}, DirectionFalling},
		{"flat", []float64{50, 50, 50, 50, 50}, DirectionStable},
		{"noise without drift", []float64{50, 52, 48, 51, 49, 50, 51, 50}, DirectionStable},
		{"late spike", []float64{10, 10, 11, 10, 12, 40, 80}, DirectionRising},
		{"all zero", []float64{0, 0, 0, 0}, DirectionStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveDirection(tt.values))
		})
	}
}

func TestDeriveDirection_Deterministic(t *testing.T) {
	values := []float64{5, 9, 3, 14, 22, 18, 31}
	first := DeriveDirection(values)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveDirection(values))
	}
}
