package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   float64
	}{
		{1.234, 2, 1.23},
		{1.235, 1, 1.2},
		{2.25, 1, 2.3},
		{0.5, 0, 1},
		{66.66666, 1, 66.7},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundTo(tt.value, tt.places), 1e-9)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 70, Percentage(7, 10))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 0, Percentage(0, 10))
	assert.Equal(t, 0, Percentage(3, 0))
}

func TestMinutesToHours(t *testing.T) {
	assert.Equal(t, 1.5, MinutesToHours(90, 1))
	assert.Equal(t, 0.33, MinutesToHours(20, 2))
}
