package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindForMIME(t *testing.T) {
	tests := map[string]UploadKind{
		"image/png":          UploadKindImage,
		"image/jpg":          UploadKindImage,
		"application/pdf":    UploadKindPDF,
		"text/plain":         UploadKindDocument,
		"text/markdown":      UploadKindDocument,
		"application/zip":    UploadKindOther,
		"":                   UploadKindOther,
		"application/msword": UploadKindOther,
	}
	for mime, want := range tests {
		assert.Equal(t, want, KindForMIME(mime), mime)
	}
}

func TestStudySessionDerivedFields(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s := StudySession{StartTime: start, EndTime: start.Add(90 * time.Minute)}

	assert.Equal(t, 90, s.DurationMinutes())
	assert.Equal(t, "2024-01-01", s.Date())

	s.EndTime = start.Add(29*time.Second + 10*time.Minute)
	assert.Equal(t, 10, s.DurationMinutes())
	s.EndTime = start.Add(30*time.Second + 10*time.Minute)
	assert.Equal(t, 11, s.DurationMinutes())
}

func TestGoalWindowStart(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	weekly := Goal{Period: GoalPeriodWeekly}
	assert.Equal(t, time.Date(2024, 3, 24, 12, 0, 0, 0, time.UTC), weekly.WindowStart(now))

	monthly := Goal{Period: GoalPeriodMonthly}
	// Go normalises Feb 31 to Mar 2
	assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), monthly.WindowStart(now))
}

func TestEnums(t *testing.T) {
	assert.True(t, DifficultyHard.Valid())
	assert.False(t, Difficulty("extreme").Valid())
	assert.True(t, GoalPeriodMonthly.Valid())
	assert.False(t, GoalPeriod("daily").Valid())
}
