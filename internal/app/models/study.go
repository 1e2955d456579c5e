package models

import (
	"math"
	"time"
)

// DateLayout is how session dates are rendered
const DateLayout = "2006-01-02"

// StudySession is a logged block of study time
type StudySession struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Subject   string    `json:"subject" db:"subject"`
	StartTime time.Time `json:"startTime" db:"start_time"`
	EndTime   time.Time `json:"endTime" db:"end_time"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// DurationMinutes is round((end-start)/60000ms)
func (s StudySession) DurationMinutes() int {
	return int(math.Round(s.EndTime.Sub(s.StartTime).Minutes()))
}

// Date is the start date as YYYY-MM-DD
func (s StudySession) Date() string {
	return s.StartTime.Format(DateLayout)
}

// Goal is a study-hours target for a subject over a trailing period
type Goal struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"userId" db:"user_id"`
	Subject     string     `json:"subject" db:"subject"`
	TargetHours float64    `json:"targetHours" db:"target_hours"`
	Period      GoalPeriod `json:"period" db:"period"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// WindowStart is the earliest session start counted towards the goal
func (g Goal) WindowStart(now time.Time) time.Time {
	if g.Period == GoalPeriodMonthly {
		return now.AddDate(0, -1, 0)
	}
	return now.AddDate(0, 0, -7)
}
