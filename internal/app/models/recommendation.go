package models

import "time"

// Recommendation is one study tip produced by the model. Fields are passed
// through as received, so any of them may be empty.
type Recommendation struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// StudyData is the aggregate history the recommendation prompt is built from
type StudyData struct {
	Sessions    SessionStats `json:"sessions"`
	QuizResults QuizStats    `json:"quizResults"`
	Goals       []GoalBrief  `json:"goals"`
}

// SessionStats summarises recent study sessions
type SessionStats struct {
	Total          int              `json:"total"`
	TotalHours     float64          `json:"totalHours"`
	Subjects       []SubjectStudy   `json:"subjects"`
	RecentActivity []RecentActivity `json:"recentActivity"`
}

// SubjectStudy is study time for one subject
type SubjectStudy struct {
	Subject      string  `json:"subject"`
	TotalMinutes int     `json:"totalMinutes"`
	SessionCount int     `json:"sessionCount"`
	TotalHours   float64 `json:"totalHours"`
}

// RecentActivity is one session in the recent list
type RecentActivity struct {
	Subject  string    `json:"subject"`
	Date     time.Time `json:"date"`
	Duration int       `json:"duration"`
}

// QuizStats summarises recent quiz results
type QuizStats struct {
	Total        int            `json:"total"`
	BySubject    []SubjectScore `json:"bySubject"`
	RecentScores []RecentScore  `json:"recentScores"`
}

// SubjectScore is the rounded mean percentage for one subject
type SubjectScore struct {
	Subject      string `json:"subject"`
	TotalQuizzes int    `json:"totalQuizzes"`
	AverageScore int    `json:"averageScore"`
}

// RecentScore is one result in the recent list
type RecentScore struct {
	Subject    string    `json:"subject"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	Date       time.Time `json:"date"`
}

// GoalBrief is the part of a goal the model sees
type GoalBrief struct {
	Subject     string     `json:"subject"`
	TargetHours float64    `json:"targetHours"`
	Period      GoalPeriod `json:"period"`
}
