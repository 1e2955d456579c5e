package models

import "strings"

// UploadKind classifies an upload by how its content is extracted
type UploadKind string

const (
	UploadKindImage    UploadKind = "image"
	UploadKindPDF      UploadKind = "pdf"
	UploadKindDocument UploadKind = "document"
	UploadKindOther    UploadKind = "other"
)

// KindForMIME derives the kind once, at upload time
func KindForMIME(mimeType string) UploadKind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return UploadKindImage
	case mimeType == "application/pdf":
		return UploadKindPDF
	case strings.HasPrefix(mimeType, "text/"):
		return UploadKindDocument
	default:
		return UploadKindOther
	}
}

// Difficulty of a generated quiz
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// GoalPeriod is the trailing window a goal is measured over
type GoalPeriod string

const (
	GoalPeriodWeekly  GoalPeriod = "weekly"
	GoalPeriodMonthly GoalPeriod = "monthly"
)

// Valid reports whether p is weekly or monthly
func (p GoalPeriod) Valid() bool {
	return p == GoalPeriodWeekly || p == GoalPeriodMonthly
}
