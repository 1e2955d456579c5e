// Package prompts builds the instruction text sent to the generative model.
// Every builder is pure: the same input always yields the same prompt.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yigit/studyhub/internal/app/models"
)

// QuestionCount is how many questions a quiz prompt asks for
const QuestionCount = 10

const quizOutputContract = `Requirements:
- Difficulty: %s
- Each question must have 4 options
- Exactly one option is correct; correctAnswer is its zero-based index (0-3)
- Include a short explanation of why the correct answer is right
- Return ONLY a valid JSON array in this format:
[
  {
    "question": "Question text",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Why this answer is correct"
  }
]`

// QuizFromText asks for a quiz grounded in extracted note text
func QuizFromText(subject, text string, difficulty models.Difficulty) string {
	var b strings.Builder
	b.WriteString("You are an expert teacher creating educational quizzes.\n")
	fmt.Fprintf(&b, "Based on the following study notes about %q:\n\n", subject)
	b.WriteString(text)
	fmt.Fprintf(&b, "\n\nGenerate exactly %d multiple-choice questions that test understanding of key concepts.\n\n", QuestionCount)
	fmt.Fprintf(&b, quizOutputContract, difficulty)
	return b.String()
}

// QuizFromAttachment asks for a quiz about an inline image or PDF sent alongside
func QuizFromAttachment(subject string, difficulty models.Difficulty, mimeType string) string {
	source := "image"
	if mimeType == "application/pdf" {
		source = "PDF document"
	}

	var b strings.Builder
	b.WriteString("You are an expert teacher creating educational quizzes.\n")
	fmt.Fprintf(&b, "Analyze this %s which contains study notes about %q.\n\n", source, subject)
	fmt.Fprintf(&b, "Extract key concepts and generate exactly %d multiple-choice questions.\n\n", QuestionCount)
	fmt.Fprintf(&b, quizOutputContract, difficulty)
	return b.String()
}

// RecommendationCategories are the categories the model may choose from
var RecommendationCategories = []string{
	"weak_subjects",
	"time_management",
	"consistency",
	"goal_setting",
	"learning_technique",
	"motivation",
}

// Recommendations asks for coaching advice over a study summary
func Recommendations(data models.StudyData) (string, error) {
	sessions, err := json.MarshalIndent(data.Sessions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sessions summary: %w", err)
	}
	results, err := json.MarshalIndent(data.QuizResults, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal quiz summary: %w", err)
	}
	goals := data.Goals
	if goals == nil {
		goals = []models.GoalBrief{}
	}
	goalsJSON, err := json.MarshalIndent(goals, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal goals: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are an AI study coach analyzing a student's learning patterns.\n\n")
	fmt.Fprintf(&b, "Study Sessions Data:\n%s\n\n", sessions)
	fmt.Fprintf(&b, "Quiz Results:\n%s\n\n", results)
	fmt.Fprintf(&b, "Study Goals:\n%s\n\n", goalsJSON)
	b.WriteString(`Analyze this data and provide 5-7 specific, actionable recommendations to improve their learning.

Focus on:
1. Weak subjects (based on quiz scores and study time)
2. Study time optimization
3. Consistency improvements
4. Goal achievement strategies
5. Learning techniques
6. Time management

Return ONLY a valid JSON array in this exact format (no markdown, no extra text):
[
  {
    "category": "weak_subjects",
    "title": "Focus more on Physics",
    "description": "Your quiz scores in Physics are below average. Consider spending 2 more hours per week on this subject.",
    "priority": "high"
  }
]

`)
	fmt.Fprintf(&b, "Categories should be one of: %s\n", strings.Join(RecommendationCategories, ", "))
	b.WriteString("Priority should be: high, medium, or low")
	return b.String(), nil
}
