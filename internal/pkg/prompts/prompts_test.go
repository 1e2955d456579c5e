package prompts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyhub/internal/app/models"
)

func TestQuizFromText(t *testing.T) {
	text := "Photosynthesis converts light energy into chemical energy."
	p := QuizFromText("Biology", text, models.DifficultyMedium)

	assert.Contains(t, p, `"Biology"`)
	assert.Contains(t, p, text)
	assert.Contains(t, p, "Difficulty: medium")
	assert.Contains(t, p, "exactly 10 multiple-choice questions")
	assert.Contains(t, p, "Return ONLY a valid JSON array")
	assert.Equal(t, p, QuizFromText("Biology", text, models.DifficultyMedium))
}

func TestQuizFromAttachment(t *testing.T) {
	img := QuizFromAttachment("Chemistry", models.DifficultyHard, "image/png")
	doc := QuizFromAttachment("Chemistry", models.DifficultyHard, "application/pdf")

	assert.Contains(t, img, "Analyze this image")
	assert.Contains(t, doc, "Analyze this PDF document")
	assert.Contains(t, doc, "Difficulty: hard")
}

func TestRecommendations(t *testing.T) {
	data := models.StudyData{
		Sessions: models.SessionStats{
			Total:      1,
			TotalHours: 1.5,
			Subjects:   []models.SubjectStudy{{Subject: "Math", TotalMinutes: 90, SessionCount: 1, TotalHours: 1.5}},
			RecentActivity: []models.RecentActivity{
				{Subject: "Math", Date: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), Duration: 90},
			},
		},
	}

	p, err := Recommendations(data)
	require.NoError(t, err)

	assert.Contains(t, p, `"subject": "Math"`)
	assert.Contains(t, p, "Study Goals:\n[]")
	assert.Contains(t, p, "5-7 specific")
	for _, c := range RecommendationCategories {
		assert.Contains(t, p, c)
	}
	assert.Contains(t, p, "high, medium, or low")
}
