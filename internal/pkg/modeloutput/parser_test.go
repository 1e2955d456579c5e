package modeloutput

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

func validItem(i int) map[string]interface{} {
	return map[string]interface{}{
		"question":      fmt.Sprintf("Question %d?", i),
		"options":       []string{"A", "B", "C", "D"},
		"correctAnswer": i % 4,
		"explanation":   "because",
	}
}

func batch(t *testing.T, items []map[string]interface{}) string {
	t.Helper()
	buf, err := json.Marshal(items)
	require.NoError(t, err)
	return string(buf)
}

func tenValid() []map[string]interface{} {
	items := make([]map[string]interface{}, 10)
	for i := range items {
		items[i] = validItem(i)
	}
	return items
}

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		"```json\n[1]\n```":   "[1]",
		"```\n[1]\n```":       "[1]",
		"  ```JSON\n[1]```  ": "[1]",
		"```json[1]```":       "[1]",
		"[1]":                 "[1]",
		"\n[1]\n":             "[1]",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripFences(in), in)
	}
}

func TestParseQuestions_Valid(t *testing.T) {
	raw := "```json\n" + batch(t, tenValid()) + "\n```"

	qs, err := ParseQuestions(raw)
	require.NoError(t, err)
	require.Len(t, qs, 10)
	assert.Equal(t, "Question 3?", qs[3].Question)
	assert.Equal(t, 3, qs[3].CorrectAnswer)
	assert.Equal(t, []string{"A", "B", "C", "D"}, qs[3].Options)
	assert.Equal(t, "because", qs[3].Explanation)
}

func TestParseQuestions_ExplanationOptional(t *testing.T) {
	item := validItem(0)
	delete(item, "explanation")

	qs, err := ParseQuestions(batch(t, []map[string]interface{}{item}))
	require.NoError(t, err)
	assert.Empty(t, qs[0].Explanation)
}

func TestParseQuestions_NullExplanation(t *testing.T) {
	raw := "```\n[{\"question\":\"Q\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correctAnswer\":3,\"explanation\":null}]\n```"

	qs, err := ParseQuestions(raw)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, 3, qs[0].CorrectAnswer)
	assert.Empty(t, qs[0].Explanation)
}

func TestParseQuestions_RejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"three options", func(m map[string]interface{}) { m["options"] = []string{"A", "B", "C"} }},
		{"five options", func(m map[string]interface{}) { m["options"] = []string{"A", "B", "C", "D", "E"} }},
		{"answer out of range", func(m map[string]interface{}) { m["correctAnswer"] = 4 }},
		{"negative answer", func(m map[string]interface{}) { m["correctAnswer"] = -1 }},
		{"fractional answer", func(m map[string]interface{}) { m["correctAnswer"] = 1.5 }},
		{"answer as string", func(m map[string]interface{}) { m["correctAnswer"] = "1" }},
		{"blank question", func(m map[string]interface{}) { m["question"] = "   " }},
		{"missing question", func(m map[string]interface{}) { delete(m, "question") }},
		{"options not array", func(m map[string]interface{}) { m["options"] = "A,B,C,D" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := tenValid()
			tt.mutate(items[3])

			qs, err := ParseQuestions(batch(t, items))
			assert.Nil(t, qs)
			assert.ErrorIs(t, err, apperrors.ErrResponseValidation)

			var rv *apperrors.ResponseValidationError
			require.True(t, errors.As(err, &rv))
			assert.Equal(t, 3, rv.Index)
		})
	}
}

func TestParseQuestions_ReportsFirstBadIndex(t *testing.T) {
	items := tenValid()
	items[7]["correctAnswer"] = 9
	items[2]["options"] = []string{}

	_, err := ParseQuestions(batch(t, items))
	var rv *apperrors.ResponseValidationError
	require.True(t, errors.As(err, &rv))
	assert.Equal(t, 2, rv.Index)
}

func TestParseQuestions_Malformed(t *testing.T) {
	for _, raw := range []string{"", "Sure! Here is your quiz:", "```json\n[{\"question\": \n```", "[1,2"} {
		_, err := ParseQuestions(raw)
		assert.ErrorIs(t, err, apperrors.ErrMalformedResponse, raw)
	}
}

func TestParseQuestions_NotAnArrayOrEmpty(t *testing.T) {
	for _, raw := range []string{`{"questions": []}`, `"text"`, `[]`} {
		_, err := ParseQuestions(raw)
		var rv *apperrors.ResponseValidationError
		require.True(t, errors.As(err, &rv), raw)
		assert.Equal(t, -1, rv.Index)
	}
}

func TestParseRecommendations(t *testing.T) {
	raw := "```json\n" + `[
  {"category": "weak_subjects", "title": "Focus on Physics", "description": "d", "priority": "high"},
  {"title": "No category"},
  "stray string",
  {"category": 5, "title": "t"}
]` + "\n```"

	recs, err := ParseRecommendations(raw)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "weak_subjects", recs[0].Category)
	assert.Equal(t, "high", recs[0].Priority)
	assert.Equal(t, "No category", recs[1].Title)
	assert.Empty(t, recs[1].Category)
	assert.Empty(t, recs[2].Category)
}

func TestParseRecommendations_Errors(t *testing.T) {
	_, err := ParseRecommendations("not json")
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)

	_, err = ParseRecommendations(`{"recommendations": []}`)
	assert.ErrorIs(t, err, apperrors.ErrResponseValidation)

	recs, err := ParseRecommendations(strings.TrimSpace(" [] "))
	require.NoError(t, err)
	assert.Empty(t, recs)
}
