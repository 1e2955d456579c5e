// Package modeloutput turns raw model text into validated records.
// Output is decoded loosely, checked, and only then projected into typed values.
package modeloutput

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/logger"
)

const questionSchema = `{
  "type": "object",
  "required": ["question", "options", "correctAnswer"],
  "properties": {
    "question": {"type": "string", "pattern": "\\S"},
    "options": {
      "type": "array",
      "minItems": 4,
      "maxItems": 4,
      "items": {"type": "string"}
    },
    "correctAnswer": {"type": "integer", "minimum": 0, "maximum": 3},
    "explanation": {"type": ["string", "null"]}
  }
}`

var (
	questionValidator = mustSchema(questionSchema)

	leadingFence  = regexp.MustCompile("^```[A-Za-z0-9_-]*[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\r?\n?```$")
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return s
}

// StripFences removes surrounding whitespace and a markdown code fence, labeled or not
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// decodeArray parses the cleaned text and requires a top-level array
func decodeArray(raw string) ([]interface{}, error) {
	var value interface{}
	if err := json.Unmarshal([]byte(StripFences(raw)), &value); err != nil {
		return nil, apperrors.NewMalformedResponseError(err)
	}

	items, ok := value.([]interface{})
	if !ok {
		return nil, &apperrors.ResponseValidationError{Index: -1, Reason: "top-level value must be a JSON array"}
	}
	return items, nil
}

// ParseQuestions validates a quiz batch. One bad item rejects the whole batch.
func ParseQuestions(raw string) ([]models.Question, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &apperrors.ResponseValidationError{Index: -1, Reason: "no questions returned"}
	}

	for i, item := range items {
		if err := validateQuestion(item); err != nil {
			return nil, &apperrors.ResponseValidationError{Index: i, Reason: err.Error()}
		}
	}

	questions := make([]models.Question, 0, len(items))
	for i, item := range items {
		q, err := projectQuestion(item)
		if err != nil {
			return nil, &apperrors.ResponseValidationError{Index: i, Reason: err.Error()}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func validateQuestion(item interface{}) error {
	result, err := questionValidator.Validate(gojsonschema.NewGoLoader(item))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		reasons = append(reasons, e.String())
	}
	return fmt.Errorf("%s", strings.Join(reasons, "; "))
}

// projectQuestion copies a schema-valid item into the typed record
func projectQuestion(item interface{}) (models.Question, error) {
	var q models.Question
	buf, err := json.Marshal(item)
	if err != nil {
		return q, err
	}
	if err := json.Unmarshal(buf, &q); err != nil {
		return q, err
	}
	return q, nil
}

// ParseRecommendations checks only that the reply is an array. Object items
// are projected as-is; anything else is dropped.
func ParseRecommendations(raw string) ([]models.Recommendation, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}

	recs := make([]models.Recommendation, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			logger.Warn().Int("index", i).Msg("Dropping non-object recommendation item")
			continue
		}
		recs = append(recs, models.Recommendation{
			Category:    stringField(obj, "category"),
			Title:       stringField(obj, "title"),
			Description: stringField(obj, "description"),
			Priority:    stringField(obj, "priority"),
		})
	}
	return recs, nil
}

func stringField(obj map[string]interface{}, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}
