package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appAuth "github.com/yigit/studyhub/internal/app/auth"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/gemini"
	"github.com/yigit/studyhub/internal/pkg/modeloutput"
	"github.com/yigit/studyhub/internal/pkg/prompts"
	"github.com/yigit/studyhub/internal/pkg/validation"
)

// QuizTitleDateLayout renders the generation date in quiz titles
const QuizTitleDateLayout = "1/2/2006"

// QuizService generates, grades and manages quizzes
type QuizService struct {
	quizRepo   QuizRepository
	resultRepo QuizResultRepository
	uploadRepo UploadRepository
	extractor  ContentExtractor
	generator  gemini.Generator
	now        Clock
	logger     zerolog.Logger
}

// NewQuizService creates a new QuizService
func NewQuizService(
	quizRepo QuizRepository,
	resultRepo QuizResultRepository,
	uploadRepo UploadRepository,
	extractor ContentExtractor,
	generator gemini.Generator,
	now Clock,
	logger zerolog.Logger,
) *QuizService {
	return &QuizService{
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		uploadRepo: uploadRepo,
		extractor:  extractor,
		generator:  generator,
		now:        now,
		logger:     logger,
	}
}

func duplicateQuizError(quizID int64) error {
	return apperrors.NewDuplicateError("Quiz already exists for this upload", map[string]interface{}{"quizId": quizID})
}

// Generate builds a quiz from an upload. At most one quiz exists per
// (user, upload); a second request fails with a duplicate error naming it.
func (s *QuizService) Generate(ctx context.Context, userID int64, req *dto.GenerateQuizRequest) (*models.Quiz, error) {
	subject := strings.TrimSpace(req.Subject)
	if !validation.ValidSubject(subject) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Upload ID and subject are required")
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !difficulty.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Difficulty must be easy, medium or hard")
	}

	upload, err := s.uploadRepo.GetByID(ctx, req.UploadID)
	if err != nil {
		return nil, err
	}
	if err := appAuth.EnsureOwner("upload", upload.ID, upload.UserID, userID); err != nil {
		return nil, err
	}

	existing, err := s.quizRepo.GetByUserAndUpload(ctx, userID, upload.ID)
	switch {
	case err == nil:
		return nil, duplicateQuizError(existing.ID)
	case !errors.Is(err, apperrors.ErrQuizNotFound):
		return nil, fmt.Errorf("check existing quiz: %w", err)
	}

	input, err := s.extractor.Extract(ctx, upload)
	if err != nil {
		s.logger.Warn().Err(err).Int64("uploadID", upload.ID).Msg("Content extraction failed")
		return nil, err
	}

	var prompt string
	if input.Attachment != nil {
		prompt = prompts.QuizFromAttachment(subject, difficulty, input.Attachment.MIMEType)
	} else {
		prompt = prompts.QuizFromText(subject, input.Text, difficulty)
	}

	raw, err := s.generator.Generate(ctx, prompt, input.Attachment)
	if err != nil {
		s.logger.Error().Err(err).Int64("uploadID", upload.ID).Msg("Quiz generation call failed")
		return nil, err
	}

	questions, err := modeloutput.ParseQuestions(raw)
	if err != nil {
		s.logger.Warn().Err(err).Int64("uploadID", upload.ID).Msg("Model returned an unusable quiz")
		return nil, err
	}

	quiz := &models.Quiz{
		UserID:         userID,
		UploadID:       upload.ID,
		Subject:        subject,
		Title:          fmt.Sprintf("%s Quiz - %s", subject, s.now().Format(QuizTitleDateLayout)),
		Questions:      questions,
		Difficulty:     difficulty,
		TotalQuestions: len(questions),
	}

	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			// A concurrent request for the same upload committed first
			winner, getErr := s.quizRepo.GetByUserAndUpload(ctx, userID, upload.ID)
			if getErr != nil {
				return nil, fmt.Errorf("load concurrently created quiz: %w", getErr)
			}
			return nil, duplicateQuizError(winner.ID)
		}
		return nil, err
	}

	s.logger.Info().Int64("quizID", quiz.ID).Int64("uploadID", upload.ID).Int("questions", quiz.TotalQuestions).Msg("Quiz generated")
	return quiz, nil
}

// List returns the user's quizzes newest first, optionally for one subject
func (s *QuizService) List(ctx context.Context, userID int64, subject string) ([]*models.QuizSummary, error) {
	return s.quizRepo.ListByUser(ctx, userID, strings.TrimSpace(subject))
}

// Get returns a quiz with its questions
func (s *QuizService) Get(ctx context.Context, userID, quizID int64) (*models.Quiz, error) {
	return s.ownedQuiz(ctx, userID, quizID)
}

// Delete removes a quiz together with its results
func (s *QuizService) Delete(ctx context.Context, userID, quizID int64) error {
	quiz, err := s.ownedQuiz(ctx, userID, quizID)
	if err != nil {
		return err
	}
	return s.quizRepo.DeleteWithResults(ctx, quiz.ID)
}

// Submit grades and stores a submission. It always persists, even with no answers.
func (s *QuizService) Submit(ctx context.Context, userID, quizID int64, req *dto.SubmitQuizRequest) (*models.QuizResult, error) {
	quiz, err := s.ownedQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	result, err := Grade(quiz, req)
	if err != nil {
		return nil, err
	}
	result.UserID = userID

	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("quizID", quiz.ID).Int("score", result.Score).Int("percentage", result.Percentage).Msg("Quiz submitted")
	return result, nil
}

// Results returns prior submissions of a quiz, newest first
func (s *QuizService) Results(ctx context.Context, userID, quizID int64) ([]*models.QuizResult, error) {
	quiz, err := s.ownedQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	return s.resultRepo.ListByQuiz(ctx, quiz.ID)
}

func (s *QuizService) ownedQuiz(ctx context.Context, userID, quizID int64) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := appAuth.EnsureOwner("quiz", quiz.ID, quiz.UserID, userID); err != nil {
		return nil, err
	}
	return quiz, nil
}
