package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/gemini"
	"github.com/yigit/studyhub/internal/pkg/helpers"
	"github.com/yigit/studyhub/internal/pkg/modeloutput"
	"github.com/yigit/studyhub/internal/pkg/prompts"
)

// Windows of history the recommendation summary is built from
const (
	RecommendationSessionWindow = 50
	RecommendationResultWindow  = 20
	recentActivityCount         = 10
	recentScoreCount            = 5
)

// StarterRecommendations are returned to users with no sessions and no quiz results
var StarterRecommendations = []models.Recommendation{
	{
		Category:    "getting_started",
		Title:       "Start Your Learning Journey",
		Description: "Begin by logging your first study session or taking a quiz to get personalized recommendations.",
		Priority:    "high",
	},
	{
		Category:    "goal_setting",
		Title:       "Set Your First Goal",
		Description: "Define clear study goals to help track your progress and stay motivated.",
		Priority:    "high",
	},
}

// RecommendationService turns a user's study history into model-written tips
type RecommendationService struct {
	sessionRepo StudySessionRepository
	resultRepo  QuizResultRepository
	goalRepo    GoalRepository
	generator   gemini.Generator
	logger      zerolog.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(
	sessionRepo StudySessionRepository,
	resultRepo QuizResultRepository,
	goalRepo GoalRepository,
	generator gemini.Generator,
	logger zerolog.Logger,
) *RecommendationService {
	return &RecommendationService{
		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,
		goalRepo:    goalRepo,
		generator:   generator,
		logger:      logger,
	}
}

// Generate summarises recent history and asks the model for recommendations.
// Nothing is persisted. Users without any history get StarterRecommendations
// and no model call is made.
func (s *RecommendationService) Generate(ctx context.Context, userID int64) (*dto.RecommendationResponse, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID, RecommendationSessionWindow)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.ListRecentWithSubject(ctx, userID, RecommendationResultWindow)
	if err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(sessions) == 0 && len(results) == 0 {
		starters := make([]models.Recommendation, len(StarterRecommendations))
		copy(starters, StarterRecommendations)
		return &dto.RecommendationResponse{Recommendations: starters, DataAvailable: false}, nil
	}

	data := BuildStudyData(sessions, results, goals)

	prompt, err := prompts.Recommendations(data)
	if err != nil {
		return nil, err
	}
	raw, err := s.generator.Generate(ctx, prompt, nil)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Recommendation generation call failed")
		return nil, err
	}
	recommendations, err := modeloutput.ParseRecommendations(raw)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Model returned unusable recommendations")
		return nil, err
	}

	return &dto.RecommendationResponse{
		Recommendations: recommendations,
		DataAvailable:   true,
		StudySummary: &dto.StudySummary{
			TotalSessions: data.Sessions.Total,
			TotalHours:    data.Sessions.TotalHours,
			TotalQuizzes:  data.QuizResults.Total,
			Subjects:      len(data.Sessions.Subjects),
		},
	}, nil
}

// Subjects lists the distinct subjects of the user's sessions, sorted
func (s *RecommendationService) Subjects(ctx context.Context, userID int64) ([]string, error) {
	subjects, err := s.sessionRepo.Subjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	if subjects == nil {
		subjects = []string{}
	}
	return subjects, nil
}

// BuildStudyData aggregates sessions (latest first) and results (latest first).
// Subjects keep the order in which they are first seen.
func BuildStudyData(sessions []*models.StudySession, results []*models.ScoredResult, goals []*models.Goal) models.StudyData {
	var data models.StudyData

	totalMinutes := 0
	subjectIndex := map[string]int{}
	subjects := []models.SubjectStudy{}
	for _, session := range sessions {
		minutes := session.DurationMinutes()
		totalMinutes += minutes

		i, ok := subjectIndex[session.Subject]
		if !ok {
			i = len(subjects)
			subjectIndex[session.Subject] = i
			subjects = append(subjects, models.SubjectStudy{Subject: session.Subject})
		}
		subjects[i].TotalMinutes += minutes
		subjects[i].SessionCount++
	}
	for i := range subjects {
		subjects[i].TotalHours = helpers.MinutesToHours(subjects[i].TotalMinutes, 1)
	}

	recent := []models.RecentActivity{}
	for i, session := range sessions {
		if i == recentActivityCount {
			break
		}
		recent = append(recent, models.RecentActivity{
			Subject:  session.Subject,
			Date:     session.StartTime,
			Duration: session.DurationMinutes(),
		})
	}

	data.Sessions = models.SessionStats{
		Total:          len(sessions),
		TotalHours:     helpers.MinutesToHours(totalMinutes, 1),
		Subjects:       subjects,
		RecentActivity: recent,
	}

	type scoreSum struct {
		count int
		sum   int
	}
	scoreIndex := map[string]int{}
	sums := []scoreSum{}
	bySubject := []models.SubjectScore{}
	for _, result := range results {
		i, ok := scoreIndex[result.Subject]
		if !ok {
			i = len(bySubject)
			scoreIndex[result.Subject] = i
			bySubject = append(bySubject, models.SubjectScore{Subject: result.Subject})
			sums = append(sums, scoreSum{})
		}
		sums[i].count++
		sums[i].sum += result.Percentage
	}
	for i := range bySubject {
		bySubject[i].TotalQuizzes = sums[i].count
		bySubject[i].AverageScore = int(helpers.RoundTo(float64(sums[i].sum)/float64(sums[i].count), 0))
	}

	recentScores := []models.RecentScore{}
	for i, result := range results {
		if i == recentScoreCount {
			break
		}
		recentScores = append(recentScores, models.RecentScore{
			Subject:    result.Subject,
			Score:      result.Score,
			Total:      result.TotalQuestions,
			Percentage: result.Percentage,
			Date:       result.CompletedAt,
		})
	}

	data.QuizResults = models.QuizStats{
		Total:        len(results),
		BySubject:    bySubject,
		RecentScores: recentScores,
	}

	data.Goals = make([]models.GoalBrief, 0, len(goals))
	for _, goal := range goals {
		data.Goals = append(data.Goals, models.GoalBrief{
			Subject:     goal.Subject,
			TargetHours: goal.TargetHours,
			Period:      goal.Period,
		})
	}

	return data
}
