package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/content"
)

var fixedNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = fixedNow
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeUploadRepo struct {
	mu        sync.Mutex
	nextID    int64
	uploads   map[int64]*models.Upload
	createErr error
}

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{uploads: map[int64]*models.Upload{}}
}

func (r *fakeUploadRepo) Create(_ context.Context, upload *models.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	upload.ID = r.nextID
	cp := *upload
	r.uploads[upload.ID] = &cp
	return nil
}

func (r *fakeUploadRepo) GetByID(_ context.Context, id int64) (*models.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.uploads[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrUploadNotFound
}

func (r *fakeUploadRepo) ListByUser(_ context.Context, userID int64) ([]*models.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Upload
	for _, u := range r.uploads {
		if u.UserID == userID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeUploadRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.uploads[id]; !ok {
		return apperrors.ErrUploadNotFound
	}
	delete(r.uploads, id)
	return nil
}

// fakeQuizRepo enforces the one-quiz-per-(user, upload) rule like the unique constraint
type fakeQuizRepo struct {
	mu      sync.Mutex
	nextID  int64
	quizzes map[int64]*models.Quiz
	results *fakeResultRepo
	// beforeCreate runs inside Create, before the uniqueness check
	beforeCreate func()
}

func newFakeQuizRepo(results *fakeResultRepo) *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: map[int64]*models.Quiz{}, results: results}
}

func (r *fakeQuizRepo) insert(quiz *models.Quiz) error {
	for _, q := range r.quizzes {
		if q.UserID == quiz.UserID && q.UploadID == quiz.UploadID {
			return apperrors.ErrResourceAlreadyExists
		}
	}
	r.nextID++
	quiz.ID = r.nextID
	quiz.CreatedAt = fixedNow
	quiz.UpdatedAt = fixedNow
	cp := *quiz
	r.quizzes[quiz.ID] = &cp
	return nil
}

func (r *fakeQuizRepo) Create(_ context.Context, quiz *models.Quiz) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(quiz)
}

func (r *fakeQuizRepo) GetByID(_ context.Context, id int64) (*models.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.quizzes[id]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, apperrors.ErrQuizNotFound
}

func (r *fakeQuizRepo) GetByUserAndUpload(_ context.Context, userID, uploadID int64) (*models.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quizzes {
		if q.UserID == userID && q.UploadID == uploadID {
			cp := *q
			return &cp, nil
		}
	}
	return nil, apperrors.ErrQuizNotFound
}

func (r *fakeQuizRepo) ListByUser(_ context.Context, userID int64, subject string) ([]*models.QuizSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.QuizSummary
	for _, q := range r.quizzes {
		if q.UserID != userID || (subject != "" && q.Subject != subject) {
			continue
		}
		out = append(out, &models.QuizSummary{
			ID:             q.ID,
			UploadID:       q.UploadID,
			Subject:        q.Subject,
			Title:          q.Title,
			Difficulty:     q.Difficulty,
			TotalQuestions: q.TotalQuestions,
			CreatedAt:      q.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeQuizRepo) DeleteWithResults(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[id]; !ok {
		return apperrors.ErrQuizNotFound
	}
	delete(r.quizzes, id)
	if r.results != nil {
		r.results.deleteByQuiz(id)
	}
	return nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	nextID  int64
	results []*models.ScoredResult
}

func (r *fakeResultRepo) Create(_ context.Context, result *models.QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	result.ID = r.nextID
	result.CompletedAt = fixedNow.Add(time.Duration(r.nextID) * time.Minute)
	r.results = append(r.results, &models.ScoredResult{QuizResult: *result})
	return nil
}

func (r *fakeResultRepo) ListByQuiz(_ context.Context, quizID int64) ([]*models.QuizResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.QuizResult{}
	for i := len(r.results) - 1; i >= 0; i-- {
		if r.results[i].QuizID == quizID {
			cp := r.results[i].QuizResult
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) ListRecentWithSubject(_ context.Context, userID int64, limit int) ([]*models.ScoredResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ScoredResult
	for i := len(r.results) - 1; i >= 0 && len(out) < limit; i-- {
		if r.results[i].UserID == userID {
			cp := *r.results[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) deleteByQuiz(quizID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.results[:0]
	for _, res := range r.results {
		if res.QuizID != quizID {
			kept = append(kept, res)
		}
	}
	r.results = kept
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*models.StudySession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[int64]*models.StudySession{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *models.StudySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int64) (*models.StudySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, apperrors.ErrSessionNotFound
}

func (r *fakeSessionRepo) Update(_ context.Context, s *models.StudySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; !ok {
		return apperrors.ErrSessionNotFound
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) sorted(userID int64) []*models.StudySession {
	var out []*models.StudySession
	for _, s := range r.sessions {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out
}

func (r *fakeSessionRepo) ListByUser(_ context.Context, userID int64, limit int) ([]*models.StudySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted(userID)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSessionRepo) ListBySubjectSince(_ context.Context, userID int64, subject string, since time.Time) ([]*models.StudySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.StudySession
	for _, s := range r.sorted(userID) {
		if s.Subject == subject && !s.StartTime.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Subjects(_ context.Context, userID int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, s := range r.sessions {
		if s.UserID == userID && !seen[s.Subject] {
			seen[s.Subject] = true
			out = append(out, s.Subject)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeGoalRepo struct {
	mu     sync.Mutex
	nextID int64
	goals  map[int64]*models.Goal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: map[int64]*models.Goal{}}
}

func (r *fakeGoalRepo) Create(_ context.Context, g *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	g.ID = r.nextID
	g.CreatedAt = fixedNow
	g.UpdatedAt = fixedNow
	cp := *g
	r.goals[g.ID] = &cp
	return nil
}

func (r *fakeGoalRepo) GetByID(_ context.Context, id int64) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.goals[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, apperrors.ErrGoalNotFound
}

func (r *fakeGoalRepo) Update(_ context.Context, g *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[g.ID]; !ok {
		return apperrors.ErrGoalNotFound
	}
	cp := *g
	r.goals[g.ID] = &cp
	return nil
}

func (r *fakeGoalRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[id]; !ok {
		return apperrors.ErrGoalNotFound
	}
	delete(r.goals, id)
	return nil
}

func (r *fakeGoalRepo) ListByUser(_ context.Context, userID int64) ([]*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeExtractor struct {
	input *content.Input
	err   error
	calls int
}

func (e *fakeExtractor) Extract(_ context.Context, _ *models.Upload) (*content.Input, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.input, nil
}

type fakeGenerator struct {
	mu          sync.Mutex
	reply       string
	err         error
	calls       int
	prompts     []string
	attachments []*content.Attachment
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, attachment *content.Attachment) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	g.attachments = append(g.attachments, attachment)
	return g.reply, g.err
}

type fakeFileStore struct {
	mu        sync.Mutex
	files     map[string][]byte
	saveErr   error
	deleteErr error
	deleted   []string
	n         int
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (f *fakeFileStore) Save(_ context.Context, originalName string, r io.Reader, _ int64, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.n++
	key := string(rune('a'+f.n-1)) + "-" + originalName
	f.files[key] = data
	return key, nil
}

func (f *fakeFileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.files, key)
	return nil
}
