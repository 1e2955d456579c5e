package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/studyhub/internal/app/controllers"
	"github.com/yigit/studyhub/internal/middleware"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

type rejectAll struct{}

func (rejectAll) Authenticate(context.Context, string) (int64, string, error) {
	return 0, "", apperrors.ErrTokenInvalid
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:           &controllers.AuthController{},
		Study:          &controllers.StudyController{},
		Upload:         &controllers.UploadController{},
		Quiz:           &controllers.QuizController{},
		Recommendation: &controllers.RecommendationController{},
	}, middleware.NewAuthMiddleware(rejectAll{}, "sid"), middleware.NewIPRateLimiter(0, 1))
	return router
}

func TestPublicRoutes(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/ping", "/api/v1/health"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router := newTestRouter()

	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/sessions"},
		{http.MethodPut, "/api/v1/goals/1"},
		{http.MethodPost, "/api/v1/uploads"},
		{http.MethodPost, "/api/v1/quizzes/generate"},
		{http.MethodGet, "/api/v1/quizzes/3/results"},
		{http.MethodGet, "/api/v1/recommendations/subjects"},
		{http.MethodPost, "/api/v1/auth/logout"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}
