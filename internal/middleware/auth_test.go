package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/repository"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uint, role string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": "alice",
		"role":     role,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", Auth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "username": GetUsername(c)})
	})
	return router
}

func TestAuth_MissingHeader(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestAuth_MalformedHeader(t *testing.T) {
	router := authRouter()

	for _, header := range []string{"Basic abc123", "bearer-token"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuth_ExpiredToken(t *testing.T) {
	router := authRouter()
	token := signToken(t, 1, models.RoleStaff, time.Now().Add(-time.Hour))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token has expired")
}

func TestAuth_WrongSigningKey(t *testing.T) {
	router := authRouter()
	claims := jwt.MapClaims{"user_id": 1, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidTokenSetsIdentity(t *testing.T) {
	router := authRouter()
	token := signToken(t, 7, models.RoleStaff, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

type mockUserRepo struct {
	repository.UserRepository
	mockFindByID func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func adminRouter(users repository.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", Auth(testSecret), RequireAdmin(users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireAdmin_RoleReadFromStoreNotToken(t *testing.T) {
	// The token still claims admin; the store says staff. The store wins,
	// so a downgrade takes effect on the very next request.
	role := models.RoleAdmin
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Role: role}, nil
		},
	}
	router := adminRouter(users)
	token := signToken(t, 1, models.RoleAdmin, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	role = models.RoleStaff

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")
}

func TestRequireAdmin_DeletedUser(t *testing.T) {
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	router := adminRouter(users)
	token := signToken(t, 1, models.RoleAdmin, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_StaffForbidden(t *testing.T) {
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleStaff}, nil
		},
	}
	router := adminRouter(users)
	token := signToken(t, 2, models.RoleStaff, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
