package authControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/database"
	"github.com/MasterGroupNew/Luxeparfum-Backend/middleware"
	"github.com/MasterGroupNew/Luxeparfum-Backend/models"
)

const testSecret = "test-secret"

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	r := gin.New()
	r.POST("/register", RegisterHandler(db, nil))
	r.POST("/login", LoginHandler(db, testSecret))
	r.GET("/admin-only", middleware.RequireAuth(testSecret, "admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/me", middleware.RequireAuth(testSecret), GetProfileHandler(db))
	return r, db
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(data)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerForm() url.Values {
	return url.Values{
		"name":     {"Awa"},
		"surname":  {"Kone"},
		"contact":  {"0700000001"},
		"email":    {"awa@example.com"},
		"password": {"secret123"},
		"city":     {"Abidjan"},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	r, db := setupRouter(t)

	w := postForm(r, "/register", registerForm())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "awa@example.com").Error)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password) // stored hashed

	w = postJSON(r, "/login", gin.H{"identifier": "awa@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	r, _ := setupRouter(t)

	require.Equal(t, http.StatusCreated, postForm(r, "/register", registerForm()).Code)

	form := registerForm()
	form.Set("contact", "0700000002") // same email, different contact
	assert.Equal(t, http.StatusConflict, postForm(r, "/register", form).Code)
}

func TestRegisterMissingFields(t *testing.T) {
	r, _ := setupRouter(t)

	form := registerForm()
	form.Del("password")
	assert.Equal(t, http.StatusBadRequest, postForm(r, "/register", form).Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupRouter(t)
	postForm(r, "/register", registerForm())

	w := postJSON(r, "/login", gin.H{"identifier": "awa@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	r, _ := setupRouter(t)

	w := postJSON(r, "/login", gin.H{"identifier": "ghost@example.com", "password": "whatever"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginByContact(t *testing.T) {
	r, _ := setupRouter(t)
	postForm(r, "/register", registerForm())

	w := postJSON(r, "/login", gin.H{"identifier": "0700000001", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func loginToken(t *testing.T, r *gin.Engine, identifier, password string) string {
	t.Helper()
	w := postJSON(r, "/login", gin.H{"identifier": identifier, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestMiddlewareDistinguishes401From403(t *testing.T) {
	r, db := setupRouter(t)
	postForm(r, "/register", registerForm())
	token := loginToken(t, r, "awa@example.com", "secret123")

	// No token at all: unauthenticated.
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token: still unauthenticated.
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token, wrong role: forbidden.
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Promote and log in again: allowed.
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "awa@example.com").
		Update("role", models.RoleAdmin).Error)
	adminToken := loginToken(t, r, "awa@example.com", "secret123")

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileReturnsAuthenticatedUser(t *testing.T) {
	r, _ := setupRouter(t)
	postForm(r, "/register", registerForm())
	token := loginToken(t, r, "awa@example.com", "secret123")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "awa@example.com", user.Email)
}
