package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minishop-dev/minishop-api/auth"
	"github.com/minishop-dev/minishop-api/models"
	"github.com/minishop-dev/minishop-api/routes"
)

func setupAuthTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	)
	require.NoError(t, err)

	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, testDB)
	return r, testDB
}

func authPost(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	reqBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRegister(t *testing.T) {
	router, testDB := setupAuthTestRouter(t)

	t.Run("Creates a user and stores a hash, not the password", func(t *testing.T) {
		recorder := authPost(router, "/api/auth/register", gin.H{
			"fullname": "Ada Smith",
			"email":    "ada@example.com",
			"password": "hunter22",
		})

		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		var user models.User
		require.NoError(t, testDB.Where("email = ?", "ada@example.com").First(&user).Error)
		assert.Equal(t, "Ada Smith", user.Fullname)
		assert.NotEqual(t, "hunter22", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
	})

	t.Run("Returns 400 when a field is missing", func(t *testing.T) {
		recorder := authPost(router, "/api/auth/register", gin.H{
			"fullname": "No Email",
			"password": "secret",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Please fill in all required fields", response["error"])
	})

	t.Run("Returns 409 for a duplicate email", func(t *testing.T) {
		recorder := authPost(router, "/api/auth/register", gin.H{
			"fullname": "Ada Again",
			"email":    "ada@example.com",
			"password": "different",
		})
		assert.Equal(t, http.StatusConflict, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Email already registered", response["error"])
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, _ := setupAuthTestRouter(t)

	recorder := authPost(router, "/api/auth/register", gin.H{
		"fullname": "Sam Lee",
		"email":    "sam@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	t.Run("Issues a signed token with a two-hour expiry", func(t *testing.T) {
		recorder := authPost(router, "/api/auth/login", gin.H{
			"email":    "sam@example.com",
			"password": "correct horse",
		})

		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
		var response struct {
			Success  bool   `json:"success"`
			Token    string `json:"token"`
			Fullname string `json:"fullname"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Equal(t, "Sam Lee", response.Fullname)

		token, err := jwt.Parse(response.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "sam@example.com", claims["email"])
		assert.NotZero(t, claims["user_id"])

		exp, err := claims.GetExpirationTime()
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(auth.TokenTTL), exp.Time, time.Minute)
	})

	t.Run("Wrong password and unknown email fail identically", func(t *testing.T) {
		wrongPassword := authPost(router, "/api/auth/login", gin.H{
			"email":    "sam@example.com",
			"password": "incorrect horse",
		})
		unknownEmail := authPost(router, "/api/auth/login", gin.H{
			"email":    "nobody@example.com",
			"password": "whatever",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})

	t.Run("Returns 400 when fields are missing", func(t *testing.T) {
		recorder := authPost(router, "/api/auth/login", gin.H{"email": "sam@example.com"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestMe(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, _ := setupAuthTestRouter(t)

	recorder := authPost(router, "/api/auth/register", gin.H{
		"fullname": "Kim Park",
		"email":    "kim@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = authPost(router, "/api/auth/login", gin.H{
		"email":    "kim@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))

	t.Run("Returns the profile for a valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+login.Token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var user models.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, "kim@example.com", user.Email)
	})

	t.Run("Rejects a missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCreateSession(t *testing.T) {
	router, _ := setupAuthTestRouter(t)

	recorder := authPost(router, "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	_, err := uuid.Parse(response.SessionID)
	assert.NoError(t, err)
}
