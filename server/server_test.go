package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/greencycle/wastetrack/config"
	"github.com/greencycle/wastetrack/db"
	"github.com/greencycle/wastetrack/models"
	"github.com/greencycle/wastetrack/services"
)

type stubMailer struct {
	sent []string
}

func (m *stubMailer) SendResetPassword(userEmail, link string) (string, error) {
	m.sent = append(m.sent, userEmail)
	return "stub-id", nil
}

func newTestServer(t *testing.T) (*Server, *gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("GIN_MODE", "test")
	gin.SetMode(gin.TestMode)

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	conf := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		ReportPoints:   10,
		CollectPoints:  20,
	}
	store := &db.GormDB{DB: gormDB}
	authRepo := db.NewAuthRepo(store)

	s := &Server{
		Config:         conf,
		AuthRepository: authRepo,
		AuthService:    services.NewAuthService(authRepo, &stubMailer{}, conf),
		LedgerService: services.NewLedgerService(
			db.NewRewardRepo(store),
			db.NewTransactionRepo(store),
			db.NewNotificationRepo(store),
			conf,
		),
		ReportService:          services.NewReportService(db.NewReportRepo(store), conf),
		NotificationRepository: db.NewNotificationRepo(store),
	}
	return s, s.setupRouter(), gormDB
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"fullname": "Ada Cleanup",
		"username": "ada",
		"email":    email,
		"password": "sufficiently-long",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "sufficiently-long",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	return envelope.Data.AccessToken
}

func TestAuthRequiredOnProtectedRoutes(t *testing.T) {
	_, r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/rewards/balance", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/rewards/balance", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitReportAndBalanceFlow(t *testing.T) {
	_, r, _ := newTestServer(t)
	token := signupAndLogin(t, r, "flow@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/reports", token, gin.H{
		"location":   "Canal towpath",
		"waste_type": "glass",
		"amount":     "1 crate",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/rewards/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var balanceEnvelope struct {
		Data struct {
			Balance int `json:"balance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &balanceEnvelope))
	assert.Equal(t, 10, balanceEnvelope.Data.Balance)

	w = doJSON(t, r, http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifEnvelope struct {
		Data []models.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifEnvelope))
	require.Len(t, notifEnvelope.Data, 1)

	path := fmt.Sprintf("/api/v1/notifications/%d/read", notifEnvelope.Data[0].ID)
	w = doJSON(t, r, http.MethodPut, path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	// Marking again still succeeds.
	w = doJSON(t, r, http.MethodPut, path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRedeemEndpointInsufficientPoints(t *testing.T) {
	_, r, gormDB := newTestServer(t)
	token := signupAndLogin(t, r, "poor@example.com")

	catalog := models.Reward{Name: "Golden Grabber", Points: 500, IsAvailable: true}
	require.NoError(t, gormDB.Create(&catalog).Error)

	w := doJSON(t, r, http.MethodPost, "/api/v1/rewards/redeem", token, gin.H{
		"reward_id": catalog.ID,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestVerifyCollectionGrantsCollectorPoints(t *testing.T) {
	_, r, _ := newTestServer(t)
	reporterToken := signupAndLogin(t, r, "verifier-reporter@example.com")
	collectorToken := signupAndLogin(t, r, "verifier-collector@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/reports", reporterToken, gin.H{
		"location":   "Beach south end",
		"waste_type": "plastic",
		"amount":     "3 bags",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var reportEnvelope struct {
		Data models.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reportEnvelope))
	reportID := reportEnvelope.Data.ID

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d/status", reportID), collectorToken, gin.H{
		"status": models.ReportStatusInProgress,
		"claim":  true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/tasks/%d/verify", reportID), collectorToken, gin.H{
		"verification_result": "confirmed, area clear",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/rewards/balance", collectorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var balanceEnvelope struct {
		Data struct {
			Balance int `json:"balance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &balanceEnvelope))
	assert.Equal(t, 20, balanceEnvelope.Data.Balance)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	_, r, _ := newTestServer(t)
	token := signupAndLogin(t, r, "leaver@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
