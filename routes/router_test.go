package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"trustyhands-server/config"
	"trustyhands-server/database"
	"trustyhands-server/models"
	"trustyhands-server/storage"
	"trustyhands-server/utils"
)

// setupTest wires a router exactly like production against a fresh in-memory
// database.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db

	files, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	router := gin.New()
	Setup(router, files)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, router *gin.Engine, method, path string, fields map[string]string, token string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doGet(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, router, http.MethodGet, path, nil, token)
}

func newRecorder(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createTestUser(t *testing.T, email string) (models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	token, err := utils.GenerateSessionToken(user.ID, user.Email)
	require.NoError(t, err)
	return user, token
}

func seedWorker(t *testing.T, email, serviceType, location string) models.Worker {
	t.Helper()
	worker := models.Worker{
		FullName:          "Ravi Kumar",
		PhoneNumber:       "9876543210",
		Email:             email,
		DateOfBirth:       time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
		Gender:            models.GenderMale,
		Location:          location,
		ServiceType:       serviceType,
		Experience:        5,
		Languages:         "English, Hindi",
		AvailableHours:    "9am-6pm",
		MinPricePerHour:   200,
		MaxPricePerHour:   500,
		AgreementAccepted: true,
		InfoConfirmed:     true,
	}
	require.NoError(t, database.DB.Create(&worker).Error)
	return worker
}

func seedCustomer(t *testing.T, email string) models.Customer {
	t.Helper()
	customer := models.Customer{
		FullName:    "Asha Rao",
		PhoneNumber: "9123456780",
		Email:       email,
		Address:     "12 MG Road, Pune",
	}
	require.NoError(t, database.DB.Create(&customer).Error)
	return customer
}

func seedBooking(t *testing.T, customerID uint, workerID *uint, status models.BookingStatus) models.Booking {
	t.Helper()
	booking := models.Booking{
		CustomerID:    customerID,
		WorkerID:      workerID,
		ServiceType:   "Plumber",
		PreferredDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PaymentMode:   models.PaymentModeCash,
		Status:        status,
	}
	require.NoError(t, database.DB.Create(&booking).Error)
	return booking
}
