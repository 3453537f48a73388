package routes

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustyhands-server/config"
	"trustyhands-server/database"
	"trustyhands-server/models"
)

func registerPayload() map[string]any {
	return map[string]any{
		"first_name": "Asha",
		"last_name":  "Rao",
		"email":      "asha@example.com",
		"password":   "password123",
	}
}

func TestRegisterUser(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", registerPayload(), "")
	require.Equal(t, http.StatusCreated, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	// A session cookie is set on registration.
	cookies := w.Result().Cookies()
	found := false
	for _, cookie := range cookies {
		if cookie.Name == config.AppConfig.Session.CookieName && cookie.Value != "" {
			found = true
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestRegisterUserNormalizesEmail(t *testing.T) {
	router := setupTest(t)

	payload := registerPayload()
	payload["email"] = "  Asha@Example.COM "
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, database.DB.Where("email = ?", "asha@example.com").First(&user).Error)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", registerPayload(), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/register", registerPayload(), "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email Address Already Exists!")
}

func TestRegisterUserValidation(t *testing.T) {
	router := setupTest(t)

	cases := map[string]map[string]any{
		"short first name": {"first_name": "A", "last_name": "Rao", "email": "a@x.com", "password": "password123"},
		"numeric name":     {"first_name": "Asha1", "last_name": "Rao", "email": "a@x.com", "password": "password123"},
		"bad email":        {"first_name": "Asha", "last_name": "Rao", "email": "not-an-email", "password": "password123"},
		"short password":   {"first_name": "Asha", "last_name": "Rao", "email": "a@x.com", "password": "short"},
	}
	for name, payload := range cases {
		w := doJSON(t, router, http.MethodPost, "/api/auth/register", payload, "")
		assert.Equalf(t, http.StatusBadRequest, w.Code, "case %q", name)
	}
}

func TestLogin(t *testing.T) {
	router := setupTest(t)
	createTestUser(t, "asha@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "asha@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginUnknownEmail(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "nobody@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email not found")
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupTest(t)
	createTestUser(t, "asha@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "asha@example.com", "password": "wrongpassword"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect password")
}

func TestSessionEndpoint(t *testing.T) {
	router := setupTest(t)
	user, token := createTestUser(t, "asha@example.com")

	w := doGet(t, router, "/api/auth/session", token)
	require.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, float64(user.ID), body["user"].(map[string]any)["id"])

	w = doGet(t, router, "/api/auth/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	body = parseBody(t, w)
	assert.Equal(t, false, body["authenticated"])
}

func TestSessionAcceptsCookieTransport(t *testing.T) {
	router := setupTest(t)
	_, token := createTestUser(t, "asha@example.com")

	req, err := http.NewRequest(http.MethodGet, "/api/auth/session", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: config.AppConfig.Session.CookieName, Value: token})

	w := newRecorder(router, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestLogoutClearsCookie(t *testing.T) {
	router := setupTest(t)
	_, token := createTestUser(t, "asha@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	setCookie := strings.Join(w.Result().Header.Values("Set-Cookie"), ";")
	assert.Contains(t, setCookie, config.AppConfig.Session.CookieName+"=")
	assert.Contains(t, setCookie, "Max-Age=0")
}

func TestProfileRequiresAuth(t *testing.T) {
	router := setupTest(t)

	w := doGet(t, router, "/api/auth/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileReportsLinkedRoles(t *testing.T) {
	router := setupTest(t)
	_, token := createTestUser(t, "asha@example.com")
	seedWorker(t, "asha@example.com", "Plumber", "Pune")

	w := doGet(t, router, "/api/auth/profile", token)
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, true, body["is_worker"])
	assert.Equal(t, false, body["is_customer"])
	assert.NotNil(t, body["worker"])
	assert.Nil(t, body["customer"])
}

func TestUpdateProfile(t *testing.T) {
	router := setupTest(t)
	user, token := createTestUser(t, "asha@example.com")

	w := doForm(t, router, http.MethodPut, "/api/auth/profile",
		map[string]string{"phone": "9123456780", "city": "Pune", "address": "12 MG Road"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, database.DB.First(&updated, user.ID).Error)
	assert.Equal(t, "9123456780", updated.PhoneNumber)
	assert.Equal(t, "Pune", updated.City)
	assert.Equal(t, "12 MG Road", updated.Address)
}
