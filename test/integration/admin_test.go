package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/test/helpers"
)

func TestAdmin_RoutesRequireAdmin(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	userToken, _ := helpers.CreateAndLoginUser(t, ts, "normal@example.at", "sicheres-passwort", false)

	// Anonymous gets 401, a regular user gets 403.
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdmin_SuspendAndReinstate(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, "admin@example.at", "sicheres-passwort", true)
	_, target := helpers.CreateAndLoginUser(t, ts, "ziel@example.at", "sicheres-passwort", false)

	res, _ := ts.SendRequest(t, http.MethodPost,
		"/api/v1/admin/users/"+target.ID+"/suspend", adminToken,
		map[string]interface{}{"reason": "Wiederholte Beschwerden"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	// The suspended user can no longer log in.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ziel@example.at",
		"password": "sicheres-passwort",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost,
		"/api/v1/admin/users/"+target.ID+"/reinstate", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ziel@example.at",
		"password": "sicheres-passwort",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestAdmin_CannotModerateSelf(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, admin := helpers.CreateAndLoginUser(t, ts, "selbstadmin@example.at", "sicheres-passwort", true)

	res, _ := ts.SendRequest(t, http.MethodPost,
		"/api/v1/admin/users/"+admin.ID+"/suspend", adminToken,
		map[string]interface{}{"reason": "Selbstversuch"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdmin_DeleteUserWithEmailBan(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, "admin@example.at", "sicheres-passwort", true)
	_, target := helpers.CreateAndLoginUser(t, ts, "verbannt@example.at", "sicheres-passwort", false)
	profile := helpers.CreateProfile(t, ts.DB, target.ID, "Bald", "Weg",
		[]string{"Maler"}, []string{"Wien"})
	helpers.CreateJob(t, ts.DB, target.ID, "Verwaistes Inserat", "Wien", "Maler")

	res, _ := ts.SendRequest(t, http.MethodDelete,
		"/api/v1/admin/users/"+target.ID, adminToken,
		map[string]interface{}{"ban_email": true, "reason": "Betrugsverdacht"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	// The account is a tombstone, its content is gone.
	var user models.User
	require.NoError(t, ts.DB.First(&user, "id = ?", target.ID).Error)
	assert.Equal(t, models.UserStatusDeleted, user.Status)

	var profiles, jobs int64
	ts.DB.Model(&models.Profile{}).Where("id = ?", profile.ID).Count(&profiles)
	ts.DB.Model(&models.JobListing{}).Where("user_id = ?", target.ID).Count(&jobs)
	assert.Zero(t, profiles)
	assert.Zero(t, jobs)

	// The login is refused and the email cannot be reused.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "verbannt@example.at",
		"password": "sicheres-passwort",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "verbannt@example.at",
		"password": "sicheres-passwort",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdmin_BanAndUnbanEmail(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, "admin@example.at", "sicheres-passwort", true)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/banned-emails", adminToken,
		map[string]interface{}{"email": "spam@example.at", "reason": "Spam"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "spam@example.at",
		"password": "sicheres-passwort",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/banned-emails", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "spam@example.at")

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/banned-emails/spam@example.at", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "spam@example.at",
		"password": "sicheres-passwort",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
}

func TestAdmin_DeleteReviewAndProfile(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, "admin@example.at", "sicheres-passwort", true)
	_, provider := helpers.CreateAndLoginUser(t, ts, "anbieter@example.at", "sicheres-passwort", false)
	profile := helpers.CreateProfile(t, ts.DB, provider.ID, "Max", "Huber",
		[]string{"Elektriker"}, []string{"Wien"})

	reviewerToken, _ := helpers.CreateAndLoginUser(t, ts, "kunde@example.at", "sicheres-passwort", false)
	res, bodyStr := ts.SendRequest(t, http.MethodPost,
		"/api/v1/profiles/"+profile.ID+"/reviews", reviewerToken,
		map[string]interface{}{"rating": 1, "comment": "Unhöflich und unpünktlich"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/reviews/"+created.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/profiles/"+profile.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/"+profile.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
