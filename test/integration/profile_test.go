package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/test/helpers"
)

func TestProfile_CreateReadUpdateDelete(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "handwerker@example.at", "sicheres-passwort", false)

	// No profile yet.
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/my", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	body := map[string]interface{}{
		"first_name":   "Max",
		"last_name":    "Huber",
		"description":  "Elektriker mit 10 Jahren Erfahrung",
		"services":     []string{"Elektriker"},
		"regions":      []string{"Wien", "Niederösterreich"},
		"availability": []string{"Wochentags abends"},
		"phone":        "+43 660 1234567",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/profiles/my", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	// A second profile for the same user is rejected.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/profiles/my", token, body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/my", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Max")

	body["description"] = "Jetzt auch Photovoltaik"
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/profiles/my", token, body)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Photovoltaik")

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/profiles/my", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/my", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProfile_RequiresServiceRegionAvailability(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "unvollstaendig@example.at", "sicheres-passwort", false)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/profiles/my", token, map[string]interface{}{
		"first_name":   "Ohne",
		"last_name":    "Leistung",
		"services":     []string{},
		"regions":      []string{"Wien"},
		"availability": []string{"Wochenende"},
		"phone":        "+43 660 1234567",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// A profile without any contact method is rejected too.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/profiles/my", token, map[string]interface{}{
		"first_name":   "Ohne",
		"last_name":    "Kontakt",
		"services":     []string{"Maler"},
		"regions":      []string{"Wien"},
		"availability": []string{"Wochenende"},
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestProfile_DeleteCascadesReviewsAndFavorites(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, "kaskade@example.at", "sicheres-passwort", false)
	profile := helpers.CreateProfile(t, ts.DB, owner.ID, "Max", "Huber",
		[]string{"Elektriker"}, []string{"Wien"})

	fanToken, _ := helpers.CreateAndLoginUser(t, ts, "fan@example.at", "sicheres-passwort", false)
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/favorites/"+profile.ID, fanToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/profiles/"+profile.ID+"/reviews", fanToken,
		map[string]interface{}{"rating": 5, "comment": "Hervorragende Arbeit!"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/profiles/my", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var reviews, favorites int64
	ts.DB.Model(&models.Review{}).Where("profile_id = ?", profile.ID).Count(&reviews)
	ts.DB.Model(&models.Favorite{}).Where("profile_id = ?", profile.ID).Count(&favorites)
	assert.Zero(t, reviews)
	assert.Zero(t, favorites)
}
