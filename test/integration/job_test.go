package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dienstmarkt_backend/test/helpers"
)

func TestJob_CreateAndList(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "auftrag@example.at", "sicheres-passwort", false)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", token, map[string]interface{}{
		"title":       "Badezimmer renovieren",
		"description": "Komplettsanierung eines kleinen Bades",
		"location":    "Wien",
		"category":    "Installateur",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "active", created.Status)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs?category=Installateur", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Badezimmer renovieren")

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestJob_OnlyOwnerOrAdminMayDelete(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, "besitzer@example.at", "sicheres-passwort", false)
	strangerToken, _ := helpers.CreateAndLoginUser(t, ts, "fremder@example.at", "sicheres-passwort", false)
	adminToken, _ := helpers.CreateAndLoginUser(t, ts, "admin@example.at", "sicheres-passwort", true)

	job := helpers.CreateJob(t, ts.DB, owner.ID, "Zaun streichen", "Graz", "Maler")
	jobPath := "/api/v1/jobs/" + job.ID

	// A stranger cannot delete the listing.
	res, _ := ts.SendRequest(t, http.MethodDelete, jobPath, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// The owner can.
	res, _ = ts.SendRequest(t, http.MethodDelete, jobPath, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, jobPath, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// An admin can delete someone else's listing.
	job2 := helpers.CreateJob(t, ts.DB, owner.ID, "Hecke schneiden", "Linz", "Garten")
	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/jobs/"+job2.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestJob_UpdateByOwner(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, owner := helpers.CreateAndLoginUser(t, ts, "aktualisieren@example.at", "sicheres-passwort", false)
	job := helpers.CreateJob(t, ts.DB, owner.ID, "Dach reparieren", "Salzburg", "Dachdecker")

	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+job.ID, token, map[string]interface{}{
		"title":  "Dach komplett erneuern",
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Dach komplett erneuern")
	assert.Contains(t, bodyStr, `"status":"completed"`)

	// An unknown status value is rejected.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+job.ID, token, map[string]interface{}{
		"status": "vaporized",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestJob_ListDefaultsToActive(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	_, owner := helpers.CreateAndLoginUser(t, ts, "statusliste@example.at", "sicheres-passwort", false)
	helpers.CreateJob(t, ts.DB, owner.ID, "Aktiver Auftrag", "Wien", "Elektriker")
	done := helpers.CreateJob(t, ts.DB, owner.ID, "Erledigter Auftrag", "Wien", "Elektriker")
	require.NoError(t, ts.DB.Model(done).Update("status", "completed").Error)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Aktiver Auftrag")
	assert.NotContains(t, bodyStr, "Erledigter Auftrag")

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs?status=completed", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Erledigter Auftrag")
}

func TestJob_MyListings(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, owner := helpers.CreateAndLoginUser(t, ts, "meine@example.at", "sicheres-passwort", false)
	_, other := helpers.CreateAndLoginUser(t, ts, "andere@example.at", "sicheres-passwort", false)

	for i := 0; i < 2; i++ {
		helpers.CreateJob(t, ts.DB, owner.ID, fmt.Sprintf("Mein Auftrag %d", i), "Wien", "Maler")
	}
	helpers.CreateJob(t, ts.DB, other.ID, "Fremder Auftrag", "Wien", "Maler")

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/my", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Mein Auftrag 0")
	assert.NotContains(t, bodyStr, "Fremder Auftrag")
}
