package helpers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dienstmarkt_backend/internal/auth"
	"dienstmarkt_backend/internal/models"
)

// CreateUser inserts a user row with a hashed password.
func CreateUser(t *testing.T, db *gorm.DB, email, password string, isAdmin bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		IsAdmin:      isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateAndLoginUser registers a user directly in the database and logs
// in over the API, returning the bearer token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, email, password string, isAdmin bool) (string, *models.User) {
	t.Helper()

	user := CreateUser(t, ts.DB, email, password, isAdmin)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed: %s", bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateProfile inserts a provider profile for the given user.
func CreateProfile(t *testing.T, db *gorm.DB, userID, firstName, lastName string, services, regions []string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     "+43 660 0000000",
		Available: true,
	}
	profile.SetServices(services)
	profile.SetRegions(regions)
	profile.SetAvailability([]string{"Wochentags abends"})
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// CreateJob inserts an active job listing for the given user.
func CreateJob(t *testing.T, db *gorm.DB, userID, title, location, category string) *models.JobListing {
	t.Helper()

	job := &models.JobListing{
		UserID:      userID,
		Title:       title,
		Description: "Testbeschreibung für " + title,
		Location:    location,
		Category:    category,
		Status:      models.JobStatusActive,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}
