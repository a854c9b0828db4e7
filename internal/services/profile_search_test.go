package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dienstmarkt_backend/internal/models"
)

func makeProfile(first, last string, services, regions []string, createdAt time.Time) models.Profile {
	p := models.Profile{
		FirstName: first,
		LastName:  last,
	}
	p.SetServices(services)
	p.SetRegions(regions)
	p.CreatedAt = createdAt
	return p
}

func TestFilterProfiles_Service(t *testing.T) {
	profiles := []models.Profile{
		makeProfile("Max", "Huber", []string{"Elektriker"}, []string{"Wien"}, time.Now()),
		makeProfile("Anna", "Maier", []string{"Maler"}, []string{"Graz"}, time.Now()),
	}

	got := FilterProfiles(profiles, "Elektriker", "", "")
	require.Len(t, got, 1)
	assert.Equal(t, "Max", got[0].FirstName)

	// Matching is case-insensitive.
	got = FilterProfiles(profiles, "elektriker", "", "")
	assert.Len(t, got, 1)

	// Every returned profile carries the requested service.
	for _, p := range got {
		assert.Contains(t, p.GetServices(), "Elektriker")
	}
}

func TestFilterProfiles_CustomServicesSubstring(t *testing.T) {
	p := makeProfile("Karl", "Bauer", []string{"Sonstiges"}, []string{"Linz"}, time.Now())
	p.CustomServices = "Gartenpflege und Heckenschnitt"

	got := FilterProfiles([]models.Profile{p}, "heckenschnitt", "", "")
	assert.Len(t, got, 1)

	got = FilterProfiles([]models.Profile{p}, "Dachdecker", "", "")
	assert.Empty(t, got)
}

func TestFilterProfiles_RegionIsExactMatch(t *testing.T) {
	p := makeProfile("Max", "Huber", []string{"Elektriker"}, []string{"Niederösterreich"}, time.Now())

	got := FilterProfiles([]models.Profile{p}, "", "Niederösterreich", "")
	assert.Len(t, got, 1)

	// Substrings do not match regions.
	got = FilterProfiles([]models.Profile{p}, "", "Österreich", "")
	assert.Empty(t, got)
}

func TestFilterProfiles_AllSentinelSkipsFilter(t *testing.T) {
	profiles := []models.Profile{
		makeProfile("Max", "Huber", []string{"Elektriker"}, []string{"Wien"}, time.Now()),
		makeProfile("Anna", "Maier", []string{"Maler"}, []string{"Graz"}, time.Now()),
	}

	assert.Len(t, FilterProfiles(profiles, "all", "all", ""), 2)
	assert.Len(t, FilterProfiles(profiles, "", "", ""), 2)
	assert.Len(t, FilterProfiles(profiles, "ALL", "", ""), 2)
}

func TestFilterProfiles_NameSpansFullName(t *testing.T) {
	profiles := []models.Profile{
		makeProfile("Anna", "Maier", []string{"Maler"}, []string{"Wien"}, time.Now()),
		makeProfile("Berta", "Gruber", []string{"Maler"}, []string{"Wien"}, time.Now()),
	}

	got := FilterProfiles(profiles, "", "", "anna m")
	require.Len(t, got, 1)
	assert.Equal(t, "Anna", got[0].FirstName)

	got = FilterProfiles(profiles, "", "", "gruber")
	require.Len(t, got, 1)
	assert.Equal(t, "Berta", got[0].FirstName)
}

func TestSortProfiles_NewestOrdersByCreatedAtDesc(t *testing.T) {
	now := time.Now()
	profiles := []models.Profile{
		makeProfile("Alt", "Eins", nil, nil, now.Add(-2*time.Hour)),
		makeProfile("Neu", "Zwei", nil, nil, now),
		makeProfile("Mittel", "Drei", nil, nil, now.Add(-time.Hour)),
	}

	SortProfiles(profiles, "newest")

	for i := 1; i < len(profiles); i++ {
		assert.False(t, profiles[i].CreatedAt.After(profiles[i-1].CreatedAt),
			"CreatedAt must be non-increasing")
	}
	assert.Equal(t, "Neu", profiles[0].FirstName)
}

func TestSortProfiles_OtherKeysLeaveOrderUnchanged(t *testing.T) {
	now := time.Now()
	original := []models.Profile{
		makeProfile("Alt", "Eins", nil, nil, now.Add(-2*time.Hour)),
		makeProfile("Neu", "Zwei", nil, nil, now),
	}

	for _, key := range []string{"", "rating", "unknown"} {
		profiles := append([]models.Profile(nil), original...)
		SortProfiles(profiles, key)
		assert.Equal(t, "Alt", profiles[0].FirstName, "sort key %q must not reorder", key)
		assert.Equal(t, "Neu", profiles[1].FirstName)
	}
}

func TestPaginateProfiles_SliceLength(t *testing.T) {
	total := 7
	profiles := make([]models.Profile, 0, total)
	for i := 0; i < total; i++ {
		profiles = append(profiles, makeProfile(fmt.Sprintf("P%d", i), "Test", nil, nil, time.Now()))
	}

	cases := []struct {
		page, pageSize, want int
	}{
		{1, 5, 5},
		{2, 5, 2},
		{3, 5, 0},
		{1, 10, 7},
		{1, 7, 7},
		{8, 1, 0},
	}
	for _, tc := range cases {
		got := PaginateProfiles(profiles, tc.page, tc.pageSize)
		assert.Len(t, got, tc.want, "page=%d pageSize=%d", tc.page, tc.pageSize)
	}

	// First page first element is the head of the filtered order.
	page := PaginateProfiles(profiles, 1, 3)
	assert.Equal(t, "P0", page[0].FirstName)
	page = PaginateProfiles(profiles, 2, 3)
	assert.Equal(t, "P3", page[0].FirstName)
}

func TestNormalizePagination_Defaults(t *testing.T) {
	page, pageSize := NormalizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)

	page, pageSize = NormalizePagination(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)

	page, pageSize = NormalizePagination(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, pageSize)
}
