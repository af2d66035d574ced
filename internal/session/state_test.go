package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/findmydorm/internal/models"
	"github.com/akozadaev/findmydorm/internal/registry"
)

func selectedState(t *testing.T) State {
	t.Helper()
	reg := registry.Default()
	city := reg.FindCity("chennai")
	require.NotNil(t, city)

	s, err := Reduce(NewState(), SelectCity{City: city})
	require.NoError(t, err)
	s, err = Reduce(s, SelectUniversity{University: reg.FindUniversity(city, "iitm")})
	require.NoError(t, err)
	return s
}

func resolvedState(t *testing.T, listings []models.Listing) State {
	t.Helper()
	s, err := Reduce(selectedState(t), SearchStarted{})
	require.NoError(t, err)
	s, err = Reduce(s, SearchResolved{Seq: s.Seq, Listings: listings})
	require.NoError(t, err)
	return s
}

func TestNewState(t *testing.T) {
	s := NewState()

	assert.Equal(t, ViewHome, s.View)
	assert.Equal(t, models.DefaultFilterCriteria(), s.Criteria)
	assert.False(t, s.CanSearch())
	assert.NotNil(t, s.Listings)
}

func TestSelectCityResetsUniversity(t *testing.T) {
	reg := registry.Default()
	s := selectedState(t)
	require.True(t, s.CanSearch())

	s, err := Reduce(s, SelectCity{City: reg.FindCity("bangalore")})
	require.NoError(t, err)

	assert.Equal(t, "Bangalore", s.Selection.City.Name)
	assert.Nil(t, s.Selection.University)
	assert.False(t, s.CanSearch())
}

func TestSelectUniversityRequiresCity(t *testing.T) {
	_, err := Reduce(NewState(), SelectUniversity{University: &models.University{ID: "iitm"}})
	assert.ErrorIs(t, err, ErrUnknownUniversity)
}

func TestSearchDisabledWithoutUniversity(t *testing.T) {
	reg := registry.Default()
	s, err := Reduce(NewState(), SelectCity{City: reg.FindCity("delhi")})
	require.NoError(t, err)

	next, err := Reduce(s, SearchStarted{})
	assert.ErrorIs(t, err, ErrSearchDisabled)
	assert.Equal(t, s, next)
}

func TestSearchStartedEntersLoading(t *testing.T) {
	s, err := Reduce(selectedState(t), SearchStarted{})
	require.NoError(t, err)

	assert.Equal(t, ViewListings, s.View)
	assert.True(t, s.Loading)
	assert.Equal(t, uint64(1), s.Seq)
	assert.Empty(t, s.Listings)
}

func TestSearchResolvedAppliesMatchingSeq(t *testing.T) {
	s := resolvedState(t, []models.Listing{{ID: "1"}, {ID: "2"}})

	assert.False(t, s.Loading)
	assert.Len(t, s.Listings, 2)
}

func TestSearchResolvedIgnoresStaleSeq(t *testing.T) {
	s, err := Reduce(selectedState(t), SearchStarted{})
	require.NoError(t, err)
	s, err = Reduce(s, SearchStarted{})
	require.NoError(t, err)
	require.Equal(t, uint64(2), s.Seq)

	next, err := Reduce(s, SearchResolved{Seq: 1, Listings: []models.Listing{{ID: "old"}}})
	assert.ErrorIs(t, err, ErrStaleResult)
	assert.True(t, next.Loading)
	assert.Empty(t, next.Listings)
}

func TestSearchResolvedNilListingsBecomeEmpty(t *testing.T) {
	s := resolvedState(t, nil)

	assert.NotNil(t, s.Listings)
	assert.Empty(t, s.Listings)
}

func TestSelectListingAndBack(t *testing.T) {
	s := resolvedState(t, []models.Listing{{ID: "1"}, {ID: "2"}})

	_, err := Reduce(s, SelectListing{ID: "missing"})
	assert.ErrorIs(t, err, ErrUnknownListing)

	s, err = Reduce(s, SelectListing{ID: "2"})
	require.NoError(t, err)
	assert.Equal(t, ViewDetail, s.View)
	require.NotNil(t, s.Selected())
	assert.Equal(t, "2", s.Selected().ID)

	s, err = Reduce(s, Back{})
	require.NoError(t, err)
	assert.Equal(t, ViewListings, s.View)
	assert.Len(t, s.Listings, 2)
}

func TestSelectListingWhileLoading(t *testing.T) {
	s, err := Reduce(selectedState(t), SearchStarted{})
	require.NoError(t, err)

	_, err = Reduce(s, SelectListing{ID: "1"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBackOnlyFromDetail(t *testing.T) {
	_, err := Reduce(NewState(), Back{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateListingReplacesByID(t *testing.T) {
	original := []models.Listing{{ID: "1", Name: "Old"}, {ID: "2"}}
	s := resolvedState(t, original)
	s, err := Reduce(s, SelectListing{ID: "1"})
	require.NoError(t, err)

	s, err = Reduce(s, UpdateListing{Listing: models.Listing{ID: "1", Name: "New"}})
	require.NoError(t, err)

	assert.Equal(t, "New", s.Selected().Name)
	assert.Equal(t, "Old", original[0].Name)

	_, err = Reduce(s, UpdateListing{Listing: models.Listing{ID: "9"}})
	assert.ErrorIs(t, err, ErrUnknownListing)
}

func TestGoHomeDiscardsResultsAndKeepsSelection(t *testing.T) {
	s := resolvedState(t, []models.Listing{{ID: "1"}})
	s, err := Reduce(s, SelectListing{ID: "1"})
	require.NoError(t, err)
	seq := s.Seq

	s, err = Reduce(s, GoHome{})
	require.NoError(t, err)

	assert.Equal(t, ViewHome, s.View)
	assert.Empty(t, s.Listings)
	assert.Nil(t, s.Selected())
	assert.True(t, s.CanSearch())
	assert.Equal(t, seq, s.Seq)
}

func TestGoHomeInvalidatesInFlightSearch(t *testing.T) {
	s, err := Reduce(selectedState(t), SearchStarted{})
	require.NoError(t, err)
	inFlight := s.Seq

	s, err = Reduce(s, GoHome{})
	require.NoError(t, err)
	assert.False(t, s.Loading)

	_, err = Reduce(s, SearchResolved{Seq: inFlight, Listings: []models.Listing{{ID: "1"}}})
	assert.ErrorIs(t, err, ErrStaleResult)
}

func TestFiltersSurviveNavigation(t *testing.T) {
	criteria := models.FilterCriteria{MaxPrice: 9000, MinRating: 4, MaxDistance: 1}
	s, err := Reduce(selectedState(t), SetFilters{Criteria: criteria})
	require.NoError(t, err)

	s, err = Reduce(s, SearchStarted{})
	require.NoError(t, err)
	s, err = Reduce(s, GoHome{})
	require.NoError(t, err)

	assert.Equal(t, criteria, s.Criteria)
}

func TestOpenAdminRequiresAdminProfile(t *testing.T) {
	_, err := Reduce(NewState(), OpenAdmin{})
	assert.ErrorIs(t, err, ErrForbidden)

	s, err := Reduce(NewState(), SignIn{Profile: models.Profile{ID: "u1", Name: "rahul"}})
	require.NoError(t, err)
	assert.Equal(t, ViewHome, s.View)
	_, err = Reduce(s, OpenAdmin{})
	assert.ErrorIs(t, err, ErrForbidden)

	s, err = Reduce(NewState(), SignIn{Profile: models.Profile{ID: "a1", IsAdmin: true}})
	require.NoError(t, err)
	assert.Equal(t, ViewAdmin, s.View)
}

func TestCommunityAndHome(t *testing.T) {
	s := resolvedState(t, []models.Listing{{ID: "1"}})

	s, err := Reduce(s, OpenCommunity{})
	require.NoError(t, err)
	assert.Equal(t, ViewCommunity, s.View)

	s, err = Reduce(s, GoHome{})
	require.NoError(t, err)
	assert.Equal(t, ViewHome, s.View)
	assert.Empty(t, s.Listings)
}

func TestOverlaysDoNotChangeView(t *testing.T) {
	s := resolvedState(t, []models.Listing{{ID: "1"}})

	s, err := Reduce(s, SetOverlay{Overlay: OverlayListProperty, Open: true})
	require.NoError(t, err)
	assert.True(t, s.Overlays.ListProperty)
	assert.Equal(t, ViewListings, s.View)

	s, err = Reduce(s, SetOverlay{Overlay: OverlayAuth, Open: true})
	require.NoError(t, err)
	s, err = Reduce(s, SignIn{Profile: models.Profile{ID: "u1"}})
	require.NoError(t, err)
	assert.False(t, s.Overlays.Auth)

	_, err = Reduce(s, SetOverlay{Overlay: "chat", Open: true})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSignOutReturnsHome(t *testing.T) {
	s, err := Reduce(NewState(), SignIn{Profile: models.Profile{ID: "a1", IsAdmin: true}})
	require.NoError(t, err)

	s, err = Reduce(s, SignOut{})
	require.NoError(t, err)

	assert.Nil(t, s.Profile)
	assert.Equal(t, ViewHome, s.View)
}
