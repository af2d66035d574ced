package moderation

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/findmydorm/internal/models"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) InsertListing(ctx context.Context, l models.Listing) (string, error) {
	args := m.Called(ctx, l)
	return args.String(0), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	profiles, _ := args.Get(0).([]models.Profile)
	return profiles, args.Error(1)
}

func (m *mockUsers) ToggleVerified(ctx context.Context, userID string) (models.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.Profile), args.Error(1)
}

func validSubmission() models.PropertySubmission {
	return models.PropertySubmission{
		OwnerName:    "Lakshmi",
		PropertyName: "Lakshmi Ladies PG",
		Type:         models.ListingTypePG,
		City:         "Chennai",
		Address:      "7, Gandhi Road, Adyar",
		ContactPhone: "+91 90000 11111",
		ContactEmail: "owner@lakshmipg.in",
		Description:  "Home food & Wifi",
		Amenities:    []string{"Wifi", "Food"},
		RoomTypes: []models.RoomType{
			{Type: "2-Sharing", Price: 7000, Description: "Attached bath"},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(validSubmission()))

	tests := []struct {
		name   string
		mutate func(*models.PropertySubmission)
	}{
		{"no owner", func(s *models.PropertySubmission) { s.OwnerName = " " }},
		{"no property name", func(s *models.PropertySubmission) { s.PropertyName = "" }},
		{"bad type", func(s *models.PropertySubmission) { s.Type = "VILLA" }},
		{"no city", func(s *models.PropertySubmission) { s.City = "" }},
		{"no rooms", func(s *models.PropertySubmission) { s.RoomTypes = nil }},
		{"unnamed room", func(s *models.PropertySubmission) { s.RoomTypes[0].Type = "" }},
		{"negative price", func(s *models.PropertySubmission) { s.RoomTypes[0].Price = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)
			assert.ErrorIs(t, Validate(sub), ErrInvalidSubmission)
		})
	}
}

func TestSubmitQueuesAndReturnsMailto(t *testing.T) {
	svc := NewService(&mockWriter{}, &mockUsers{}, "admin@findmydorm.in", nil)

	sub, link, err := svc.Submit(validSubmission())
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.SubmittedAt.IsZero())
	require.Len(t, svc.Pending(), 1)
	assert.Equal(t, sub.ID, svc.Pending()[0].ID)

	require.True(t, strings.HasPrefix(link, "mailto:admin@findmydorm.in?"))
	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "New Property Listing Request: Lakshmi Ladies PG", q.Get("subject"))
	assert.Contains(t, q.Get("body"), "Home food & Wifi")
	assert.Contains(t, q.Get("body"), "- 2-Sharing: ₹7000 (Attached bath)")
	assert.NotContains(t, link, "+")
}

func TestSubmitRejectsInvalid(t *testing.T) {
	svc := NewService(&mockWriter{}, &mockUsers{}, "admin@findmydorm.in", nil)

	sub := validSubmission()
	sub.RoomTypes = nil
	_, _, err := svc.Submit(sub)

	assert.ErrorIs(t, err, ErrInvalidSubmission)
	assert.Empty(t, svc.Pending())
}

func TestApproveInsertsListing(t *testing.T) {
	writer := &mockWriter{}
	svc := NewService(writer, &mockUsers{}, "admin@findmydorm.in", nil)
	sub, _, err := svc.Submit(validSubmission())
	require.NoError(t, err)

	writer.On("InsertListing", mock.Anything, mock.MatchedBy(func(l models.Listing) bool {
		return l.Name == "Lakshmi Ladies PG" && l.Verified && len(l.RoomTypes) == 1 &&
			l.Contact.Email == "owner@lakshmipg.in"
	})).Return("hostel-42", nil).Once()

	id, err := svc.Approve(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "hostel-42", id)
	assert.Empty(t, svc.Pending())
	writer.AssertExpectations(t)
}

func TestApproveFailureKeepsSubmission(t *testing.T) {
	writer := &mockWriter{}
	svc := NewService(writer, &mockUsers{}, "admin@findmydorm.in", nil)
	first, _, err := svc.Submit(validSubmission())
	require.NoError(t, err)
	second, _, err := svc.Submit(validSubmission())
	require.NoError(t, err)

	writer.On("InsertListing", mock.Anything, mock.Anything).Return("", errors.New("db down")).Once()

	_, err = svc.Approve(context.Background(), first.ID)
	require.Error(t, err)

	pending := svc.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
}

func TestApproveAndRejectUnknown(t *testing.T) {
	svc := NewService(&mockWriter{}, &mockUsers{}, "admin@findmydorm.in", nil)

	_, err := svc.Approve(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
	assert.ErrorIs(t, svc.Reject("nope"), ErrSubmissionNotFound)
}

func TestReject(t *testing.T) {
	svc := NewService(&mockWriter{}, &mockUsers{}, "admin@findmydorm.in", nil)
	sub, _, err := svc.Submit(validSubmission())
	require.NoError(t, err)

	require.NoError(t, svc.Reject(sub.ID))
	assert.Empty(t, svc.Pending())
}

func TestUsers(t *testing.T) {
	users := &mockUsers{}
	svc := NewService(&mockWriter{}, users, "admin@findmydorm.in", nil)
	ctx := context.Background()

	users.On("ListProfiles", ctx).Return([]models.Profile{{ID: "u1", Name: "Rahul Sharma", Verified: true}}, nil)
	users.On("ToggleVerified", ctx, "u1").Return(models.Profile{ID: "u1", Verified: false}, nil)
	users.On("ToggleVerified", ctx, "u9").Return(models.Profile{}, errors.New("not found"))

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	p, err := svc.ToggleVerified(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, p.Verified)

	_, err = svc.ToggleVerified(ctx, "u9")
	assert.Error(t, err)
	users.AssertExpectations(t)
}

func TestMailBodyLayout(t *testing.T) {
	body := MailBody("admin@findmydorm.in", validSubmission())

	assert.True(t, strings.HasPrefix(body, "Dear Admin (admin@findmydorm.in),\n"))
	assert.Contains(t, body, "Owner Name: Lakshmi\n")
	assert.Contains(t, body, "--- Amenities ---\nWifi, Food\n")
	assert.True(t, strings.HasSuffix(body, "contact me for verification.\n"))
}
