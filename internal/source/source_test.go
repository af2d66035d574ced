package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akozadaev/findmydorm/internal/models"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SelectListingsByCity(ctx context.Context, cityPattern string) ([]models.ListingRow, error) {
	args := m.Called(ctx, cityPattern)
	rows, _ := args.Get(0).([]models.ListingRow)
	return rows, args.Error(1)
}

func (m *mockStore) SelectRoomTypesByListingIDs(ctx context.Context, ids []string) ([]models.RoomTypeRow, error) {
	args := m.Called(ctx, ids)
	rows, _ := args.Get(0).([]models.RoomTypeRow)
	return rows, args.Error(1)
}

type fakeGenerator struct {
	raw   []byte
	err   error
	calls int
}

func (f *fakeGenerator) GenerateListings(_ context.Context, _, _ string, _ int) ([]byte, error) {
	f.calls++
	return f.raw, f.err
}

func strPtr(s string) *string { return &s }
func numPtr(f float64) *float64 { return &f }

func TestFetchFromStoreJoinsRoomTypes(t *testing.T) {
	store := new(mockStore)
	store.On("SelectListingsByCity", mock.Anything, "Chennai").Return([]models.ListingRow{
		{ID: "h1", Name: "Lotus PG", Type: strPtr("PG"), City: "Chennai", Rating: numPtr(4.1), Address: "Adyar", Distance: strPtr("0.8 km")},
		{ID: "h2", Name: "Marina Dorms", Type: strPtr("CASTLE"), City: "chennai", Address: ""},
	}, nil)
	store.On("SelectRoomTypesByListingIDs", mock.Anything, []string{"h1", "h2"}).Return([]models.RoomTypeRow{
		{ID: "r1", ListingID: "h1", Type: "Single", Price: 9000},
		{ID: "r2", ListingID: "h1", Type: "Double", Price: 7000},
	}, nil)

	gen := &fakeGenerator{}
	a := NewAdapter(store, gen, 4, zap.NewNop())
	got := a.FetchListings(context.Background(), "Chennai", "IIT Madras")

	require.Len(t, got, 2)
	assert.Equal(t, "Lotus PG", got[0].Name)
	assert.Equal(t, "0.8 km", got[0].Distance)
	assert.Equal(t, 4.1, got[0].Rating)
	assert.Equal(t, Currency, got[0].Currency)
	require.Len(t, got[0].RoomTypes, 2)
	assert.Equal(t, 7000.0, got[0].StartingPrice())

	assert.Equal(t, models.ListingTypePG, got[1].Type, "unknown type falls back to PG")
	assert.Equal(t, "Unknown", got[1].Distance)
	assert.Equal(t, 0.0, got[1].Rating)
	assert.Empty(t, got[1].RoomTypes)
	assert.Equal(t, []string{placeholderImage}, got[1].Images)

	assert.Zero(t, gen.calls, "generative path must not run when a store is configured")
	store.AssertExpectations(t)
}

func TestFetchFromStoreDistanceNearCampus(t *testing.T) {
	store := new(mockStore)
	store.On("SelectListingsByCity", mock.Anything, "Delhi").Return([]models.ListingRow{
		{ID: "h1", Name: "North Campus PG", Address: "Kamla Nagar"},
	}, nil)
	store.On("SelectRoomTypesByListingIDs", mock.Anything, []string{"h1"}).Return([]models.RoomTypeRow{}, nil)

	got := NewAdapter(store, nil, 4, nil).FetchListings(context.Background(), "Delhi", "")
	require.Len(t, got, 1)
	assert.Equal(t, "Near Campus", got[0].Distance)
}

func TestFetchFromStoreListingQueryFailureIsEmpty(t *testing.T) {
	store := new(mockStore)
	store.On("SelectListingsByCity", mock.Anything, "Mumbai").Return(nil, errors.New("connection refused"))

	got := NewAdapter(store, &fakeGenerator{}, 4, nil).FetchListings(context.Background(), "Mumbai", "IIT Bombay")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	store.AssertNotCalled(t, "SelectRoomTypesByListingIDs", mock.Anything, mock.Anything)
}

func TestFetchFromStoreRoomQueryFailureNeverPartiallyJoins(t *testing.T) {
	store := new(mockStore)
	store.On("SelectListingsByCity", mock.Anything, "Mumbai").Return([]models.ListingRow{{ID: "h1", Name: "Powai PG"}}, nil)
	store.On("SelectRoomTypesByListingIDs", mock.Anything, []string{"h1"}).Return(nil, errors.New("timeout"))

	got := NewAdapter(store, nil, 4, nil).FetchListings(context.Background(), "Mumbai", "IIT Bombay")
	assert.Empty(t, got)
}

func TestFetchFromStoreNoRowsSkipsRoomQuery(t *testing.T) {
	store := new(mockStore)
	store.On("SelectListingsByCity", mock.Anything, "Trichy").Return([]models.ListingRow{}, nil)

	got := NewAdapter(store, nil, 4, nil).FetchListings(context.Background(), "Trichy", "NIT Trichy")
	assert.Empty(t, got)
	store.AssertNotCalled(t, "SelectRoomTypesByListingIDs", mock.Anything, mock.Anything)
}

func TestFetchWithoutStoreOrGeneratorReturnsCatalog(t *testing.T) {
	got := NewAdapter(nil, nil, 4, nil).FetchListings(context.Background(), "Chennai", "IIT Madras")

	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "Sri Sai Student Living", got[0].Name)
	assert.Equal(t, "Elite Dorms", got[1].Name)
	assert.Equal(t, "Sunshine Apartments", got[2].Name)
	assert.Contains(t, got[0].Description, "IIT Madras")
	assert.Contains(t, got[0].Address, "Chennai")
}

func TestFetchGeneratorFailureReturnsCatalog(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	got := NewAdapter(nil, gen, 4, nil).FetchListings(context.Background(), "Chennai", "Anna University")

	assert.Equal(t, 1, gen.calls)
	require.Len(t, got, 3)
	assert.Equal(t, "Sri Sai Student Living", got[0].Name)
}

func TestFetchGeneratedListings(t *testing.T) {
	gen := &fakeGenerator{raw: []byte(`[
		{"id":"x","name":"Kaveri PG","type":"PG","distance":"0.7 km","rating":4.3,"reviewCount":12,"verified":true,
		 "amenities":["Wifi"],"description":"Near gate","address":"Guindy","contact":{"phone":"+91 90000 00000","email":"a@b.in"},
		 "coordinates":{"lat":13.0,"lng":80.2},"roomTypes":[{"type":"Single","price":9500}]},
		{"id":"y","name":"Adyar Dorm","type":"DORM","currency":"INR","rating":3.9,"amenities":[],"description":"",
		 "contact":{},"coordinates":{"lat":13.01,"lng":80.25},"roomTypes":[]}
	]`)}
	a := NewAdapter(nil, gen, 4, nil)
	a.now = func() time.Time { return time.Unix(0, 42) }

	got := a.FetchListings(context.Background(), "Chennai", "IIT Madras")

	require.Len(t, got, 2)
	assert.Equal(t, "gemini-0-42", got[0].ID)
	assert.Equal(t, "gemini-1-42", got[1].ID)
	assert.Equal(t, Currency, got[0].Currency)
	assert.Equal(t, "INR", got[1].Currency)
	assert.Len(t, got[0].Images, 2)
	assert.Equal(t, 9500.0, got[0].StartingPrice())
	assert.Equal(t, 0.0, got[1].StartingPrice())
}

func TestFetchGeneratedInvalidBatchFallsBack(t *testing.T) {
	invalid := map[string]string{
		"not json":      `{"oops"`,
		"empty":         `[]`,
		"bad enum":      `[{"id":"x","name":"A","type":"HOTEL","rating":4,"amenities":[],"description":"","contact":{},"coordinates":{"lat":1,"lng":2},"roomTypes":[]}]`,
		"missing rooms": `[{"id":"x","name":"A","type":"PG","rating":4,"amenities":[],"description":"","contact":{},"coordinates":{"lat":1,"lng":2}}]`,
		"rating range":  `[{"id":"x","name":"A","type":"PG","rating":7,"amenities":[],"description":"","contact":{},"coordinates":{"lat":1,"lng":2},"roomTypes":[]}]`,
		"room price":    `[{"id":"x","name":"A","type":"PG","rating":4,"amenities":[],"description":"","contact":{},"coordinates":{"lat":1,"lng":2},"roomTypes":[{"type":"S"}]}]`,
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			got := NewAdapter(nil, &fakeGenerator{raw: []byte(raw)}, 4, nil).FetchListings(context.Background(), "Delhi", "IIT Delhi")
			require.Len(t, got, 3)
			assert.Equal(t, "1", got[0].ID)
		})
	}
}

func TestDecodeGeneratedErrorsAreSchemaValidation(t *testing.T) {
	_, err := decodeGenerated([]byte(`[{"name":"A"}]`), time.Now())
	assert.ErrorIs(t, err, ErrSchemaValidation)
}

func TestGenerateWithoutGeneratorIsNotConfigured(t *testing.T) {
	_, err := NewAdapter(nil, nil, 4, nil).generate(context.Background(), "Delhi", "DU")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewGeminiGeneratorWithoutKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestListingsSchemaRequiredFields(t *testing.T) {
	s := listingsSchema()
	require.NotNil(t, s.Items)
	assert.ElementsMatch(t, requiredFields, s.Items.Required)
	assert.Equal(t, []string{"DORM", "PG", "APARTMENT"}, s.Items.Properties["type"].Enum)
	for _, f := range requiredFields {
		assert.Contains(t, s.Items.Properties, f)
	}
}
