package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/findmydorm/internal/models"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `Chennai`, escapeLike("Chennai"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b\\c`, escapeLike(`a_b\c`))
}

func TestFallbackProfile(t *testing.T) {
	assert.Equal(t, "rahul", FallbackProfile("u1", "rahul@iitm.ac.in").Name)
	assert.Equal(t, "User", FallbackProfile("u1", "").Name)
	assert.Equal(t, "User", FallbackProfile("u1", "@iitm.ac.in").Name)
	assert.Equal(t, "priya", FallbackProfile("u1", "priya").Name)

	p := FallbackProfile("u2", "arun@annauniv.edu")
	assert.False(t, p.Verified)
	assert.False(t, p.IsAdmin)
	assert.Equal(t, "u2", p.ID)
}

func TestUnconfigured(t *testing.T) {
	ctx := context.Background()
	var u Unconfigured

	reviews, err := u.ListReviews(ctx, "1")
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)

	assert.ErrorIs(t, u.CreatePost(ctx, models.NewPost{}), ErrNotConfigured)
	_, err = u.InsertListing(ctx, models.Listing{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	p, err := u.GetProfile(ctx, "u1", "someone@du.ac.in")
	require.NoError(t, err)
	assert.Equal(t, "someone", p.Name)
}

func TestBuildCityQueryEscapesWildcards(t *testing.T) {
	q := buildCityQuery("Ban*galore?")
	wildcard := q["query"].(map[string]interface{})["wildcard"].(map[string]interface{})["city"].(map[string]interface{})

	assert.Equal(t, `*Ban\*galore\?*`, wildcard["value"])
	assert.Equal(t, true, wildcard["case_insensitive"])
}

func TestElasticsearchSelectListingsAndRooms(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		body, _ := io.ReadAll(r.Body)

		switch r.URL.Path {
		case "/hostels/_search":
			assert.Contains(t, string(body), `"*chennai*"`)
			_, _ = w.Write([]byte(`{"hits":{"hits":[
				{"_source":{"id":"h1","name":"Lotus PG","type":"PG","city":"Chennai","rating":4.1,
				 "amenities":["Wifi"],"images":[],"address":"Adyar","location":{"lat":13,"lon":80.2}}}
			]}}`))
		case "/hostels_room_types/_search":
			assert.Contains(t, string(body), `"hostel_id":["h1"]`)
			_, _ = w.Write([]byte(`{"hits":{"hits":[
				{"_source":{"id":"h1-0","hostel_id":"h1","position":0,"type":"Single","price":9000}}
			]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	es := NewElasticsearchStorageWithURL(nil, "hostels", srv.URL+"/")
	ctx := context.Background()

	rows, err := es.SelectListingsByCity(ctx, "chennai")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lotus PG", rows[0].Name)
	require.NotNil(t, rows[0].Type)
	assert.Equal(t, "PG", *rows[0].Type)
	assert.Nil(t, rows[0].Distance)
	require.NotNil(t, rows[0].Lng)
	assert.Equal(t, 80.2, *rows[0].Lng)

	rooms, err := es.SelectRoomTypesByListingIDs(ctx, []string{"h1"})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "h1", rooms[0].ListingID)
	assert.Equal(t, 9000.0, rooms[0].Price)

	assert.Equal(t, []string{"/hostels/_search", "/hostels_room_types/_search"}, paths)
}

func TestElasticsearchSearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	es := NewElasticsearchStorageWithURL(nil, "hostels", srv.URL)
	_, err := es.SelectListingsByCity(context.Background(), "Delhi")
	assert.Error(t, err)
}

func TestElasticsearchBulkIndexListings(t *testing.T) {
	var lines []map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_bulk", r.URL.Path)
		assert.Equal(t, "application/x-ndjson", r.Header.Get("Content-Type"))
		sc := bufio.NewScanner(r.Body)
		for sc.Scan() {
			var m map[string]interface{}
			require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
			lines = append(lines, m)
		}
		_, _ = w.Write([]byte(`{"errors":false,"items":[]}`))
	}))
	defer srv.Close()

	es := NewElasticsearchStorageWithURL(nil, "hostels", srv.URL)
	err := es.BulkIndexListings(context.Background(), []models.Listing{{
		ID: "1", Name: "Elite Dorms", City: "Chennai",
		RoomTypes: []models.RoomType{{Type: "4-Sharing Dorm", Price: 6500}, {Type: "2-Sharing Luxury", Price: 14000}},
	}})
	require.NoError(t, err)

	// Объект и две комнаты: по две строки (meta + документ) на каждый.
	require.Len(t, lines, 6)
	meta := lines[2]["index"].(map[string]interface{})
	assert.Equal(t, "hostels_room_types", meta["_index"])
	assert.Equal(t, "1-0", meta["_id"])
	assert.True(t, strings.HasPrefix(lines[1]["name"].(string), "Elite"))
}

func TestElasticsearchInsertListingAssignsID(t *testing.T) {
	var docs []map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := bufio.NewScanner(r.Body)
		for sc.Scan() {
			var m map[string]interface{}
			require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
			docs = append(docs, m)
		}
		_, _ = w.Write([]byte(`{"errors":false}`))
	}))
	defer srv.Close()

	es := NewElasticsearchStorageWithURL(nil, "hostels", srv.URL)
	id, err := es.InsertListing(context.Background(), models.Listing{
		Name:      "Lakshmi Ladies PG",
		RoomTypes: []models.RoomType{{Type: "2-Sharing", Price: 7000}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Len(t, docs, 4)
	assert.Equal(t, id, docs[1]["id"])
	assert.NotEmpty(t, docs[1]["listed_since"])
	assert.Equal(t, id, docs[3]["hostel_id"])
}

// roomIndexServer отдает комнаты постранично, учитывая size и search_after.
func roomIndexServer(t *testing.T, hostels, roomsPerHostel, maxHits int) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	type room struct {
		HostelID string `json:"hostel_id"`
		Position int    `json:"position"`
	}
	var rooms []room
	for h := 0; h < hostels; h++ {
		for p := 0; p < roomsPerHostel; p++ {
			rooms = append(rooms, room{HostelID: fmt.Sprintf("h%03d", h), Position: p})
		}
	}

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		var body struct {
			Size        int           `json:"size"`
			SearchAfter []interface{} `json:"search_after"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		start := 0
		if len(body.SearchAfter) == 2 {
			id := body.SearchAfter[0].(string)
			pos := int(body.SearchAfter[1].(float64))
			for start < len(rooms) && (rooms[start].HostelID < id || rooms[start].HostelID == id && rooms[start].Position <= pos) {
				start++
			}
		}
		size := body.Size
		if maxHits > 0 && size > maxHits {
			size = maxHits
		}
		end := start + size
		if end > len(rooms) {
			end = len(rooms)
		}

		type hit struct {
			Source map[string]interface{} `json:"_source"`
			Sort   []interface{}          `json:"sort"`
		}
		hits := make([]hit, 0, end-start)
		for _, rm := range rooms[start:end] {
			hits = append(hits, hit{
				Source: map[string]interface{}{
					"id": fmt.Sprintf("%s-%d", rm.HostelID, rm.Position), "hostel_id": rm.HostelID,
					"position": rm.Position, "type": "Single", "price": 9000,
				},
				Sort: []interface{}{rm.HostelID, rm.Position},
			})
		}
		resp := map[string]interface{}{"hits": map[string]interface{}{
			"total": map[string]interface{}{"value": len(rooms), "relation": "eq"},
			"hits":  hits,
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func hostelIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("h%03d", i)
	}
	return ids
}

func TestElasticsearchRoomTypesArePagedThrough(t *testing.T) {
	srv, requests := roomIndexServer(t, 200, 3, 0)

	es := NewElasticsearchStorageWithURL(nil, "hostels", srv.URL)
	rooms, err := es.SelectRoomTypesByListingIDs(context.Background(), hostelIDs(200))
	require.NoError(t, err)

	require.Len(t, rooms, 600)
	assert.Equal(t, int32(2), requests.Load())

	perHostel := make(map[string]int)
	for _, r := range rooms {
		perHostel[r.ListingID]++
	}
	assert.Len(t, perHostel, 200)
	for id, n := range perHostel {
		assert.Equal(t, 3, n, id)
	}
	assert.Equal(t, "h199-2", rooms[599].ID)
}

func TestElasticsearchSmallPages(t *testing.T) {
	srv, requests := roomIndexServer(t, 5, 3, 0)

	es := NewElasticsearchStorageWithURL(nil, "hostels", srv.URL)
	es.pageSize = 4
	rooms, err := es.SelectRoomTypesByListingIDs(context.Background(), hostelIDs(5))
	require.NoError(t, err)

	require.Len(t, rooms, 15)
	assert.Equal(t, int32(4), requests.Load())
	for i := 1; i < len(rooms); i++ {
		assert.NotEqual(t, rooms[i-1].ID, rooms[i].ID)
	}
}

func TestElasticsearchTruncatedResultIsAnError(t *testing.T) {
	// Сервер отдает не больше 100 попаданий на запрос, хотя нашел 600.
	srv, _ := roomIndexServer(t, 200, 3, 100)

	es := NewElasticsearchStorageWithURL(nil, "hostels", srv.URL)
	rooms, err := es.SelectRoomTypesByListingIDs(context.Background(), hostelIDs(200))

	assert.ErrorIs(t, err, ErrIncompleteResult)
	assert.Nil(t, rooms)
}

func TestElasticsearchSearchSendsPagingParameters(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":0,"relation":"eq"},"hits":[]}}`))
	}))
	defer srv.Close()

	es := NewElasticsearchStorageWithURL(nil, "hostels", srv.URL)
	rows, err := es.SelectListingsByCity(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Equal(t, float64(searchPageSize), body["size"])
	assert.Equal(t, true, body["track_total_hits"])
	assert.NotContains(t, body, "search_after")
	sort := body["sort"].([]interface{})
	require.Len(t, sort, 2)
	assert.Contains(t, sort[1], "id")
}
