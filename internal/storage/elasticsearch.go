// Package storage содержит реализации хранилищ для PostgreSQL и Elasticsearch/OpenSearch.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	"github.com/akozadaev/findmydorm/internal/models"
)

// searchPageSize задает размер страницы выдачи; страницы читаются через search_after.
const searchPageSize = 500

// ErrIncompleteResult означает, что прочитано меньше документов, чем нашел поиск.
var ErrIncompleteResult = errors.New("incomplete search result")

// ElasticsearchStorage хранит объекты и варианты размещения в двух индексах
// Elasticsearch/OpenSearch: <index> и <index>_room_types.
// Использует прямые HTTP запросы для совместимости с OpenSearch.
type ElasticsearchStorage struct {
	client     *elasticsearch.Client // Официальный клиент Elasticsearch
	index      string                // Индекс объектов
	roomIndex  string                // Индекс вариантов размещения
	httpClient *http.Client          // HTTP клиент для прямых запросов
	baseURL    string                // Базовый URL Elasticsearch/OpenSearch
	pageSize   int                   // Размер страницы выдачи
}

// esListing представляет документ объекта в индексе.
type esListing struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type,omitempty"`
	City         string     `json:"city"`
	Distance     string     `json:"distance,omitempty"`
	Rating       *float64   `json:"rating,omitempty"`
	Verified     bool       `json:"verified"`
	Amenities    []string   `json:"amenities"`
	Images       []string   `json:"images"`
	Description  string     `json:"description"`
	Address      string     `json:"address"`
	ContactPhone string     `json:"contact_phone"`
	ContactEmail string     `json:"contact_email"`
	Location     *esGeo     `json:"location,omitempty"`
	ListedSince  *time.Time `json:"listed_since,omitempty"`
}

type esGeo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// esRoomType представляет документ варианта размещения. Position сохраняет исходный порядок.
type esRoomType struct {
	ID          string  `json:"id"`
	HostelID    string  `json:"hostel_id"`
	Position    int     `json:"position"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// NewElasticsearchStorageWithURL создает новый экземпляр ElasticsearchStorage с указанным URL.
// Используется для поддержки OpenSearch через прямые HTTP запросы.
func NewElasticsearchStorageWithURL(client *elasticsearch.Client, index string, baseURL string) *ElasticsearchStorage {
	return &ElasticsearchStorage{
		client:     client,
		index:      index,
		roomIndex:  index + "_room_types",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   searchPageSize,
	}
}

// Indices возвращает имена индексов объектов и вариантов размещения.
func (es *ElasticsearchStorage) Indices() (string, string) {
	return es.index, es.roomIndex
}

// CreateIndex создает индекс с заданным маппингом.
// Если индекс уже существует, функция возвращает nil без ошибки.
func (es *ElasticsearchStorage) CreateIndex(ctx context.Context, index, mappingJSON string) error {
	res, err := es.client.Indices.Exists([]string{index}, es.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		// Индекс уже существует
		return nil
	}

	res, err = es.client.Indices.Create(
		index,
		es.client.Indices.Create.WithBody(strings.NewReader(mappingJSON)),
		es.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index: %s", string(body))
	}

	return nil
}

// BulkIndexListings индексирует объекты и их варианты размещения за один запрос.
// Использует Bulk API; повторная индексация перезаписывает документы с теми же ID.
func (es *ElasticsearchStorage) BulkIndexListings(ctx context.Context, listings []models.Listing) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, l := range listings {
		if err := writeBulkPair(enc, es.index, l.ID, toESListing(l)); err != nil {
			return err
		}
		for i, r := range l.RoomTypes {
			doc := esRoomType{
				ID:          fmt.Sprintf("%s-%d", l.ID, i),
				HostelID:    l.ID,
				Position:    i,
				Type:        r.Type,
				Price:       r.Price,
				Description: r.Description,
			}
			if err := writeBulkPair(enc, es.roomIndex, doc.ID, doc); err != nil {
				return err
			}
		}
	}
	if buf.Len() == 0 {
		return nil
	}

	// Используем прямой HTTP запрос для обхода проверки типа сервера
	url := fmt.Sprintf("%s/_bulk?refresh=true", es.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error bulk indexing: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if result.Errors {
		return fmt.Errorf("bulk indexing reported item errors")
	}

	return nil
}

// InsertListing индексирует один объект вместе с вариантами размещения.
// Если ID пустой, он генерируется.
func (es *ElasticsearchStorage) InsertListing(ctx context.Context, l models.Listing) (string, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.ListedSince == nil {
		now := time.Now().UTC()
		l.ListedSince = &now
	}
	if err := es.BulkIndexListings(ctx, []models.Listing{l}); err != nil {
		return "", err
	}
	return l.ID, nil
}

// SelectListingsByCity ищет объекты по подстроке в названии города без учета регистра.
func (es *ElasticsearchStorage) SelectListingsByCity(ctx context.Context, cityPattern string) ([]models.ListingRow, error) {
	var hits []esListing
	if err := es.search(ctx, es.index, buildCityQuery(cityPattern), &hits); err != nil {
		return nil, err
	}

	rows := make([]models.ListingRow, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, h.toRow())
	}
	return rows, nil
}

// SelectRoomTypesByListingIDs возвращает варианты размещения указанных объектов.
func (es *ElasticsearchStorage) SelectRoomTypesByListingIDs(ctx context.Context, ids []string) ([]models.RoomTypeRow, error) {
	if len(ids) == 0 {
		return []models.RoomTypeRow{}, nil
	}

	var hits []esRoomType
	if err := es.search(ctx, es.roomIndex, buildRoomTypesQuery(ids), &hits); err != nil {
		return nil, err
	}

	rooms := make([]models.RoomTypeRow, 0, len(hits))
	for _, h := range hits {
		rooms = append(rooms, models.RoomTypeRow{
			ID:          h.ID,
			ListingID:   h.HostelID,
			Type:        h.Type,
			Price:       h.Price,
			Description: h.Description,
		})
	}
	return rooms, nil
}

// search читает все попадания запроса постранично и декодирует их _source в out (указатель на срез).
// Сортировка запроса должна однозначно упорядочивать документы: по ней строится search_after.
// Если прочитано меньше документов, чем насчитал поиск, возвращается ErrIncompleteResult.
func (es *ElasticsearchStorage) search(ctx context.Context, index string, query map[string]interface{}, out interface{}) error {
	var (
		sources []json.RawMessage
		after   []interface{}
		total   int
		exact   bool
	)
	for {
		page, err := es.searchPage(ctx, index, query, after)
		if err != nil {
			return err
		}
		total, exact = page.Hits.Total.Value, page.Hits.Total.Relation == "eq"
		for _, h := range page.Hits.Hits {
			sources = append(sources, h.Source)
		}

		hits := page.Hits.Hits
		if len(hits) < es.pageSize {
			break
		}
		after = hits[len(hits)-1].Sort
		if len(after) == 0 {
			return fmt.Errorf("%w: hits of %s carry no sort values", ErrIncompleteResult, index)
		}
	}

	if exact && len(sources) < total {
		return fmt.Errorf("%w: read %d of %d hits from %s", ErrIncompleteResult, len(sources), total, index)
	}

	raw, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("failed to collect hits: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode hits: %w", err)
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value    int    `json:"value"`
			Relation string `json:"relation"`
		} `json:"total"`
		Hits []struct {
			Source json.RawMessage `json:"_source"`
			Sort   []interface{}   `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

// searchPage выполняет один запрос страницы, продолжая после after.
func (es *ElasticsearchStorage) searchPage(ctx context.Context, index string, query map[string]interface{}, after []interface{}) (*searchResponse, error) {
	body := make(map[string]interface{}, len(query)+3)
	for k, v := range query {
		body[k] = v
	}
	body["size"] = es.pageSize
	body["track_total_hits"] = true
	if len(after) > 0 {
		body["search_after"] = after
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	// Используем прямой HTTP запрос для обхода проверки типа сервера
	url := fmt.Sprintf("%s/%s/_search", es.baseURL, index)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := es.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error searching: status %d, body: %s", res.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// buildCityQuery строит регистронезависимый wildcard запрос по подстроке города
func buildCityQuery(cityPattern string) map[string]interface{} {
	escaped := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`).Replace(cityPattern)

	return map[string]interface{}{
		"query": map[string]interface{}{
			"wildcard": map[string]interface{}{
				"city": map[string]interface{}{
					"value":            "*" + escaped + "*",
					"case_insensitive": true,
				},
			},
		},
		"sort": []map[string]interface{}{
			{"name.keyword": map[string]interface{}{"order": "asc", "unmapped_type": "keyword"}},
			{"id": map[string]interface{}{"order": "asc"}},
		},
	}
}

// buildRoomTypesQuery строит запрос вариантов размещения по списку объектов
func buildRoomTypesQuery(ids []string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"terms": map[string]interface{}{
				"hostel_id": ids,
			},
		},
		"sort": []map[string]interface{}{
			{"hostel_id": map[string]interface{}{"order": "asc"}},
			{"position": map[string]interface{}{"order": "asc"}},
		},
	}
}

func writeBulkPair(enc *json.Encoder, index, id string, doc interface{}) error {
	meta := map[string]interface{}{
		"index": map[string]interface{}{
			"_index": index,
			"_id":    id,
		},
	}
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("failed to encode meta: %w", err)
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

func toESListing(l models.Listing) esListing {
	rating := l.Rating
	return esListing{
		ID:           l.ID,
		Name:         l.Name,
		Type:         string(l.Type),
		City:         l.City,
		Distance:     l.Distance,
		Rating:       &rating,
		Verified:     l.Verified,
		Amenities:    l.Amenities,
		Images:       l.Images,
		Description:  l.Description,
		Address:      l.Address,
		ContactPhone: l.Contact.Phone,
		ContactEmail: l.Contact.Email,
		Location:     &esGeo{Lat: l.Coordinates.Lat, Lon: l.Coordinates.Lng},
		ListedSince:  l.ListedSince,
	}
}

func (d esListing) toRow() models.ListingRow {
	row := models.ListingRow{
		ID:           d.ID,
		Name:         d.Name,
		City:         d.City,
		Rating:       d.Rating,
		Verified:     d.Verified,
		Amenities:    d.Amenities,
		Images:       d.Images,
		Description:  d.Description,
		Address:      d.Address,
		ContactPhone: d.ContactPhone,
		ContactEmail: d.ContactEmail,
		ListedSince:  d.ListedSince,
	}
	if d.Type != "" {
		t := d.Type
		row.Type = &t
	}
	if d.Distance != "" {
		dist := d.Distance
		row.Distance = &dist
	}
	if d.Location != nil {
		lat, lon := d.Location.Lat, d.Location.Lon
		row.Lat = &lat
		row.Lng = &lon
	}
	return row
}
