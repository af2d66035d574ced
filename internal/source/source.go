// Package source получает объявления для поиска: из живого хранилища или,
// если оно не настроено, из генеративного сервиса со встроенным каталогом в качестве запасного варианта.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akozadaev/findmydorm/internal/models"
)

var (
	// ErrNotConfigured означает, что источник не настроен (нет хранилища или ключа API).
	ErrNotConfigured = errors.New("listing source not configured")
	// ErrStoreUnavailable означает, что запрос к хранилищу завершился ошибкой.
	ErrStoreUnavailable = errors.New("listing store unavailable")
	// ErrGenerativeService означает, что генеративный сервис вернул ошибку или пустой ответ.
	ErrGenerativeService = errors.New("generative service failure")
	// ErrSchemaValidation означает, что ответ генеративного сервиса не прошёл проверку схемы.
	ErrSchemaValidation = errors.New("generated listings failed schema validation")
)

// ListingStore представляет хранилище объявлений. Поиск по городу регистронезависимый
// и ищет подстроку; комнаты запрашиваются отдельно по идентификаторам объектов.
type ListingStore interface {
	SelectListingsByCity(ctx context.Context, cityPattern string) ([]models.ListingRow, error)
	SelectRoomTypesByListingIDs(ctx context.Context, ids []string) ([]models.RoomTypeRow, error)
}

// Generator запрашивает у генеративного сервиса n объявлений рядом с университетом.
// Возвращает сырой JSON массив, который проверяется на стороне Adapter.
type Generator interface {
	GenerateListings(ctx context.Context, city, university string, n int) ([]byte, error)
}

// Fetcher описывает получение объявлений для контроллера поиска.
type Fetcher interface {
	FetchListings(ctx context.Context, city, university string) []models.Listing
}

// Adapter выбирает ровно одну стратегию на вызов: хранилище, если оно задано,
// иначе генерацию. Ошибки не выходят наружу: хранилище деградирует до пустого
// результата, генерация до встроенного каталога. Кэша между вызовами нет.
type Adapter struct {
	store     ListingStore
	generator Generator
	count     int
	logger    *zap.Logger
	now       func() time.Time
}

// NewAdapter создаёт Adapter. store и generator могут быть nil.
// count задает, сколько объявлений запрашивать у генеративного сервиса.
func NewAdapter(store ListingStore, generator Generator, count int, logger *zap.Logger) *Adapter {
	if count <= 0 {
		count = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		store:     store,
		generator: generator,
		count:     count,
		logger:    logger,
		now:       time.Now,
	}
}

// StoreConfigured сообщает, используется ли живое хранилище.
func (a *Adapter) StoreConfigured() bool {
	return a.store != nil
}

// FetchListings возвращает объявления для города (и университета для генерации).
// Результат никогда не nil.
func (a *Adapter) FetchListings(ctx context.Context, city, university string) []models.Listing {
	if a.store != nil {
		listings, err := a.fetchFromStore(ctx, city)
		if err != nil {
			a.logger.Warn("listing store fetch degraded to empty result",
				zap.String("city", city), zap.Error(err))
			return []models.Listing{}
		}
		return listings
	}

	listings, err := a.generate(ctx, city, university)
	if err != nil {
		a.logger.Warn("generated listings degraded to built-in catalog",
			zap.String("city", city), zap.String("university", university), zap.Error(err))
		return MockCatalog(university, city)
	}
	return listings
}

func (a *Adapter) fetchFromStore(ctx context.Context, city string) ([]models.Listing, error) {
	rows, err := a.store.SelectListingsByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("%w: select listings: %v", ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return []models.Listing{}, nil
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	rooms, err := a.store.SelectRoomTypesByListingIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: select room types: %v", ErrStoreUnavailable, err)
	}

	return joinRooms(rows, rooms), nil
}

func (a *Adapter) generate(ctx context.Context, city, university string) ([]models.Listing, error) {
	if a.generator == nil {
		return nil, ErrNotConfigured
	}

	raw, err := a.generator.GenerateListings(ctx, city, university, a.count)
	if err != nil {
		if errors.Is(err, ErrGenerativeService) || errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerativeService, err)
	}

	return decodeGenerated(raw, a.now())
}

// joinRooms присоединяет комнаты к объектам по равенству идентификаторов,
// сохраняя порядок строк из хранилища.
func joinRooms(rows []models.ListingRow, rooms []models.RoomTypeRow) []models.Listing {
	byListing := make(map[string][]models.RoomType, len(rows))
	for _, r := range rooms {
		byListing[r.ListingID] = append(byListing[r.ListingID], models.RoomType{
			Type:        r.Type,
			Price:       r.Price,
			Description: r.Description,
		})
	}

	listings := make([]models.Listing, 0, len(rows))
	for _, row := range rows {
		l := listingFromRow(row)
		if rt, ok := byListing[row.ID]; ok {
			l.RoomTypes = rt
		}
		listings = append(listings, l)
	}
	return listings
}

func listingFromRow(row models.ListingRow) models.Listing {
	l := models.Listing{
		ID:          row.ID,
		Name:        row.Name,
		Type:        models.ListingTypePG,
		City:        row.City,
		Currency:    Currency,
		Verified:    row.Verified,
		Amenities:   row.Amenities,
		Images:      row.Images,
		Description: row.Description,
		Address:     row.Address,
		Contact:     models.Contact{Phone: row.ContactPhone, Email: row.ContactEmail},
		RoomTypes:   []models.RoomType{},
		ListedSince: row.ListedSince,
	}

	if row.Type != nil && models.ListingType(*row.Type).Valid() {
		l.Type = models.ListingType(*row.Type)
	}
	if row.Rating != nil {
		l.Rating = *row.Rating
	}
	if row.Lat != nil {
		l.Coordinates.Lat = *row.Lat
	}
	if row.Lng != nil {
		l.Coordinates.Lng = *row.Lng
	}

	switch {
	case row.Distance != nil && *row.Distance != "":
		l.Distance = *row.Distance
	case row.Address != "":
		l.Distance = "Near Campus"
	default:
		l.Distance = "Unknown"
	}

	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	if len(l.Images) == 0 {
		l.Images = []string{placeholderImage}
	}
	return l
}
