package source

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/akozadaev/findmydorm/internal/models"
)

// generatedListing повторяет схему ответа генеративного сервиса.
// Указатели отличают отсутствующее поле от нулевого значения.
type generatedListing struct {
	ID          *string              `json:"id"`
	Name        *string              `json:"name"`
	Type        *string              `json:"type"`
	Currency    string               `json:"currency"`
	Distance    string               `json:"distance"`
	Rating      *float64             `json:"rating"`
	ReviewCount int                  `json:"reviewCount"`
	Verified    bool                 `json:"verified"`
	Amenities   []string             `json:"amenities"`
	Description *string              `json:"description"`
	Address     string               `json:"address"`
	Contact     *generatedContact    `json:"contact"`
	Coordinates *generatedCoordinate `json:"coordinates"`
	RoomTypes   []generatedRoomType  `json:"roomTypes"`
}

type generatedContact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type generatedCoordinate struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type generatedRoomType struct {
	Type        *string  `json:"type"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
}

// decodeGenerated разбирает и проверяет ответ генеративного сервиса.
// Любое несоответствие схеме отклоняет весь пакет целиком.
func decodeGenerated(raw []byte, now time.Time) ([]models.Listing, error) {
	var items []generatedListing
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSchemaValidation, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrSchemaValidation)
	}

	listings := make([]models.Listing, 0, len(items))
	for i, item := range items {
		if err := item.validate(); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrSchemaValidation, i, err)
		}
		listings = append(listings, item.toListing(i, now))
	}
	return listings, nil
}

func (g generatedListing) validate() error {
	switch {
	case g.ID == nil:
		return fmt.Errorf("missing id")
	case g.Name == nil || *g.Name == "":
		return fmt.Errorf("missing name")
	case g.Type == nil:
		return fmt.Errorf("missing type")
	case !models.ListingType(*g.Type).Valid():
		return fmt.Errorf("unknown type %q", *g.Type)
	case g.RoomTypes == nil:
		return fmt.Errorf("missing roomTypes")
	case g.Rating == nil:
		return fmt.Errorf("missing rating")
	case *g.Rating < 0 || *g.Rating > 5:
		return fmt.Errorf("rating %v out of range", *g.Rating)
	case g.Amenities == nil:
		return fmt.Errorf("missing amenities")
	case g.Description == nil:
		return fmt.Errorf("missing description")
	case g.Contact == nil:
		return fmt.Errorf("missing contact")
	case g.Coordinates == nil || g.Coordinates.Lat == nil || g.Coordinates.Lng == nil:
		return fmt.Errorf("missing coordinates")
	}

	for j, r := range g.RoomTypes {
		if r.Type == nil || r.Price == nil {
			return fmt.Errorf("room %d: missing type or price", j)
		}
		if *r.Price < 0 {
			return fmt.Errorf("room %d: negative price", j)
		}
	}
	return nil
}

// toListing переводит проверенный элемент в Listing. Идентификатор модели
// заменяется на собственный, так как модель не гарантирует уникальность.
func (g generatedListing) toListing(index int, now time.Time) models.Listing {
	rooms := make([]models.RoomType, len(g.RoomTypes))
	for j, r := range g.RoomTypes {
		rooms[j] = models.RoomType{Type: *r.Type, Price: *r.Price, Description: r.Description}
	}

	currency := g.Currency
	if currency == "" {
		currency = Currency
	}

	return models.Listing{
		ID:          fmt.Sprintf("gemini-%d-%d", index, now.UnixNano()),
		Name:        *g.Name,
		Type:        models.ListingType(*g.Type),
		Currency:    currency,
		Distance:    g.Distance,
		Rating:      *g.Rating,
		ReviewCount: g.ReviewCount,
		Verified:    g.Verified,
		Amenities:   g.Amenities,
		Images:      []string{randomImage(index + 1), randomImage(index + 2)},
		Description: *g.Description,
		Address:     g.Address,
		Contact:     models.Contact{Phone: g.Contact.Phone, Email: g.Contact.Email},
		Coordinates: models.GeoPoint{Lat: *g.Coordinates.Lat, Lng: *g.Coordinates.Lng},
		RoomTypes:   rooms,
	}
}
