package source

import (
	"fmt"

	"github.com/akozadaev/findmydorm/internal/models"
)

// Currency содержит символ валюты для всех объявлений.
const Currency = "₹"

const placeholderImage = "https://picsum.photos/400/300"

// Базовые координаты встроенного каталога (центр Бангалора).
const (
	baseLat = 12.9716
	baseLng = 77.5946
)

func randomImage(seed int) string {
	return fmt.Sprintf("https://picsum.photos/400/300?random=%d", seed)
}

// MockCatalog возвращает встроенный каталог из трёх объектов.
// Описание и адрес подставляют переданные университет и город; остальное фиксировано.
func MockCatalog(university, city string) []models.Listing {
	return []models.Listing{
		{
			ID:          "1",
			Name:        "Sri Sai Student Living",
			Type:        models.ListingTypePG,
			City:        city,
			Currency:    Currency,
			Distance:    "0.5 km",
			Rating:      4.2,
			ReviewCount: 128,
			Verified:    true,
			Amenities:   []string{"Wifi", "3 Times Food", "Geyser", "Washing Machine"},
			Images:      []string{randomImage(10), randomImage(11)},
			Description: fmt.Sprintf("Affordable PG walking distance from %s. Includes home-style food.", university),
			Address:     fmt.Sprintf("12, 4th Cross, Near %s, %s", university, city),
			Contact:     models.Contact{Phone: "+91 98765 43210", Email: "info@srisai.com"},
			Coordinates: models.GeoPoint{Lat: baseLat + 0.01, Lng: baseLng + 0.01},
			RoomTypes: []models.RoomType{
				{Type: "3-Sharing Non-AC", Price: 8500, Description: "Common Washroom"},
				{Type: "2-Sharing AC", Price: 12000, Description: "Attached Washroom"},
				{Type: "Single Room", Price: 18000, Description: "Private & Spacious"},
			},
		},
		{
			ID:          "2",
			Name:        "Elite Dorms",
			Type:        models.ListingTypeDorm,
			City:        city,
			Currency:    Currency,
			Distance:    "1.2 km",
			Rating:      4.5,
			ReviewCount: 85,
			Verified:    true,
			Amenities:   []string{"AC", "Gym", "Security", "Power Backup"},
			Images:      []string{randomImage(12), randomImage(13)},
			Description: "Premium student accommodation with modern facilities and 24/7 security.",
			Address:     fmt.Sprintf("45, Main Road, %s", city),
			Contact:     models.Contact{Phone: "+91 99887 76655", Email: "contact@elitedorms.in"},
			Coordinates: models.GeoPoint{Lat: baseLat - 0.01, Lng: baseLng - 0.01},
			RoomTypes: []models.RoomType{
				{Type: "4-Sharing Dorm", Price: 6500, Description: "Bunk Beds"},
				{Type: "2-Sharing Luxury", Price: 14000, Description: "Study Table & Wardrobe"},
			},
		},
		{
			ID:          "3",
			Name:        "Sunshine Apartments",
			Type:        models.ListingTypeApartment,
			City:        city,
			Currency:    Currency,
			Distance:    "2.5 km",
			Rating:      4.8,
			ReviewCount: 42,
			Verified:    false,
			Amenities:   []string{"Private Kitchen", "Balcony", "Parking"},
			Images:      []string{randomImage(14), randomImage(15)},
			Description: "2BHK flats available on sharing basis for students.",
			Address:     fmt.Sprintf("88, Green Park, %s", city),
			Contact:     models.Contact{Phone: "+91 88776 65544", Email: "rent@sunshine.com"},
			Coordinates: models.GeoPoint{Lat: baseLat + 0.02, Lng: baseLng - 0.02},
			RoomTypes: []models.RoomType{
				{Type: "Single Room in 3BHK", Price: 15000, Description: "Shared Hall & Kitchen"},
				{Type: "Master Bedroom", Price: 20000, Description: "Attached Balcony"},
			},
		},
	}
}
