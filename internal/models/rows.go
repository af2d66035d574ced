package models

import "time"

// ListingRow представляет строку таблицы hostels в том виде, в котором её отдаёт хранилище.
// Необязательные колонки представлены указателями.
type ListingRow struct {
	ID           string
	Name         string
	Type         *string
	City         string
	Distance     *string
	Rating       *float64
	Verified     bool
	Amenities    []string
	Images       []string
	Description  string
	Address      string
	ContactPhone string
	ContactEmail string
	Lat          *float64
	Lng          *float64
	ListedSince  *time.Time
}

// RoomTypeRow представляет строку таблицы room_types
type RoomTypeRow struct {
	ID          string
	ListingID   string
	Type        string
	Price       float64
	Description string
}
