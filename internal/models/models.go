package models

import "time"

// ListingType обозначает категорию жилья.
type ListingType string

const (
	ListingTypePG        ListingType = "PG"
	ListingTypeDorm      ListingType = "DORM"
	ListingTypeApartment ListingType = "APARTMENT"
)

// Valid сообщает, входит ли значение в допустимый набор категорий.
func (t ListingType) Valid() bool {
	switch t {
	case ListingTypePG, ListingTypeDorm, ListingTypeApartment:
		return true
	}
	return false
}

// City представляет город из статического справочника
type City struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Universities []University `json:"universities" yaml:"universities"`
}

// University представляет университет внутри города
type University struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// RoomType представляет один вариант размещения с ценой в месяц
type RoomType struct {
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Contact представляет контакты владельца объекта
type Contact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// GeoPoint представляет географические координаты
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing представляет объект жилья (hostel) для студентов
type Listing struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        ListingType `json:"type"`
	City        string      `json:"city,omitempty"`
	Currency    string      `json:"currency"`
	Distance    string      `json:"distance"` // Строка для отображения, например "1.2 km"
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"review_count"`
	Verified    bool        `json:"verified"`
	Amenities   []string    `json:"amenities"`
	Images      []string    `json:"images"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	Contact     Contact     `json:"contact"`
	Coordinates GeoPoint    `json:"coordinates"`
	RoomTypes   []RoomType  `json:"room_types"`
	ListedSince *time.Time  `json:"listed_since,omitempty"`
}

// StartingPrice возвращает минимальную цену среди вариантов размещения.
// Объект без вариантов размещения считается бесплатным (0).
func (l Listing) StartingPrice() float64 {
	if len(l.RoomTypes) == 0 {
		return 0
	}
	lowest := l.RoomTypes[0].Price
	for _, r := range l.RoomTypes[1:] {
		if r.Price < lowest {
			lowest = r.Price
		}
	}
	return lowest
}

// PriceRange возвращает минимальную и максимальную цену (0, 0 если комнат нет).
func (l Listing) PriceRange() (float64, float64) {
	if len(l.RoomTypes) == 0 {
		return 0, 0
	}
	lowest, highest := l.RoomTypes[0].Price, l.RoomTypes[0].Price
	for _, r := range l.RoomTypes[1:] {
		if r.Price < lowest {
			lowest = r.Price
		}
		if r.Price > highest {
			highest = r.Price
		}
	}
	return lowest, highest
}

// FilterCriteria содержит параметры фильтрации списка объектов.
// MinPrice присутствует в интерфейсе, но при фильтрации не применяется.
type FilterCriteria struct {
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	MinRating   float64 `json:"min_rating"`
	MaxDistance float64 `json:"max_distance"`
}

// DefaultFilterCriteria возвращает фильтры, с которыми начинается сессия.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		MinPrice:    0,
		MaxPrice:    20000,
		MinRating:   0,
		MaxDistance: 5,
	}
}

// SearchSelection содержит текущий поисковый запрос: город и университет
type SearchSelection struct {
	City       *City       `json:"city"`
	University *University `json:"university"`
}

// Complete сообщает, выбраны ли и город, и университет.
func (s SearchSelection) Complete() bool {
	return s.City != nil && s.University != nil
}
