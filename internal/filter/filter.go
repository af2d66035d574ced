// Package filter применяет пользовательские фильтры к списку объектов.
package filter

import (
	"regexp"
	"strconv"

	"github.com/akozadaev/findmydorm/internal/models"
)

var (
	nonNumeric    = regexp.MustCompile(`[^\d.]`)
	leadingNumber = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

// Apply возвращает объекты, прошедшие все фильтры, в исходном порядке.
// Исходный срез не изменяется. Условия: стартовая цена <= MaxPrice,
// рейтинг >= MinRating, расстояние <= MaxDistance (если его удалось разобрать).
// MinPrice не применяется.
func Apply(listings []models.Listing, criteria models.FilterCriteria) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if Match(l, criteria) {
			out = append(out, l)
		}
	}
	return out
}

// Match проверяет один объект по всем фильтрам.
func Match(l models.Listing, criteria models.FilterCriteria) bool {
	if l.StartingPrice() > criteria.MaxPrice {
		return false
	}
	if l.Rating < criteria.MinRating {
		return false
	}
	if km, ok := ParseDistance(l.Distance); ok && km > criteria.MaxDistance {
		return false
	}
	return true
}

// ParseDistance извлекает расстояние в километрах из строки вида "1.2 km".
// Все символы, кроме цифр и точки, отбрасываются, затем разбирается
// самый длинный числовой префикс. ok == false, если числа нет ("Near Campus").
func ParseDistance(s string) (float64, bool) {
	digits := nonNumeric.ReplaceAllString(s, "")
	m := leadingNumber.FindString(digits)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
