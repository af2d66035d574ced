// Package registry содержит статический справочник городов и университетов.
package registry

import (
	_ "embed"
	"fmt"

	"github.com/akozadaev/findmydorm/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed cities.yaml
var citiesYAML []byte

// Registry представляет неизменяемый справочник городов в порядке из cities.yaml.
// Безопасен для конкурентного чтения.
type Registry struct {
	cities []models.City
	byID   map[string]int
}

// Default возвращает справочник, встроенный в бинарник.
// Паникует, если встроенный YAML повреждён: это ошибка сборки, а не времени выполнения.
func Default() *Registry {
	r, err := Parse(citiesYAML)
	if err != nil {
		panic(fmt.Sprintf("registry: embedded cities.yaml: %v", err))
	}
	return r
}

// Parse строит справочник из YAML документа.
// Идентификаторы городов уникальны глобально, университетов уникальны внутри города.
func Parse(data []byte) (*Registry, error) {
	var cities []models.City
	if err := yaml.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("failed to parse cities: %w", err)
	}

	r := &Registry{
		cities: cities,
		byID:   make(map[string]int, len(cities)),
	}
	for i, c := range cities {
		if c.ID == "" {
			return nil, fmt.Errorf("city #%d has empty id", i)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate city id %q", c.ID)
		}
		seen := make(map[string]struct{}, len(c.Universities))
		for _, u := range c.Universities {
			if u.ID == "" {
				return nil, fmt.Errorf("city %q has university with empty id", c.ID)
			}
			if _, dup := seen[u.ID]; dup {
				return nil, fmt.Errorf("duplicate university id %q in city %q", u.ID, c.ID)
			}
			seen[u.ID] = struct{}{}
		}
		r.byID[c.ID] = i
	}

	return r, nil
}

// ListCities возвращает все города в исходном порядке.
// Возвращается копия, изменение которой не влияет на справочник.
func (r *Registry) ListCities() []models.City {
	out := make([]models.City, len(r.cities))
	for i, c := range r.cities {
		out[i] = copyCity(c)
	}
	return out
}

// FindCity возвращает город по идентификатору или nil, если он не найден.
func (r *Registry) FindCity(id string) *models.City {
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	c := copyCity(r.cities[i])
	return &c
}

// FindUniversity возвращает университет города по идентификатору или nil.
func (r *Registry) FindUniversity(city *models.City, id string) *models.University {
	if city == nil {
		return nil
	}
	for _, u := range city.Universities {
		if u.ID == id {
			found := u
			return &found
		}
	}
	return nil
}

func copyCity(c models.City) models.City {
	unis := make([]models.University, len(c.Universities))
	copy(unis, c.Universities)
	c.Universities = unis
	return c
}
