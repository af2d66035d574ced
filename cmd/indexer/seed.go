package main

import (
	"context"
	"fmt"
	"time"

	"github.com/akozadaev/findmydorm/internal/models"
	"github.com/akozadaev/findmydorm/internal/registry"
	"github.com/akozadaev/findmydorm/internal/source"
)

// listingSeed содержит объект вместе с парой город/университет, для которой он получен.
type listingSeed struct {
	CityID       string
	UniversityID string
	Listing      models.Listing
}

// seedListings получает объекты для каждой пары город/университет.
// Идентификаторы получают префикс пары, чтобы объекты разных пар не совпадали.
func seedListings(ctx context.Context, reg *registry.Registry, fetcher source.Fetcher, universityLimit int) []listingSeed {
	now := time.Now().UTC()
	var seeds []listingSeed

	for _, city := range reg.ListCities() {
		universities := city.Universities
		if universityLimit > 0 && len(universities) > universityLimit {
			universities = universities[:universityLimit]
		}

		for _, u := range universities {
			for _, l := range fetcher.FetchListings(ctx, city.Name, u.Name) {
				l.ID = fmt.Sprintf("%s-%s-%s", city.ID, u.ID, l.ID)
				l.City = city.Name
				if l.ListedSince == nil {
					listed := now
					l.ListedSince = &listed
				}
				seeds = append(seeds, listingSeed{CityID: city.ID, UniversityID: u.ID, Listing: l})
			}
		}
	}
	return seeds
}

func unwrap(seeds []listingSeed) []models.Listing {
	out := make([]models.Listing, len(seeds))
	for i, s := range seeds {
		out[i] = s.Listing
	}
	return out
}
