package storage

import (
	"context"

	"github.com/akozadaev/findmydorm/internal/models"
)

// Unconfigured заменяет PostgresStorage, когда база данных не подключена:
// чтение возвращает пустые списки, запись возвращает ErrNotConfigured.
type Unconfigured struct{}

func (Unconfigured) ListReviews(context.Context, string) ([]models.Review, error) {
	return []models.Review{}, nil
}

func (Unconfigured) CreateReview(context.Context, models.NewReview) error {
	return ErrNotConfigured
}

func (Unconfigured) ListQuestions(context.Context, string) ([]models.Question, error) {
	return []models.Question{}, nil
}

func (Unconfigured) CreateQuestion(context.Context, models.NewQuestion) error {
	return ErrNotConfigured
}

func (Unconfigured) CreateAnswer(context.Context, models.NewAnswer) error {
	return ErrNotConfigured
}

func (Unconfigured) ListPosts(context.Context) ([]models.Post, error) {
	return []models.Post{}, nil
}

func (Unconfigured) CreatePost(context.Context, models.NewPost) error {
	return ErrNotConfigured
}

func (Unconfigured) CreateComment(context.Context, models.NewComment) error {
	return ErrNotConfigured
}

// GetProfile без базы всегда возвращает профиль по умолчанию.
func (Unconfigured) GetProfile(_ context.Context, userID, email string) (models.Profile, error) {
	return FallbackProfile(userID, email), nil
}

func (Unconfigured) ListProfiles(context.Context) ([]models.Profile, error) {
	return []models.Profile{}, nil
}

func (Unconfigured) ToggleVerified(context.Context, string) (models.Profile, error) {
	return models.Profile{}, ErrNotConfigured
}

func (Unconfigured) InsertListing(context.Context, models.Listing) (string, error) {
	return "", ErrNotConfigured
}
