// Package moderation принимает заявки владельцев на размещение объектов
// и реализует действия администратора: одобрение, отклонение и верификацию пользователей.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akozadaev/findmydorm/internal/models"
)

var (
	ErrInvalidSubmission  = errors.New("invalid submission")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// ListingWriter сохраняет одобренный объект в хранилище.
type ListingWriter interface {
	InsertListing(ctx context.Context, l models.Listing) (string, error)
}

// UserDirectory предоставляет профили пользователей для панели администратора.
type UserDirectory interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	ToggleVerified(ctx context.Context, userID string) (models.Profile, error)
}

// Service хранит очередь заявок в памяти в порядке поступления.
type Service struct {
	mu         sync.Mutex
	queue      []models.PropertySubmission
	writer     ListingWriter
	users      UserDirectory
	adminEmail string
	logger     *zap.Logger
	now        func() time.Time
}

// NewService создает сервис модерации.
func NewService(writer ListingWriter, users UserDirectory, adminEmail string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		writer:     writer,
		users:      users,
		adminEmail: adminEmail,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit проверяет заявку, ставит ее в очередь и возвращает ссылку mailto
// для отправки заявки администратору.
func (s *Service) Submit(sub models.PropertySubmission) (models.PropertySubmission, string, error) {
	if err := Validate(sub); err != nil {
		return models.PropertySubmission{}, "", err
	}

	sub.ID = uuid.NewString()
	sub.SubmittedAt = s.now().UTC()
	if sub.Amenities == nil {
		sub.Amenities = []string{}
	}

	s.mu.Lock()
	s.queue = append(s.queue, sub)
	s.mu.Unlock()

	s.logger.Info("property submission queued",
		zap.String("submission_id", sub.ID), zap.String("property", sub.PropertyName))
	return sub, MailtoLink(s.adminEmail, sub), nil
}

// Pending возвращает заявки, ожидающие решения.
func (s *Service) Pending() []models.PropertySubmission {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PropertySubmission, len(s.queue))
	copy(out, s.queue)
	return out
}

// Approve сохраняет объект из заявки в хранилище и удаляет заявку из очереди.
// Если запись не удалась, заявка возвращается на прежнее место.
func (s *Service) Approve(ctx context.Context, id string) (string, error) {
	sub, pos, err := s.take(id)
	if err != nil {
		return "", err
	}

	listingID, err := s.writer.InsertListing(ctx, listingFromSubmission(sub))
	if err != nil {
		s.restore(sub, pos)
		return "", fmt.Errorf("failed to approve submission %s: %w", id, err)
	}

	s.logger.Info("property submission approved",
		zap.String("submission_id", id), zap.String("listing_id", listingID))
	return listingID, nil
}

// Reject удаляет заявку из очереди.
func (s *Service) Reject(id string) error {
	if _, _, err := s.take(id); err != nil {
		return err
	}
	s.logger.Info("property submission rejected", zap.String("submission_id", id))
	return nil
}

// ListUsers возвращает профили пользователей.
func (s *Service) ListUsers(ctx context.Context) ([]models.Profile, error) {
	users, err := s.users.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ToggleVerified переключает отметку верифицированного студента.
func (s *Service) ToggleVerified(ctx context.Context, userID string) (models.Profile, error) {
	p, err := s.users.ToggleVerified(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to toggle verification: %w", err)
	}
	return p, nil
}

func (s *Service) take(id string) (models.PropertySubmission, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.queue {
		if sub.ID == id {
			s.queue = append(s.queue[:i:i], s.queue[i+1:]...)
			return sub, i, nil
		}
	}
	return models.PropertySubmission{}, -1, ErrSubmissionNotFound
}

func (s *Service) restore(sub models.PropertySubmission, pos int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos > len(s.queue) {
		pos = len(s.queue)
	}
	queue := make([]models.PropertySubmission, 0, len(s.queue)+1)
	queue = append(queue, s.queue[:pos]...)
	queue = append(queue, sub)
	queue = append(queue, s.queue[pos:]...)
	s.queue = queue
}

// Validate проверяет обязательные поля заявки.
func Validate(sub models.PropertySubmission) error {
	var problems []string
	if strings.TrimSpace(sub.OwnerName) == "" {
		problems = append(problems, "owner name is required")
	}
	if strings.TrimSpace(sub.PropertyName) == "" {
		problems = append(problems, "property name is required")
	}
	if !sub.Type.Valid() {
		problems = append(problems, fmt.Sprintf("unknown type %q", sub.Type))
	}
	if strings.TrimSpace(sub.City) == "" {
		problems = append(problems, "city is required")
	}
	if len(sub.RoomTypes) == 0 {
		problems = append(problems, "at least one room type is required")
	}
	for i, r := range sub.RoomTypes {
		if strings.TrimSpace(r.Type) == "" {
			problems = append(problems, fmt.Sprintf("room type #%d has no name", i+1))
		}
		if r.Price < 0 {
			problems = append(problems, fmt.Sprintf("room type #%d has negative price", i+1))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSubmission, strings.Join(problems, "; "))
	}
	return nil
}

func listingFromSubmission(sub models.PropertySubmission) models.Listing {
	return models.Listing{
		Name:        sub.PropertyName,
		Type:        sub.Type,
		City:        sub.City,
		Verified:    true,
		Amenities:   sub.Amenities,
		Images:      []string{},
		Description: sub.Description,
		Address:     sub.Address,
		Contact:     models.Contact{Phone: sub.ContactPhone, Email: sub.ContactEmail},
		RoomTypes:   sub.RoomTypes,
	}
}
