// Package handlers содержит HTTP обработчики REST API поиска студенческого жилья.
package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/akozadaev/findmydorm/internal/models"
	"github.com/akozadaev/findmydorm/internal/moderation"
	"github.com/akozadaev/findmydorm/internal/registry"
	"github.com/akozadaev/findmydorm/internal/session"
	"github.com/akozadaev/findmydorm/internal/storage"
)

// maxBodyBytes ограничивает размер тела запроса.
const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// ContentStore предоставляет отзывы, вопросы, сообщество и профили.
// Реализуется storage.PostgresStorage и storage.Unconfigured.
type ContentStore interface {
	ListReviews(ctx context.Context, listingID string) ([]models.Review, error)
	CreateReview(ctx context.Context, r models.NewReview) error
	ListQuestions(ctx context.Context, listingID string) ([]models.Question, error)
	CreateQuestion(ctx context.Context, q models.NewQuestion) error
	CreateAnswer(ctx context.Context, a models.NewAnswer) error
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, p models.NewPost) error
	CreateComment(ctx context.Context, c models.NewComment) error
	GetProfile(ctx context.Context, userID, email string) (models.Profile, error)
}

// Handlers содержит зависимости для обработки HTTP запросов.
type Handlers struct {
	registry   *registry.Registry
	sessions   *session.Manager
	content    ContentStore
	moderation *moderation.Service
	authSecret string
	logger     *zap.Logger
}

// NewHandlers создает новый экземпляр Handlers.
// authSecret должен совпадать с заголовком X-Auth-Proxy-Secret запроса на вход;
// пустой authSecret отключает вход.
func NewHandlers(reg *registry.Registry, sessions *session.Manager, content ContentStore, mod *moderation.Service, authSecret string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		registry:   reg,
		sessions:   sessions,
		content:    content,
		moderation: mod,
		authSecret: authSecret,
		logger:     logger,
	}
}

// Register регистрирует все маршруты API в роутере.
func (h *Handlers) Register(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/cities", h.ListCities).Methods(http.MethodGet)
	router.HandleFunc("/cities/{cityId}", h.GetCity).Methods(http.MethodGet)

	router.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{id}", h.DeleteSession).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{id}/city", h.SelectCity).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/university", h.SelectUniversity).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/search", h.Search).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/filters", h.SetFilters).Methods(http.MethodPut)
	router.HandleFunc("/sessions/{id}/listings", h.ListListings).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{id}/listings/{listingId}", h.UpdateListing).Methods(http.MethodPut)
	router.HandleFunc("/sessions/{id}/listings/{listingId}/select", h.SelectListing).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/detail", h.GetDetail).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{id}/back", h.Back).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/home", h.GoHome).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/community", h.OpenCommunity).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/admin", h.OpenAdmin).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/overlay/{name}", h.SetOverlay).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/signin", h.SignIn).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/signout", h.SignOut).Methods(http.MethodPost)

	router.HandleFunc("/listings/{listingId}/reviews", h.ListReviews).Methods(http.MethodGet)
	router.HandleFunc("/listings/{listingId}/reviews", h.CreateReview).Methods(http.MethodPost)
	router.HandleFunc("/listings/{listingId}/questions", h.ListQuestions).Methods(http.MethodGet)
	router.HandleFunc("/listings/{listingId}/questions", h.CreateQuestion).Methods(http.MethodPost)
	router.HandleFunc("/questions/{questionId}/answers", h.CreateAnswer).Methods(http.MethodPost)
	router.HandleFunc("/community/posts", h.ListPosts).Methods(http.MethodGet)
	router.HandleFunc("/community/posts", h.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/community/posts/{postId}/comments", h.CreateComment).Methods(http.MethodPost)

	router.HandleFunc("/submissions", h.SubmitProperty).Methods(http.MethodPost)
	router.HandleFunc("/admin/submissions", h.ListSubmissions).Methods(http.MethodGet)
	router.HandleFunc("/admin/submissions/{id}/approve", h.ApproveSubmission).Methods(http.MethodPost)
	router.HandleFunc("/admin/submissions/{id}/reject", h.RejectSubmission).Methods(http.MethodPost)
	router.HandleFunc("/admin/users", h.ListUsers).Methods(http.MethodGet)
	router.HandleFunc("/admin/users/{userId}/verify", h.ToggleVerified).Methods(http.MethodPost)
}

// HealthCheck обрабатывает GET запрос на проверку работоспособности сервиса.
// Эндпоинт: GET /health
//
// @Summary      Проверка работоспособности сервиса
// @Description  Возвращает статус сервиса. Используется для мониторинга и проверки доступности.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ListCities возвращает справочник городов с университетами.
// Эндпоинт: GET /cities
//
// @Summary      Получить список городов
// @Description  Возвращает города и университеты в фиксированном порядке справочника
// @Tags         cities
// @Produce      json
// @Success      200  {array}   models.City
// @Router       /cities [get]
func (h *Handlers) ListCities(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.registry.ListCities())
}

// GetCity возвращает город по идентификатору.
// Эндпоинт: GET /cities/{cityId}
//
// @Summary      Получить город
// @Tags         cities
// @Produce      json
// @Param        cityId  path      string  true  "Идентификатор города"
// @Success      200     {object}  models.City
// @Failure      404     {object}  ErrorResponse  "Город не найден"
// @Router       /cities/{cityId} [get]
func (h *Handlers) GetCity(w http.ResponseWriter, r *http.Request) {
	city := h.registry.FindCity(mux.Vars(r)["cityId"])
	if city == nil {
		h.writeError(w, session.ErrUnknownCity)
		return
	}
	h.writeJSON(w, http.StatusOK, city)
}

// actor возвращает профиль пользователя сессии из заголовка X-Session-ID.
func (h *Handlers) actor(r *http.Request) (models.Profile, error) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		return models.Profile{}, fmt.Errorf("%w: %s header is required", session.ErrForbidden, SessionHeader)
	}
	c, err := h.sessions.Get(id)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: unknown session", session.ErrForbidden)
	}
	p := c.State().Profile
	if p == nil {
		return models.Profile{}, fmt.Errorf("%w: sign in required", session.ErrForbidden)
	}
	return *p, nil
}

// trustedProxy проверяет, что запрос на вход пришел от прокси аутентификации.
func (h *Handlers) trustedProxy(r *http.Request) error {
	if h.authSecret == "" {
		return fmt.Errorf("%w: sign-in proxy", storage.ErrNotConfigured)
	}
	got := r.Header.Get(AuthProxyHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.authSecret)) != 1 {
		return fmt.Errorf("%w: untrusted sign-in request", session.ErrForbidden)
	}
	return nil
}

// admin возвращает профиль администратора или ErrForbidden.
func (h *Handlers) admin(r *http.Request) (models.Profile, error) {
	p, err := h.actor(r)
	if err != nil {
		return models.Profile{}, err
	}
	if !p.IsAdmin {
		return models.Profile{}, fmt.Errorf("%w: admin only", session.ErrForbidden)
	}
	return p, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", errBadRequest)
	}
	return nil
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError отображает ошибки домена в HTTP статусы.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		h.writeJSON(w, status, ErrorResponse{Error: "Internal server error"})
		return
	}
	h.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, moderation.ErrInvalidSubmission):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrUnknownCity),
		errors.Is(err, session.ErrUnknownUniversity),
		errors.Is(err, session.ErrUnknownListing),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, moderation.ErrSubmissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrSearchDisabled),
		errors.Is(err, session.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, storage.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
