package handlers

import (
	"github.com/akozadaev/findmydorm/internal/models"
	"github.com/akozadaev/findmydorm/internal/session"
)

// SessionHeader содержит идентификатор сессии в запросах на запись.
const SessionHeader = "X-Session-ID"

// AuthProxyHeader содержит общий секрет, которым прокси аутентификации
// подписывает запросы на вход.
const AuthProxyHeader = "X-Auth-Proxy-Secret"

// SessionResponse содержит состояние сессии вместе с отфильтрованной выдачей.
type SessionResponse struct {
	SessionID string           `json:"session_id"`
	State     session.State    `json:"state"`
	Visible   []models.Listing `json:"visible"`
	CanSearch bool             `json:"can_search"`
	Empty     bool             `json:"empty"` // Поиск завершен, но после фильтров ничего не осталось
}

// ListingsResponse содержит отфильтрованные объекты текущей сессии.
type ListingsResponse struct {
	Listings []models.Listing `json:"listings"`
	Total    int              `json:"total"`
	Loaded   int              `json:"loaded"` // Сколько объектов загружено до фильтров
	Loading  bool             `json:"loading"`
	Empty    bool             `json:"empty"`
}

// DetailResponse содержит карточку выбранного объекта с отзывами и вопросами.
type DetailResponse struct {
	Listing   models.Listing    `json:"listing"`
	MinPrice  float64           `json:"min_price"`
	MaxPrice  float64           `json:"max_price"`
	Reviews   []models.Review   `json:"reviews"`
	Questions []models.Question `json:"questions"`
}

// SelectCityRequest представляет запрос на выбор города.
type SelectCityRequest struct {
	CityID string `json:"city_id"`
}

// SelectUniversityRequest представляет запрос на выбор университета в выбранном городе.
type SelectUniversityRequest struct {
	UniversityID string `json:"university_id"`
}

// OverlayRequest открывает или закрывает модальное окно.
type OverlayRequest struct {
	Open bool `json:"open"`
}

// SignInRequest содержит результат внешней аутентификации.
type SignInRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// SubmissionResponse содержит принятую заявку и ссылку для письма администратору.
type SubmissionResponse struct {
	Submission models.PropertySubmission `json:"submission"`
	Mailto     string                    `json:"mailto"`
}

// ApproveResponse содержит идентификатор объекта, созданного из заявки.
type ApproveResponse struct {
	ListingID string `json:"listing_id"`
}

// ErrorResponse представляет тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
