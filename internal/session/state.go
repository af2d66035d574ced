// Package session хранит состояние клиента: выбор города и университета,
// результаты поиска, фильтры и текущий экран. Состояние меняется только
// через Reduce, контроллер отвечает за побочные эффекты (загрузку объявлений).
package session

import (
	"errors"
	"fmt"

	"github.com/akozadaev/findmydorm/internal/models"
)

// View обозначает текущий экран клиента.
type View string

const (
	ViewHome      View = "home"
	ViewListings  View = "listings"
	ViewDetail    View = "detail"
	ViewCommunity View = "community"
	ViewAdmin     View = "admin"
)

// Overlay обозначает модальное окно поверх текущего экрана.
type Overlay string

const (
	OverlayAuth         Overlay = "auth"
	OverlayListProperty Overlay = "list-property"
)

var (
	ErrSearchDisabled    = errors.New("search requires both city and university")
	ErrUnknownCity       = errors.New("unknown city")
	ErrUnknownUniversity = errors.New("unknown university")
	ErrUnknownListing    = errors.New("unknown listing")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("session not found")
	// ErrStaleResult означает, что результат поиска пришел после более нового запроса и отброшен.
	ErrStaleResult = errors.New("stale search result")
)

// Overlays содержит признаки открытых модальных окон.
type Overlays struct {
	Auth         bool `json:"auth"`
	ListProperty bool `json:"list_property"`
}

// State содержит полное состояние одной клиентской сессии.
type State struct {
	View       View                   `json:"view"`
	Overlays   Overlays               `json:"overlays"`
	Selection  models.SearchSelection `json:"selection"`
	Criteria   models.FilterCriteria  `json:"criteria"`
	Listings   []models.Listing       `json:"listings"`
	SelectedID string                 `json:"selected_id,omitempty"`
	Loading    bool                   `json:"loading"`
	Seq        uint64                 `json:"seq"` // Номер последнего запущенного поиска
	Profile    *models.Profile        `json:"profile,omitempty"`
}

// NewState возвращает начальное состояние: главная страница, фильтры по умолчанию.
func NewState() State {
	return State{
		View:     ViewHome,
		Criteria: models.DefaultFilterCriteria(),
		Listings: []models.Listing{},
	}
}

// CanSearch сообщает, доступна ли кнопка поиска.
func (s State) CanSearch() bool {
	return s.Selection.Complete()
}

// Selected возвращает выбранный объект или nil.
func (s State) Selected() *models.Listing {
	if s.SelectedID == "" {
		return nil
	}
	for i := range s.Listings {
		if s.Listings[i].ID == s.SelectedID {
			l := s.Listings[i]
			return &l
		}
	}
	return nil
}

// Clone копирует срез объявлений, чтобы снимок не разделял память с контроллером.
func (s State) Clone() State {
	listings := make([]models.Listing, len(s.Listings))
	copy(listings, s.Listings)
	s.Listings = listings
	return s
}

// Action представляет событие, меняющее состояние.
type Action interface {
	action()
}

type (
	// SelectCity выбирает город и сбрасывает университет.
	SelectCity struct{ City *models.City }
	// SelectUniversity выбирает университет в текущем городе.
	SelectUniversity struct{ University *models.University }
	// SearchStarted запускает поиск: новый номер запроса, экран результатов, загрузка.
	SearchStarted struct{}
	// SearchResolved применяет результаты поиска с номером Seq.
	SearchResolved struct {
		Seq      uint64
		Listings []models.Listing
	}
	// SelectListing открывает карточку объекта.
	SelectListing struct{ ID string }
	// Back возвращает из карточки к списку без повторной загрузки.
	Back struct{}
	// UpdateListing заменяет объект с тем же ID (правки из карточки).
	UpdateListing struct{ Listing models.Listing }
	// GoHome возвращает на главную и отбрасывает результаты поиска.
	GoHome struct{}
	// OpenCommunity открывает ленту сообщества.
	OpenCommunity struct{}
	// OpenAdmin открывает панель администратора.
	OpenAdmin struct{}
	// SetFilters заменяет фильтры целиком.
	SetFilters struct{ Criteria models.FilterCriteria }
	// SetOverlay открывает или закрывает модальное окно.
	SetOverlay struct {
		Overlay Overlay
		Open    bool
	}
	// SignIn сохраняет профиль вошедшего пользователя.
	SignIn struct{ Profile models.Profile }
	// SignOut удаляет профиль и возвращает на главную.
	SignOut struct{}
)

func (SelectCity) action()       {}
func (SelectUniversity) action() {}
func (SearchStarted) action()    {}
func (SearchResolved) action()   {}
func (SelectListing) action()    {}
func (Back) action()             {}
func (UpdateListing) action()    {}
func (GoHome) action()           {}
func (OpenCommunity) action()    {}
func (OpenAdmin) action()        {}
func (SetFilters) action()       {}
func (SetOverlay) action()       {}
func (SignIn) action()           {}
func (SignOut) action()          {}

// Reduce применяет действие к состоянию и возвращает новое состояние.
// При ошибке возвращается исходное состояние без изменений.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case SelectCity:
		if s.View != ViewHome {
			return s, fmt.Errorf("%w: select city on %s", ErrInvalidTransition, s.View)
		}
		if a.City == nil {
			return s, ErrUnknownCity
		}
		s.Selection = models.SearchSelection{City: a.City}
		return s, nil

	case SelectUniversity:
		if s.View != ViewHome {
			return s, fmt.Errorf("%w: select university on %s", ErrInvalidTransition, s.View)
		}
		if s.Selection.City == nil || a.University == nil {
			return s, ErrUnknownUniversity
		}
		s.Selection.University = a.University
		return s, nil

	case SearchStarted:
		if s.View != ViewHome && s.View != ViewListings {
			return s, fmt.Errorf("%w: search on %s", ErrInvalidTransition, s.View)
		}
		if !s.CanSearch() {
			return s, ErrSearchDisabled
		}
		s.Seq++
		s.View = ViewListings
		s.Loading = true
		s.Listings = []models.Listing{}
		s.SelectedID = ""
		return s, nil

	case SearchResolved:
		if a.Seq != s.Seq || !s.Loading {
			return s, ErrStaleResult
		}
		s.Loading = false
		s.Listings = a.Listings
		if s.Listings == nil {
			s.Listings = []models.Listing{}
		}
		return s, nil

	case SelectListing:
		if s.View != ViewListings || s.Loading {
			return s, fmt.Errorf("%w: select listing on %s", ErrInvalidTransition, s.View)
		}
		if !containsListing(s.Listings, a.ID) {
			return s, ErrUnknownListing
		}
		s.View = ViewDetail
		s.SelectedID = a.ID
		return s, nil

	case Back:
		if s.View != ViewDetail {
			return s, fmt.Errorf("%w: back on %s", ErrInvalidTransition, s.View)
		}
		s.View = ViewListings
		return s, nil

	case UpdateListing:
		if s.View != ViewDetail && s.View != ViewListings {
			return s, fmt.Errorf("%w: update listing on %s", ErrInvalidTransition, s.View)
		}
		idx := indexOfListing(s.Listings, a.Listing.ID)
		if idx < 0 {
			return s, ErrUnknownListing
		}
		listings := make([]models.Listing, len(s.Listings))
		copy(listings, s.Listings)
		listings[idx] = a.Listing
		s.Listings = listings
		return s, nil

	case GoHome:
		return goHome(s), nil

	case OpenCommunity:
		if s.View == ViewDetail {
			return s, fmt.Errorf("%w: community from %s", ErrInvalidTransition, s.View)
		}
		s.View = ViewCommunity
		return s, nil

	case OpenAdmin:
		if s.Profile == nil || !s.Profile.IsAdmin {
			return s, ErrForbidden
		}
		if s.View == ViewDetail {
			return s, fmt.Errorf("%w: admin from %s", ErrInvalidTransition, s.View)
		}
		s.View = ViewAdmin
		return s, nil

	case SetFilters:
		s.Criteria = a.Criteria
		return s, nil

	case SetOverlay:
		switch a.Overlay {
		case OverlayAuth:
			s.Overlays.Auth = a.Open
		case OverlayListProperty:
			s.Overlays.ListProperty = a.Open
		default:
			return s, fmt.Errorf("%w: unknown overlay %q", ErrInvalidTransition, a.Overlay)
		}
		return s, nil

	case SignIn:
		p := a.Profile
		s.Profile = &p
		s.Overlays.Auth = false
		if p.IsAdmin {
			s.View = ViewAdmin
		}
		return s, nil

	case SignOut:
		s.Profile = nil
		return goHome(s), nil
	}

	return s, fmt.Errorf("%w: unsupported action %T", ErrInvalidTransition, a)
}

// goHome сбрасывает результаты и инвалидирует незавершенный поиск.
// Выбор города и университета сохраняется.
func goHome(s State) State {
	if s.Loading {
		s.Seq++
	}
	s.View = ViewHome
	s.Loading = false
	s.Listings = []models.Listing{}
	s.SelectedID = ""
	return s
}

func indexOfListing(listings []models.Listing, id string) int {
	for i := range listings {
		if listings[i].ID == id {
			return i
		}
	}
	return -1
}

func containsListing(listings []models.Listing, id string) bool {
	return indexOfListing(listings, id) >= 0
}
