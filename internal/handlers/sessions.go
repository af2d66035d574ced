package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/akozadaev/findmydorm/internal/models"
	"github.com/akozadaev/findmydorm/internal/session"
)

// controller находит сессию по {id} из пути.
func (h *Handlers) controller(r *http.Request) (string, *session.Controller, error) {
	id := mux.Vars(r)["id"]
	c, err := h.sessions.Get(id)
	if err != nil {
		return "", nil, err
	}
	return id, c, nil
}

func (h *Handlers) sessionResponse(id string, c *session.Controller) SessionResponse {
	s, visible := c.Snapshot()
	return SessionResponse{
		SessionID: id,
		State:     s,
		Visible:   visible,
		CanSearch: s.CanSearch(),
		Empty:     s.View == session.ViewListings && !s.Loading && len(visible) == 0,
	}
}

// respond выполняет действие над сессией и возвращает ее состояние.
func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, act func(c *session.Controller) error) {
	id, c, err := h.controller(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := act(c); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.sessionResponse(id, c))
}

func dispatch(a session.Action) func(c *session.Controller) error {
	return func(c *session.Controller) error {
		_, err := c.Dispatch(a)
		return err
	}
}

// CreateSession открывает новую сессию на главной странице с фильтрами по умолчанию.
// Эндпоинт: POST /sessions
//
// @Summary      Создать сессию
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  SessionResponse
// @Router       /sessions [post]
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, c := h.sessions.Create()
	h.logger.Debug("session created", zap.String("session_id", id))
	h.writeJSON(w, http.StatusCreated, h.sessionResponse(id, c))
}

// GetSession возвращает состояние сессии.
// Эндпоинт: GET /sessions/{id}
//
// @Summary      Получить состояние сессии
// @Description  Возвращает экран, выбор, фильтры, загруженные и отфильтрованные объекты
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Идентификатор сессии"
// @Success      200  {object}  SessionResponse
// @Failure      404  {object}  ErrorResponse  "Сессия не найдена"
// @Router       /sessions/{id} [get]
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(*session.Controller) error { return nil })
}

// DeleteSession закрывает сессию и отменяет незавершенный поиск.
// Эндпоинт: DELETE /sessions/{id}
//
// @Summary      Закрыть сессию
// @Tags         sessions
// @Param        id   path  string  true  "Идентификатор сессии"
// @Success      204
// @Failure      404  {object}  ErrorResponse  "Сессия не найдена"
// @Router       /sessions/{id} [delete]
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectCity выбирает город и сбрасывает университет.
// Эндпоинт: POST /sessions/{id}/city
//
// @Summary      Выбрать город
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Идентификатор сессии"
// @Param        request  body      SelectCityRequest  true  "Город"
// @Success      200      {object}  SessionResponse
// @Failure      404      {object}  ErrorResponse  "Город или сессия не найдены"
// @Failure      409      {object}  ErrorResponse  "Выбор доступен только на главной"
// @Router       /sessions/{id}/city [post]
func (h *Handlers) SelectCity(w http.ResponseWriter, r *http.Request) {
	var req SelectCityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, r, func(c *session.Controller) error {
		_, err := c.SelectCity(req.CityID)
		return err
	})
}

// SelectUniversity выбирает университет в выбранном городе.
// Эндпоинт: POST /sessions/{id}/university
//
// @Summary      Выбрать университет
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Идентификатор сессии"
// @Param        request  body      SelectUniversityRequest  true  "Университет"
// @Success      200      {object}  SessionResponse
// @Failure      404      {object}  ErrorResponse  "Университет не найден в выбранном городе"
// @Router       /sessions/{id}/university [post]
func (h *Handlers) SelectUniversity(w http.ResponseWriter, r *http.Request) {
	var req SelectUniversityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, r, func(c *session.Controller) error {
		_, err := c.SelectUniversity(req.UniversityID)
		return err
	})
}

// Search запускает поиск объектов для выбранных города и университета.
// По умолчанию возвращает 202 с состоянием загрузки; с wait=true ждет результата.
// Эндпоинт: POST /sessions/{id}/search
//
// @Summary      Запустить поиск
// @Description  Загружает объекты из хранилища или генеративного сервиса. Более поздний поиск всегда вытесняет результат более раннего.
// @Tags         sessions
// @Produce      json
// @Param        id    path      string  true   "Идентификатор сессии"
// @Param        wait  query     bool    false  "Дождаться результата"
// @Success      200   {object}  SessionResponse
// @Success      202   {object}  SessionResponse
// @Failure      409   {object}  ErrorResponse  "Не выбраны город и университет"
// @Router       /sessions/{id}/search [post]
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	id, c, err := h.controller(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if r.URL.Query().Get("wait") == "true" {
		if _, err := c.Search(r.Context()); err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, h.sessionResponse(id, c))
		return
	}

	if _, _, err := c.StartSearch(); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, h.sessionResponse(id, c))
}

// SetFilters заменяет фильтры сессии целиком.
// Эндпоинт: PUT /sessions/{id}/filters
//
// @Summary      Установить фильтры
// @Description  min_price принимается, но не влияет на выдачу
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Идентификатор сессии"
// @Param        request  body      models.FilterCriteria  true  "Фильтры"
// @Success      200      {object}  SessionResponse
// @Failure      400      {object}  ErrorResponse  "Неверные фильтры"
// @Router       /sessions/{id}/filters [put]
func (h *Handlers) SetFilters(w http.ResponseWriter, r *http.Request) {
	var criteria models.FilterCriteria
	if err := decodeJSON(w, r, &criteria); err != nil {
		h.writeError(w, err)
		return
	}
	if criteria.MaxPrice < 0 || criteria.MaxDistance < 0 || criteria.MinRating < 0 || criteria.MinRating > 5 {
		h.writeError(w, fmt.Errorf("%w: filters out of range", errBadRequest))
		return
	}
	h.respond(w, r, func(c *session.Controller) error {
		_, err := c.SetFilters(criteria)
		return err
	})
}

// ListListings возвращает объекты сессии после фильтров в исходном порядке.
// Эндпоинт: GET /sessions/{id}/listings
//
// @Summary      Получить отфильтрованные объекты
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Идентификатор сессии"
// @Success      200  {object}  ListingsResponse
// @Router       /sessions/{id}/listings [get]
func (h *Handlers) ListListings(w http.ResponseWriter, r *http.Request) {
	_, c, err := h.controller(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	s, visible := c.Snapshot()
	h.writeJSON(w, http.StatusOK, ListingsResponse{
		Listings: visible,
		Total:    len(visible),
		Loaded:   len(s.Listings),
		Loading:  s.Loading,
		Empty:    !s.Loading && len(visible) == 0,
	})
}

// SelectListing открывает карточку объекта.
// Эндпоинт: POST /sessions/{id}/listings/{listingId}/select
//
// @Summary      Открыть карточку объекта
// @Tags         sessions
// @Produce      json
// @Param        id         path      string  true  "Идентификатор сессии"
// @Param        listingId  path      string  true  "Идентификатор объекта"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  ErrorResponse  "Объекта нет в результатах"
// @Router       /sessions/{id}/listings/{listingId}/select [post]
func (h *Handlers) SelectListing(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["listingId"]
	h.respond(w, r, func(c *session.Controller) error {
		_, err := c.SelectListing(listingID)
		return err
	})
}

// UpdateListing заменяет объект в результатах сессии правками из карточки.
// Эндпоинт: PUT /sessions/{id}/listings/{listingId}
//
// @Summary      Изменить объект в результатах
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id         path      string          true  "Идентификатор сессии"
// @Param        listingId  path      string          true  "Идентификатор объекта"
// @Param        request    body      models.Listing  true  "Объект"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  ErrorResponse  "Объекта нет в результатах"
// @Router       /sessions/{id}/listings/{listingId} [put]
func (h *Handlers) UpdateListing(w http.ResponseWriter, r *http.Request) {
	var l models.Listing
	if err := decodeJSON(w, r, &l); err != nil {
		h.writeError(w, err)
		return
	}
	l.ID = mux.Vars(r)["listingId"]
	h.respond(w, r, func(c *session.Controller) error {
		_, err := c.UpdateListing(l)
		return err
	})
}

// GetDetail возвращает выбранный объект, диапазон цен, отзывы и вопросы.
// Отзывы и вопросы запрашиваются параллельно.
// Эндпоинт: GET /sessions/{id}/detail
//
// @Summary      Получить карточку выбранного объекта
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Идентификатор сессии"
// @Success      200  {object}  DetailResponse
// @Failure      409  {object}  ErrorResponse  "Объект не выбран"
// @Failure      500  {object}  ErrorResponse  "Внутренняя ошибка сервера"
// @Router       /sessions/{id}/detail [get]
func (h *Handlers) GetDetail(w http.ResponseWriter, r *http.Request) {
	_, c, err := h.controller(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	s := c.State()
	listing := s.Selected()
	if s.View != session.ViewDetail || listing == nil {
		h.writeError(w, fmt.Errorf("%w: no listing selected", session.ErrInvalidTransition))
		return
	}

	resp := DetailResponse{Listing: *listing}
	resp.MinPrice, resp.MaxPrice = listing.PriceRange()

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		reviews, err := h.content.ListReviews(ctx, listing.ID)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		resp.Reviews = reviews
		return nil
	})
	g.Go(func() error {
		questions, err := h.content.ListQuestions(ctx, listing.ID)
		if err != nil {
			return fmt.Errorf("failed to list questions: %w", err)
		}
		resp.Questions = questions
		return nil
	})
	if err := g.Wait(); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Back возвращает из карточки к результатам без повторной загрузки.
// Эндпоинт: POST /sessions/{id}/back
//
// @Summary      Назад к результатам
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Идентификатор сессии"
// @Success      200  {object}  SessionResponse
// @Failure      409  {object}  ErrorResponse  "Карточка не открыта"
// @Router       /sessions/{id}/back [post]
func (h *Handlers) Back(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, dispatch(session.Back{}))
}

// GoHome возвращает на главную и отбрасывает результаты поиска.
// Эндпоинт: POST /sessions/{id}/home
//
// @Summary      На главную
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Идентификатор сессии"
// @Success      200  {object}  SessionResponse
// @Router       /sessions/{id}/home [post]
func (h *Handlers) GoHome(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, dispatch(session.GoHome{}))
}

// OpenCommunity открывает ленту сообщества.
// Эндпоинт: POST /sessions/{id}/community
//
// @Summary      Открыть сообщество
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Идентификатор сессии"
// @Success      200  {object}  SessionResponse
// @Router       /sessions/{id}/community [post]
func (h *Handlers) OpenCommunity(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, dispatch(session.OpenCommunity{}))
}

// OpenAdmin открывает панель администратора.
// Эндпоинт: POST /sessions/{id}/admin
//
// @Summary      Открыть панель администратора
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Идентификатор сессии"
// @Success      200  {object}  SessionResponse
// @Failure      403  {object}  ErrorResponse  "Требуется профиль администратора"
// @Router       /sessions/{id}/admin [post]
func (h *Handlers) OpenAdmin(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, dispatch(session.OpenAdmin{}))
}

// SetOverlay открывает или закрывает модальное окно (auth, list-property).
// Эндпоинт: POST /sessions/{id}/overlay/{name}
//
// @Summary      Открыть или закрыть модальное окно
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Идентификатор сессии"
// @Param        name     path      string          true  "auth или list-property"
// @Param        request  body      OverlayRequest  true  "Состояние окна"
// @Success      200      {object}  SessionResponse
// @Failure      409      {object}  ErrorResponse  "Неизвестное окно"
// @Router       /sessions/{id}/overlay/{name} [post]
func (h *Handlers) SetOverlay(w http.ResponseWriter, r *http.Request) {
	var req OverlayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	overlay := session.Overlay(mux.Vars(r)["name"])
	h.respond(w, r, dispatch(session.SetOverlay{Overlay: overlay, Open: req.Open}))
}

// SignIn сохраняет в сессии профиль пользователя, прошедшего внешнюю аутентификацию.
// Вызывается только прокси аутентификации: запрос без верного X-Auth-Proxy-Secret отклоняется.
// Эндпоинт: POST /sessions/{id}/signin
//
// @Summary      Войти
// @Description  Доступен только доверенному прокси аутентификации, который передает общий секрет в X-Auth-Proxy-Secret. Администратор сразу попадает в панель администратора
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id                   path      string         true  "Идентификатор сессии"
// @Param        X-Auth-Proxy-Secret  header    string         true  "Общий секрет прокси аутентификации"
// @Param        request              body      SignInRequest  true  "Пользователь"
// @Success      200                  {object}  SessionResponse
// @Failure      400                  {object}  ErrorResponse  "Не указан пользователь"
// @Failure      403                  {object}  ErrorResponse  "Запрос не от прокси аутентификации"
// @Failure      503                  {object}  ErrorResponse  "Вход не настроен"
// @Router       /sessions/{id}/signin [post]
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := h.trustedProxy(r); err != nil {
		h.writeError(w, err)
		return
	}

	var req SignInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.UserID == "" {
		h.writeError(w, fmt.Errorf("%w: user_id is required", errBadRequest))
		return
	}

	h.respond(w, r, func(c *session.Controller) error {
		profile, err := h.content.GetProfile(r.Context(), req.UserID, req.Email)
		if err != nil {
			return err
		}
		_, err = c.Dispatch(session.SignIn{Profile: profile})
		return err
	})
}

// SignOut удаляет профиль из сессии.
// Эндпоинт: POST /sessions/{id}/signout
//
// @Summary      Выйти
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Идентификатор сессии"
// @Success      200  {object}  SessionResponse
// @Router       /sessions/{id}/signout [post]
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, dispatch(session.SignOut{}))
}
