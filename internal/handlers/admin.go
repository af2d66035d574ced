package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/akozadaev/findmydorm/internal/models"
)

// SubmitProperty принимает заявку владельца на размещение объекта.
// Эндпоинт: POST /submissions
//
// @Summary      Подать заявку на размещение
// @Description  Проверяет заявку, ставит ее в очередь модерации и возвращает ссылку mailto для письма администратору
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        request  body      models.PropertySubmission  true  "Заявка"
// @Success      201      {object}  SubmissionResponse
// @Failure      400      {object}  ErrorResponse  "Заявка заполнена неверно"
// @Router       /submissions [post]
func (h *Handlers) SubmitProperty(w http.ResponseWriter, r *http.Request) {
	var req models.PropertySubmission
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	sub, link, err := h.moderation.Submit(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, SubmissionResponse{Submission: sub, Mailto: link})
}

// ListSubmissions возвращает заявки, ожидающие модерации.
// Эндпоинт: GET /admin/submissions
//
// @Summary      Заявки на модерации
// @Tags         admin
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Сессия администратора"
// @Success      200           {array}   models.PropertySubmission
// @Failure      403           {object}  ErrorResponse  "Требуется профиль администратора"
// @Router       /admin/submissions [get]
func (h *Handlers) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	if _, err := h.admin(r); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.moderation.Pending())
}

// ApproveSubmission публикует объект из заявки.
// Эндпоинт: POST /admin/submissions/{id}/approve
//
// @Summary      Одобрить заявку
// @Tags         admin
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Сессия администратора"
// @Param        id            path      string  true  "Идентификатор заявки"
// @Success      200           {object}  ApproveResponse
// @Failure      403           {object}  ErrorResponse  "Требуется профиль администратора"
// @Failure      404           {object}  ErrorResponse  "Заявка не найдена"
// @Failure      503           {object}  ErrorResponse  "Хранилище не настроено"
// @Router       /admin/submissions/{id}/approve [post]
func (h *Handlers) ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	if _, err := h.admin(r); err != nil {
		h.writeError(w, err)
		return
	}

	listingID, err := h.moderation.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ApproveResponse{ListingID: listingID})
}

// RejectSubmission удаляет заявку из очереди.
// Эндпоинт: POST /admin/submissions/{id}/reject
//
// @Summary      Отклонить заявку
// @Tags         admin
// @Param        X-Session-ID  header  string  true  "Сессия администратора"
// @Param        id            path    string  true  "Идентификатор заявки"
// @Success      204
// @Failure      403  {object}  ErrorResponse  "Требуется профиль администратора"
// @Failure      404  {object}  ErrorResponse  "Заявка не найдена"
// @Router       /admin/submissions/{id}/reject [post]
func (h *Handlers) RejectSubmission(w http.ResponseWriter, r *http.Request) {
	if _, err := h.admin(r); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.moderation.Reject(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUsers возвращает профили пользователей.
// Эндпоинт: GET /admin/users
//
// @Summary      Пользователи
// @Tags         admin
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Сессия администратора"
// @Success      200           {array}   models.Profile
// @Failure      403           {object}  ErrorResponse  "Требуется профиль администратора"
// @Router       /admin/users [get]
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := h.admin(r); err != nil {
		h.writeError(w, err)
		return
	}

	users, err := h.moderation.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

// ToggleVerified переключает отметку верифицированного студента.
// Эндпоинт: POST /admin/users/{userId}/verify
//
// @Summary      Верифицировать или снять верификацию
// @Tags         admin
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Сессия администратора"
// @Param        userId        path      string  true  "Идентификатор пользователя"
// @Success      200           {object}  models.Profile
// @Failure      403           {object}  ErrorResponse  "Требуется профиль администратора"
// @Failure      404           {object}  ErrorResponse  "Пользователь не найден"
// @Router       /admin/users/{userId}/verify [post]
func (h *Handlers) ToggleVerified(w http.ResponseWriter, r *http.Request) {
	if _, err := h.admin(r); err != nil {
		h.writeError(w, err)
		return
	}

	profile, err := h.moderation.ToggleVerified(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}
