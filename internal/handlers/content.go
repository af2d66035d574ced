package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/akozadaev/findmydorm/internal/models"
)

// ListReviews возвращает отзывы об объекте, новые первыми.
// Эндпоинт: GET /listings/{listingId}/reviews
//
// @Summary      Получить отзывы
// @Tags         reviews
// @Produce      json
// @Param        listingId  path      string  true  "Идентификатор объекта"
// @Success      200        {array}   models.Review
// @Failure      500        {object}  ErrorResponse  "Внутренняя ошибка сервера"
// @Router       /listings/{listingId}/reviews [get]
func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.content.ListReviews(r.Context(), mux.Vars(r)["listingId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reviews)
}

// CreateReview добавляет отзыв от пользователя сессии.
// Эндпоинт: POST /listings/{listingId}/reviews
//
// @Summary      Оставить отзыв
// @Tags         reviews
// @Accept       json
// @Param        X-Session-ID  header  string            true  "Идентификатор сессии"
// @Param        listingId     path    string            true  "Идентификатор объекта"
// @Param        request       body    models.NewReview  true  "Отзыв"
// @Success      201
// @Failure      400  {object}  ErrorResponse  "Рейтинг вне диапазона 1..5"
// @Failure      403  {object}  ErrorResponse  "Требуется вход"
// @Failure      503  {object}  ErrorResponse  "Хранилище не настроено"
// @Router       /listings/{listingId}/reviews [post]
func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	profile, err := h.actor(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req models.NewReview
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		h.writeError(w, fmt.Errorf("%w: rating must be between 1 and 5", errBadRequest))
		return
	}
	req.ListingID = mux.Vars(r)["listingId"]
	req.UserID = profile.ID
	if req.Images == nil {
		req.Images = []string{}
	}

	if err := h.content.CreateReview(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ListQuestions возвращает вопросы об объекте с ответами.
// Эндпоинт: GET /listings/{listingId}/questions
//
// @Summary      Получить вопросы
// @Tags         questions
// @Produce      json
// @Param        listingId  path      string  true  "Идентификатор объекта"
// @Success      200        {array}   models.Question
// @Router       /listings/{listingId}/questions [get]
func (h *Handlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.content.ListQuestions(r.Context(), mux.Vars(r)["listingId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, questions)
}

// CreateQuestion задает вопрос об объекте.
// Эндпоинт: POST /listings/{listingId}/questions
//
// @Summary      Задать вопрос
// @Tags         questions
// @Accept       json
// @Param        X-Session-ID  header  string              true  "Идентификатор сессии"
// @Param        listingId     path    string              true  "Идентификатор объекта"
// @Param        request       body    models.NewQuestion  true  "Вопрос"
// @Success      201
// @Failure      403  {object}  ErrorResponse  "Требуется вход"
// @Router       /listings/{listingId}/questions [post]
func (h *Handlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	profile, err := h.actor(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req models.NewQuestion
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		h.writeError(w, fmt.Errorf("%w: question is required", errBadRequest))
		return
	}
	req.ListingID = mux.Vars(r)["listingId"]
	req.UserID = profile.ID

	if err := h.content.CreateQuestion(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// CreateAnswer отвечает на вопрос.
// Эндпоинт: POST /questions/{questionId}/answers
//
// @Summary      Ответить на вопрос
// @Tags         questions
// @Accept       json
// @Param        X-Session-ID  header  string            true  "Идентификатор сессии"
// @Param        questionId    path    string            true  "Идентификатор вопроса"
// @Param        request       body    models.NewAnswer  true  "Ответ"
// @Success      201
// @Failure      403  {object}  ErrorResponse  "Требуется вход"
// @Router       /questions/{questionId}/answers [post]
func (h *Handlers) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	profile, err := h.actor(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req models.NewAnswer
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		h.writeError(w, fmt.Errorf("%w: answer is required", errBadRequest))
		return
	}
	req.QuestionID = mux.Vars(r)["questionId"]
	req.UserID = profile.ID

	if err := h.content.CreateAnswer(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ListPosts возвращает ленту сообщества с комментариями.
// Эндпоинт: GET /community/posts
//
// @Summary      Получить посты сообщества
// @Tags         community
// @Produce      json
// @Success      200  {array}   models.Post
// @Router       /community/posts [get]
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListPosts(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, posts)
}

// CreatePost публикует пост в сообществе.
// Эндпоинт: POST /community/posts
//
// @Summary      Опубликовать пост
// @Tags         community
// @Accept       json
// @Param        X-Session-ID  header  string          true  "Идентификатор сессии"
// @Param        request       body    models.NewPost  true  "Пост"
// @Success      201
// @Failure      403  {object}  ErrorResponse  "Требуется вход"
// @Router       /community/posts [post]
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	profile, err := h.actor(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req models.NewPost
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		h.writeError(w, fmt.Errorf("%w: content is required", errBadRequest))
		return
	}
	req.UserID = profile.ID
	if req.Tags == nil {
		req.Tags = []string{}
	}

	if err := h.content.CreatePost(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// CreateComment комментирует пост.
// Эндпоинт: POST /community/posts/{postId}/comments
//
// @Summary      Комментировать пост
// @Tags         community
// @Accept       json
// @Param        X-Session-ID  header  string             true  "Идентификатор сессии"
// @Param        postId        path    string             true  "Идентификатор поста"
// @Param        request       body    models.NewComment  true  "Комментарий"
// @Success      201
// @Failure      403  {object}  ErrorResponse  "Требуется вход"
// @Router       /community/posts/{postId}/comments [post]
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	profile, err := h.actor(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req models.NewComment
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		h.writeError(w, fmt.Errorf("%w: content is required", errBadRequest))
		return
	}
	req.PostID = mux.Vars(r)["postId"]
	req.UserID = profile.ID

	if err := h.content.CreateComment(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
