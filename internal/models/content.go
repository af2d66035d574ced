package models

import "time"

// Author представляет автора отзыва, вопроса или поста
type Author struct {
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
	College  string `json:"college,omitempty"`
}

// Profile представляет профиль пользователя после входа
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	College  string `json:"college,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// Review представляет отзыв студента об объекте
type Review struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"created_at"`
	Author    Author    `json:"author"`
}

// Question представляет вопрос об объекте вместе с ответами
type Question struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Author    Author    `json:"author"`
	Answers   []Answer  `json:"answers"`
}

// Answer представляет ответ на вопрос
type Answer struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	UserID     string    `json:"user_id"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
	Author     Author    `json:"author"`
}

// Post представляет пост в ленте сообщества
type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Topic        string    `json:"topic"`
	Content      string    `json:"content"`
	Tags         []string  `json:"tags"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Author       Author    `json:"author"`
	Comments     []Comment `json:"comments"`
	CommentCount int       `json:"comment_count"`
}

// Comment представляет комментарий к посту
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    Author    `json:"author"`
}

// PropertySubmission представляет заявку владельца на размещение объекта
type PropertySubmission struct {
	ID           string      `json:"id"`
	OwnerName    string      `json:"owner_name"`
	PropertyName string      `json:"property_name"`
	Type         ListingType `json:"type"`
	City         string      `json:"city"`
	Address      string      `json:"address"`
	ContactPhone string      `json:"contact_phone"`
	ContactEmail string      `json:"contact_email"`
	Description  string      `json:"description"`
	Amenities    []string    `json:"amenities"`
	RoomTypes    []RoomType  `json:"room_types"`
	SubmittedAt  time.Time   `json:"submitted_at"`
}

// NewReview содержит поля для создания отзыва
type NewReview struct {
	ListingID string   `json:"listing_id"`
	UserID    string   `json:"user_id"`
	Rating    int      `json:"rating"`
	Text      string   `json:"text"`
	Images    []string `json:"images"`
}

// NewQuestion содержит поля для создания вопроса
type NewQuestion struct {
	ListingID string `json:"listing_id"`
	UserID    string `json:"user_id"`
	Question  string `json:"question"`
	ImageURL  string `json:"image_url,omitempty"`
}

// NewAnswer содержит поля для создания ответа
type NewAnswer struct {
	QuestionID string `json:"question_id"`
	UserID     string `json:"user_id"`
	Answer     string `json:"answer"`
}

// NewPost содержит поля для создания поста
type NewPost struct {
	UserID   string   `json:"user_id"`
	Topic    string   `json:"topic"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"image_url,omitempty"`
}

// NewComment содержит поля для создания комментария
type NewComment struct {
	PostID  string `json:"post_id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}
