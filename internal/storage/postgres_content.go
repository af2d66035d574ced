package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/akozadaev/findmydorm/internal/models"
)

// Имена авторов по умолчанию, если профиль не найден.
const (
	unknownReviewer = "Unknown"
	unknownUser     = "User"
)

// ListReviews возвращает отзывы об объекте, новые первыми.
func (ps *PostgresStorage) ListReviews(ctx context.Context, listingID string) ([]models.Review, error) {
	query := `SELECT r.id::text, r.hostel_id, r.user_id, r.rating, r.text, r.images, r.created_at,
		p.name, p.verified
		FROM reviews r LEFT JOIN profiles p ON p.id = r.user_id
		WHERE r.hostel_id = $1 ORDER BY r.created_at DESC`

	rows, err := ps.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var (
			r      models.Review
			text   sql.NullString
			images pq.StringArray
			name   sql.NullString
			ver    sql.NullBool
		)
		if err := rows.Scan(&r.ID, &r.ListingID, &r.UserID, &r.Rating, &text, &images, &r.CreatedAt, &name, &ver); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		r.Text = text.String
		r.Images = nonNil(images)
		r.Author = author(name, ver, sql.NullString{}, unknownReviewer)
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return reviews, nil
}

// CreateReview сохраняет новый отзыв.
func (ps *PostgresStorage) CreateReview(ctx context.Context, r models.NewReview) error {
	_, err := ps.db.ExecContext(ctx,
		`INSERT INTO reviews (hostel_id, user_id, rating, text, images) VALUES ($1, $2, $3, $4, $5)`,
		r.ListingID, r.UserID, r.Rating, r.Text, pq.Array(nonNil(r.Images)),
	)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// ListQuestions возвращает вопросы об объекте (новые первыми) с ответами
// в хронологическом порядке. Ответы запрашиваются вторым запросом.
func (ps *PostgresStorage) ListQuestions(ctx context.Context, listingID string) ([]models.Question, error) {
	rows, err := ps.db.QueryContext(ctx, `SELECT q.id::text, q.hostel_id, q.user_id, q.question, q.image_url, q.created_at,
		p.name, p.verified
		FROM hostel_questions q LEFT JOIN profiles p ON p.id = q.user_id
		WHERE q.hostel_id = $1 ORDER BY q.created_at DESC`, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var (
			q        models.Question
			imageURL sql.NullString
			name     sql.NullString
			ver      sql.NullBool
		)
		if err := rows.Scan(&q.ID, &q.ListingID, &q.UserID, &q.Question, &imageURL, &q.CreatedAt, &name, &ver); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.ImageURL = imageURL.String
		q.Author = author(name, ver, sql.NullString{}, unknownUser)
		q.Answers = []models.Answer{}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	if len(questions) == 0 {
		return questions, nil
	}

	ids := make([]string, len(questions))
	index := make(map[string]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		index[q.ID] = i
	}

	answers, err := ps.db.QueryContext(ctx, `SELECT a.id::text, a.question_id::text, a.user_id, a.answer, a.created_at,
		p.name, p.verified
		FROM hostel_answers a LEFT JOIN profiles p ON p.id = a.user_id
		WHERE a.question_id::text = ANY($1) ORDER BY a.created_at ASC`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer answers.Close()

	for answers.Next() {
		var (
			a    models.Answer
			name sql.NullString
			ver  sql.NullBool
		)
		if err := answers.Scan(&a.ID, &a.QuestionID, &a.UserID, &a.Answer, &a.CreatedAt, &name, &ver); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		a.Author = author(name, ver, sql.NullString{}, unknownUser)
		if i, ok := index[a.QuestionID]; ok {
			questions[i].Answers = append(questions[i].Answers, a)
		}
	}
	if err := answers.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return questions, nil
}

// CreateQuestion сохраняет новый вопрос об объекте.
func (ps *PostgresStorage) CreateQuestion(ctx context.Context, q models.NewQuestion) error {
	_, err := ps.db.ExecContext(ctx,
		`INSERT INTO hostel_questions (hostel_id, user_id, question, image_url) VALUES ($1, $2, $3, NULLIF($4, ''))`,
		q.ListingID, q.UserID, q.Question, q.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

// CreateAnswer сохраняет ответ на вопрос.
func (ps *PostgresStorage) CreateAnswer(ctx context.Context, a models.NewAnswer) error {
	_, err := ps.db.ExecContext(ctx,
		`INSERT INTO hostel_answers (question_id, user_id, answer) VALUES ($1, $2, $3)`,
		a.QuestionID, a.UserID, a.Answer,
	)
	if err != nil {
		return fmt.Errorf("failed to insert answer: %w", err)
	}
	return nil
}

// ListPosts возвращает ленту сообщества (новые первыми) с комментариями.
func (ps *PostgresStorage) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := ps.db.QueryContext(ctx, `SELECT c.id::text, c.user_id, c.topic, c.content, c.tags, c.image_url, c.created_at,
		p.name, p.verified, p.college
		FROM community_posts c LEFT JOIN profiles p ON p.id = c.user_id
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var (
			p             models.Post
			tags          pq.StringArray
			imageURL      sql.NullString
			name, college sql.NullString
			ver           sql.NullBool
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Topic, &p.Content, &tags, &imageURL, &p.CreatedAt, &name, &ver, &college); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		p.Tags = nonNil(tags)
		p.ImageURL = imageURL.String
		p.Author = author(name, ver, college, unknownUser)
		p.Comments = []models.Comment{}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	ids := make([]string, len(posts))
	index := make(map[string]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		index[p.ID] = i
	}

	comments, err := ps.db.QueryContext(ctx, `SELECT c.id::text, c.post_id::text, c.user_id, c.content, c.created_at,
		p.name, p.verified, p.college
		FROM community_comments c LEFT JOIN profiles p ON p.id = c.user_id
		WHERE c.post_id::text = ANY($1) ORDER BY c.created_at ASC`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer comments.Close()

	for comments.Next() {
		var (
			c             models.Comment
			name, college sql.NullString
			ver           sql.NullBool
		)
		if err := comments.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &name, &ver, &college); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.Author = author(name, ver, college, unknownUser)
		if i, ok := index[c.PostID]; ok {
			posts[i].Comments = append(posts[i].Comments, c)
		}
	}
	if err := comments.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	for i := range posts {
		posts[i].CommentCount = len(posts[i].Comments)
	}
	return posts, nil
}

// CreatePost публикует пост в ленте сообщества.
func (ps *PostgresStorage) CreatePost(ctx context.Context, p models.NewPost) error {
	_, err := ps.db.ExecContext(ctx,
		`INSERT INTO community_posts (user_id, topic, content, tags, image_url) VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
		p.UserID, p.Topic, p.Content, pq.Array(nonNil(p.Tags)), p.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// CreateComment добавляет комментарий к посту.
func (ps *PostgresStorage) CreateComment(ctx context.Context, c models.NewComment) error {
	_, err := ps.db.ExecContext(ctx,
		`INSERT INTO community_comments (post_id, user_id, content) VALUES ($1, $2, $3)`,
		c.PostID, c.UserID, c.Content,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// GetProfile возвращает профиль пользователя. Если строки в profiles нет,
// возвращается профиль по умолчанию: имя из email, без подтверждения и прав администратора.
func (ps *PostgresStorage) GetProfile(ctx context.Context, userID, email string) (models.Profile, error) {
	var (
		name, college sql.NullString
		ver, isAdmin  sql.NullBool
	)
	err := ps.db.QueryRowContext(ctx,
		`SELECT name, verified, college, is_admin FROM profiles WHERE id = $1`, userID,
	).Scan(&name, &ver, &college, &isAdmin)

	if errors.Is(err, sql.ErrNoRows) {
		return FallbackProfile(userID, email), nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to query profile: %w", err)
	}

	p := FallbackProfile(userID, email)
	if name.Valid && name.String != "" {
		p.Name = name.String
	}
	p.Verified = ver.Valid && ver.Bool
	p.College = college.String
	p.IsAdmin = isAdmin.Valid && isAdmin.Bool
	return p, nil
}

// ListProfiles возвращает всех пользователей для панели администратора.
func (ps *PostgresStorage) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := ps.db.QueryContext(ctx,
		`SELECT id, name, email, verified, college, is_admin FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var (
			p                    models.Profile
			name, email, college sql.NullString
			ver, isAdmin         sql.NullBool
		)
		if err := rows.Scan(&p.ID, &name, &email, &ver, &college, &isAdmin); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.Name = name.String
		p.Email = email.String
		p.Verified = ver.Valid && ver.Bool
		p.College = college.String
		p.IsAdmin = isAdmin.Valid && isAdmin.Bool
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return profiles, nil
}

// ToggleVerified инвертирует признак подтвержденного студента.
func (ps *PostgresStorage) ToggleVerified(ctx context.Context, userID string) (models.Profile, error) {
	var (
		p                    models.Profile
		name, email, college sql.NullString
		isAdmin              sql.NullBool
	)
	err := ps.db.QueryRowContext(ctx,
		`UPDATE profiles SET verified = NOT COALESCE(verified, false) WHERE id = $1
		RETURNING id, name, email, verified, college, is_admin`, userID,
	).Scan(&p.ID, &name, &email, &p.Verified, &college, &isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to toggle verification: %w", err)
	}
	p.Name = name.String
	p.Email = email.String
	p.College = college.String
	p.IsAdmin = isAdmin.Valid && isAdmin.Bool
	return p, nil
}

// FallbackProfile строит профиль для пользователя без записи в profiles.
func FallbackProfile(userID, email string) models.Profile {
	name := unknownUser
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		name = local
	} else if email != "" && !ok {
		name = email
	}
	return models.Profile{ID: userID, Name: name, Email: email}
}

func author(name sql.NullString, verified sql.NullBool, college sql.NullString, fallback string) models.Author {
	a := models.Author{Name: fallback}
	if name.Valid && name.String != "" {
		a.Name = name.String
	}
	a.Verified = verified.Valid && verified.Bool
	a.College = college.String
	return a
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
