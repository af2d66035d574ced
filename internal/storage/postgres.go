package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/akozadaev/findmydorm/internal/models"
)

var (
	// ErrNotFound возвращается, если запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrNotConfigured возвращается, если реляционное хранилище не подключено.
	ErrNotConfigured = errors.New("storage not configured")
)

// PostgresStorage предоставляет методы для работы с объявлениями, отзывами,
// вопросами, лентой сообщества и профилями в PostgreSQL.
type PostgresStorage struct {
	db *sql.DB // Подключение к базе данных PostgreSQL
}

// NewPostgresStorage создает новый экземпляр PostgresStorage и устанавливает подключение к БД.
// DSN должен быть в формате: "host=... port=... user=... password=... dbname=... sslmode=..."
func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStorage{db: db}, nil
}

// NewPostgresStorageFromDB оборачивает уже открытое подключение.
func NewPostgresStorageFromDB(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Close закрывает подключение к базе данных PostgreSQL.
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// Ping проверяет доступность базы данных.
func (ps *PostgresStorage) Ping(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}

// EnsureSchema создает таблицы, если их еще нет.
func (ps *PostgresStorage) EnsureSchema(ctx context.Context, schemaSQL string) error {
	if _, err := ps.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SelectListingsByCity возвращает объекты, в названии города которых
// встречается cityPattern без учета регистра.
func (ps *PostgresStorage) SelectListingsByCity(ctx context.Context, cityPattern string) ([]models.ListingRow, error) {
	query := `SELECT id, name, type, city, distance, rating, verified, amenities, images,
		description, address, contact_phone, contact_email, lat, lng, listed_since
		FROM hostels WHERE city ILIKE $1 ESCAPE '\' ORDER BY name`

	rows, err := ps.db.QueryContext(ctx, query, "%"+escapeLike(cityPattern)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query hostels: %w", err)
	}
	defer rows.Close()

	var listings []models.ListingRow
	for rows.Next() {
		var (
			l                                  models.ListingRow
			typ, distance                      sql.NullString
			description, address, phone, email sql.NullString
			rating, lat, lng                   sql.NullFloat64
			verified                           sql.NullBool
			listedSince                        sql.NullTime
			amenities, images                  pq.StringArray
		)
		if err := rows.Scan(
			&l.ID,
			&l.Name,
			&typ,
			&l.City,
			&distance,
			&rating,
			&verified,
			&amenities,
			&images,
			&description,
			&address,
			&phone,
			&email,
			&lat,
			&lng,
			&listedSince,
		); err != nil {
			return nil, fmt.Errorf("failed to scan hostel: %w", err)
		}

		l.Type = nullString(typ)
		l.Distance = nullString(distance)
		l.Rating = nullFloat(rating)
		l.Lat = nullFloat(lat)
		l.Lng = nullFloat(lng)
		l.Verified = verified.Valid && verified.Bool
		l.Amenities = []string(amenities)
		l.Images = []string(images)
		l.Description = description.String
		l.Address = address.String
		l.ContactPhone = phone.String
		l.ContactEmail = email.String
		if listedSince.Valid {
			t := listedSince.Time
			l.ListedSince = &t
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return listings, nil
}

// SelectRoomTypesByListingIDs возвращает варианты размещения для указанных объектов
// в порядке их добавления.
func (ps *PostgresStorage) SelectRoomTypesByListingIDs(ctx context.Context, ids []string) ([]models.RoomTypeRow, error) {
	if len(ids) == 0 {
		return []models.RoomTypeRow{}, nil
	}

	query := `SELECT id::text, hostel_id, type, price, description
		FROM room_types WHERE hostel_id = ANY($1) ORDER BY room_types.id`

	rows, err := ps.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query room types: %w", err)
	}
	defer rows.Close()

	var rooms []models.RoomTypeRow
	for rows.Next() {
		var r models.RoomTypeRow
		var description sql.NullString
		if err := rows.Scan(&r.ID, &r.ListingID, &r.Type, &r.Price, &description); err != nil {
			return nil, fmt.Errorf("failed to scan room type: %w", err)
		}
		r.Description = description.String
		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return rooms, nil
}

// InsertListing сохраняет объект вместе с вариантами размещения в одной транзакции.
// Если ID пустой, он генерируется. Возвращает идентификатор объекта.
func (ps *PostgresStorage) InsertListing(ctx context.Context, l models.Listing) (string, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO hostels
		(id, name, type, city, distance, rating, verified, amenities, images,
		 description, address, contact_phone, contact_email, lat, lng, listed_since)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, COALESCE($16, NOW()))
		ON CONFLICT (id) DO NOTHING`,
		l.ID, l.Name, string(l.Type), l.City, l.Distance, l.Rating, l.Verified,
		pq.Array(l.Amenities), pq.Array(l.Images), l.Description, l.Address,
		l.Contact.Phone, l.Contact.Email, l.Coordinates.Lat, l.Coordinates.Lng, l.ListedSince,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert hostel: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Объект уже есть: комнаты не дублируем.
		return l.ID, nil
	}

	for _, r := range l.RoomTypes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO room_types (hostel_id, type, price, description) VALUES ($1, $2, $3, $4)`,
			l.ID, r.Type, r.Price, r.Description,
		); err != nil {
			return "", fmt.Errorf("failed to insert room type: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit listing: %w", err)
	}
	return l.ID, nil
}

// escapeLike экранирует спецсимволы шаблона LIKE, чтобы город искался как подстрока.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
