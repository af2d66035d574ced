// Package config предоставляет загрузку конфигурации приложения из переменных окружения.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Поддерживаемые значения STORE_BACKEND.
const (
	BackendPostgres      = "postgres"
	BackendElasticsearch = "elasticsearch"
	BackendNone          = "none"
)

// Config содержит все параметры конфигурации приложения.
// Значения загружаются из переменных окружения с fallback на значения по умолчанию.
type Config struct {
	AppPort  string // Порт для HTTP сервера
	LogLevel string // Уровень логирования (debug, info, warn, error)

	StoreBackend string // Хранилище объявлений: postgres, elasticsearch или none

	PostgresHost     string // Хост PostgreSQL
	PostgresPort     string // Порт PostgreSQL
	PostgresUser     string // Пользователь PostgreSQL
	PostgresPassword string // Пароль PostgreSQL
	PostgresDB       string // Имя базы данных PostgreSQL
	PostgresSSLMode  string // Режим SSL для PostgreSQL

	ElasticsearchURL   string // URL для подключения к Elasticsearch/OpenSearch
	ElasticsearchIndex string // Индекс объявлений; комнаты хранятся в <index>_room_types

	GeminiAPIKey      string // Ключ Gemini API; пустое значение отключает генерацию
	GeminiModel       string // Модель для генерации объявлений
	GeneratedListings int    // Сколько объявлений запрашивать у модели

	AdminEmail string // Получатель заявок на размещение объекта

	SessionIdleMinutes int // Через сколько минут простоя сессия удаляется

	AuthProxySecret string // Общий секрет прокси аутентификации; пустое значение отключает вход
}

// Load загружает конфигурацию из .env файла (если он есть) и переменных окружения.
// Если переменная не установлена, используется значение по умолчанию.
func Load() *Config {
	// Отсутствие .env не ошибка: в контейнере всё приходит из окружения.
	_ = godotenv.Load()

	return &Config{
		AppPort:  getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "findmydorm"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "findmydorm"),
		PostgresDB:       getEnv("POSTGRES_DB", "findmydorm"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ElasticsearchURL:   getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
		ElasticsearchIndex: getEnv("ELASTICSEARCH_INDEX", "hostels"),

		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeneratedListings: getEnvInt("GENERATED_LISTINGS", 4),

		AdminEmail: getEnv("ADMIN_EMAIL", "admin@findmydorm.in"),

		SessionIdleMinutes: getEnvInt("SESSION_IDLE_MINUTES", 60),

		AuthProxySecret: os.Getenv("AUTH_PROXY_SECRET"),
	}
}

// DSN возвращает строку подключения к PostgreSQL в формате lib/pq.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}

// StoreConfigured сообщает, настроено ли живое хранилище объявлений.
// Если нет, объявления берутся из генеративного сервиса или встроенного каталога.
func (c *Config) StoreConfigured() bool {
	return c.StoreBackend == BackendPostgres || c.StoreBackend == BackendElasticsearch
}

// Validate проверяет значения, которые нельзя молча заменить умолчаниями.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres, BackendElasticsearch, BackendNone:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.GeneratedListings <= 0 {
		return fmt.Errorf("GENERATED_LISTINGS must be positive, got %d", c.GeneratedListings)
	}
	if c.SessionIdleMinutes <= 0 {
		return fmt.Errorf("SESSION_IDLE_MINUTES must be positive, got %d", c.SessionIdleMinutes)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
	}
	return defaultValue
}
