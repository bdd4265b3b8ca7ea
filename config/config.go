package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eventzon/eventzon/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
}

func LoadSMTPConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     getEnv("SMTP_PORT", "587"),
		From:     os.Getenv("SMTP_FROM"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}

type RabbitConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// LoadRabbitConfig reads the notification queue settings. An empty URL means
// the queue is disabled and bookings skip the email pipeline.
func LoadRabbitConfig() *RabbitConfig {
	return &RabbitConfig{
		URL:      os.Getenv("RABBITMQ_URL"),
		Exchange: getEnv("RABBITMQ_EXCHANGE", "eventzon.notifications"),
		Queue:    getEnv("RABBITMQ_QUEUE", "booking-emails"),
	}
}

type BookingConfig struct {
	// DefaultStatus is the status newly created bookings get: "confirmed"
	// treats booking as payment, "pending" models a later payment step.
	DefaultStatus string
	QRSecret      string
}

func LoadBookingConfig() *BookingConfig {
	status := os.Getenv("BOOKING_DEFAULT_STATUS")
	if status != models.BookingStatusPending {
		status = models.BookingStatusConfirmed
	}
	return &BookingConfig{
		DefaultStatus: status,
		QRSecret:      os.Getenv("JWT_SECRET"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.User{}, &models.Event{}, &models.CartItem{}, &models.Booking{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
