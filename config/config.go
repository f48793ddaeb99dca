package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cherybd/models"
)

var (
	DB        *gorm.DB
	AppConfig Config
)

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"-"`
	DB       int    `json:"db"`
}

// SMTPConfig holds the mail-account credentials for the outbound transport.
type SMTPConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Username  string `json:"username"`
	Password  string `json:"-"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
}

// CRMConfig holds the OAuth client credentials for the lead-forwarding CRM.
type CRMConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"-"`
	RefreshToken string `json:"-"`
	TokenURL     string `json:"token_url"`
	APIBase      string `json:"api_base"`
}

type Config struct {
	Environment string      `json:"environment"`
	ServerPort  string      `json:"server_port"`
	SentryDSN   string      `json:"-"`
	SMTP        SMTPConfig  `json:"smtp"`
	CRM         CRMConfig   `json:"crm"`
	Redis       RedisConfig `json:"redis"`

	DBHost         string `json:"db_host"`
	DBPort         string `json:"db_port"`
	DBUser         string `json:"db_user"`
	DBPassword     string `json:"-"`
	DBName         string `json:"db_name"`
	DBSSLMode      string `json:"db_ssl_mode"`
	DBMaxIdleConns int    `json:"db_max_idle_conns"`
	DBMaxOpenConns int    `json:"db_max_open_conns"`

	// Fallback admin recipients for workflows whose payload does not carry
	// adminEmail1/adminEmail2 (brochure, test drive, complaint).
	AdminEmail1 string `json:"admin_email_1"`
	AdminEmail2 string `json:"admin_email_2"`

	// Phone fallback surfaced to customers when the assistance flow fails.
	EmergencyHotline string `json:"emergency_hotline"`

	RateLimitSubmissions int `json:"rate_limit_submissions"`
}

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
}

func LoadConfig() error {
	AppConfig = Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  getEnv("SERVER_PORT", "5000"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:      getEnvAsInt("SMTP_PORT", 587),
			Username:  getEnv("SMTP_USERNAME", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("SMTP_FROM_EMAIL", "no-reply@cherybd.com"),
			FromName:  getEnv("SMTP_FROM_NAME", "Chery Bangladesh"),
		},
		CRM: CRMConfig{
			ClientID:     getEnv("CRM_CLIENT_ID", ""),
			ClientSecret: getEnv("CRM_CLIENT_SECRET", ""),
			RefreshToken: getEnv("CRM_REFRESH_TOKEN", ""),
			TokenURL:     getEnv("CRM_TOKEN_URL", "https://accounts.zoho.com/oauth/v2/token"),
			APIBase:      getEnv("CRM_API_BASE", "https://www.zohoapis.com/crm/v2"),
		},
		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ADDR", "") != "",
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},

		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "cherybd"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 100),

		AdminEmail1: getEnv("ADMIN_EMAIL_1", ""),
		AdminEmail2: getEnv("ADMIN_EMAIL_2", ""),

		EmergencyHotline: getEnv("EMERGENCY_HOTLINE", "+880 9666 700 700"),

		RateLimitSubmissions: getEnvAsInt("RATE_LIMIT_SUBMISSIONS", 5),
	}

	// Validate required configurations. Missing transport or CRM credentials
	// must fail at startup, not per request.
	if AppConfig.SMTP.Username == "" || AppConfig.SMTP.Password == "" {
		return fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD are required")
	}
	if AppConfig.CRM.ClientID == "" || AppConfig.CRM.ClientSecret == "" || AppConfig.CRM.RefreshToken == "" {
		return fmt.Errorf("CRM_CLIENT_ID, CRM_CLIENT_SECRET and CRM_REFRESH_TOKEN are required")
	}
	if AppConfig.AdminEmail1 == "" {
		return fmt.Errorf("ADMIN_EMAIL_1 is required")
	}
	if AppConfig.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}

	logConfig()
	return nil
}

func ConnectDB() error {
	log.Println("Attempting to connect to database...")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBUser,
		AppConfig.DBPassword,
		AppConfig.DBName,
		AppConfig.DBSSLMode,
	)
	log.Println("Using connection string:", maskPassword(dsn))

	var err error
	// TranslateError maps driver duplicate-key failures onto
	// gorm.ErrDuplicatedKey so handlers can answer 400 instead of 500.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(AppConfig.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("✅ Successfully connected to the database")
	log.Println("🔄 Starting database migration...")
	if err := migrateDB(DB); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	log.Println("✅ Database migration completed")
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return fallback
	}
	return value
}

func maskPassword(dsn string) string {
	const passwordMarker = "password="
	startIdx := strings.Index(dsn, passwordMarker)
	if startIdx == -1 {
		return dsn
	}

	startIdx += len(passwordMarker)
	endIdx := strings.IndexAny(dsn[startIdx:], " ")
	if endIdx == -1 {
		return dsn[:startIdx] + "*****"
	}
	return dsn[:startIdx] + "*****" + dsn[startIdx+endIdx:]
}

func logConfig() {
	log.Println("🔧 Loaded configuration:")
	log.Printf("Environment: %s", AppConfig.Environment)
	log.Printf("Server Port: %s", AppConfig.ServerPort)
	log.Printf("Database: %s@%s:%s/%s",
		AppConfig.DBUser,
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBName)
	log.Printf("SMTP: %s@%s:%d", AppConfig.SMTP.Username, AppConfig.SMTP.Host, AppConfig.SMTP.Port)
	log.Printf("CRM configured: %t, Redis rate limiting: %t",
		AppConfig.CRM.ClientID != "",
		AppConfig.Redis.Enabled)
}

func migrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AssistanceRequest{},
	)
}
