package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const DefaultAdminPassword = "securepassword123"

type Config struct {
	ServicePort        string
	MetricsPort        string
	Environment        string
	LogLevel           string
	MongoDBConfig      MongoDBConfig
	JWTConfig          JWTConfig
	PayPalConfig       PayPalConfig
	MidtransConfig     MidtransConfig
	SeedConfig         SeedConfig
	InventoryConfig    InventoryConfig
	KafkaConfig        KafkaConfig
	TracingConfig      TracingConfig
	SMTPConfig         SMTPConfig
	CORSAllowedOrigins []string
	PageSize           int
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "5000"),
		MetricsPort: getEnv("METRICS_PORT", "9100"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MongoDBConfig: MongoDBConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: getEnv("MONGO_DATABASE", "storefront"),
		},
		JWTConfig: JWTConfig{
			JWTSecret:   os.Getenv("JWT_SECRET"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 720),
		},
		PayPalConfig: PayPalConfig{
			ClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
			ClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
			Environment:  os.Getenv("PAYPAL_ENVIRONMENT"),
			APIBase:      os.Getenv("PAYPAL_API_BASE"),
		},
		MidtransConfig: MidtransConfig{
			ServerKey:   os.Getenv("MIDTRANS_SERVER_KEY"),
			Environment: getEnv("MIDTRANS_ENVIRONMENT", "sandbox"),
			Currency:    strings.ToUpper(getEnv("MIDTRANS_CURRENCY", "IDR")),
		},
		SeedConfig: SeedConfig{
			Secret:        os.Getenv("SEED_SECRET"),
			AdminPassword: getEnv("ADMIN_PASSWORD", os.Getenv("SEED_ADMIN_PASSWORD")),
		},
		InventoryConfig: InventoryConfig{
			APIURL:   os.Getenv("INVENTORY_API_URL"),
			SyncCron: getEnv("INVENTORY_SYNC_CRON", "0 * * * *"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "storefront-events"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		PageSize: getEnvInt("PAGE_SIZE", 12),
	}

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "https://grapheneos-store.vercel.app,http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			conf.CORSAllowedOrigins = append(conf.CORSAllowedOrigins, origin)
		}
	}

	if conf.SeedConfig.AdminPassword == "" {
		conf.SeedConfig.AdminPassword = DefaultAdminPassword
		conf.SeedConfig.AdminPasswordDefaulted = true
		if conf.Environment == "production" {
			log.Warn().Str("component", "CreateNewConfig").Msg("ADMIN_PASSWORD is not set, the seeded admin uses the default password")
		}
	}

	if conf.PayPalConfig.Environment == "" {
		conf.PayPalConfig.Environment = "sandbox"
		if conf.Environment == "production" {
			conf.PayPalConfig.Environment = "live"
		}
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
