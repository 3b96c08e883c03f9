package config

import (
	"os"

	"github.com/joho/godotenv"
)

type BraintreeConfig struct {
	Environment string // "sandbox" or "production"
	MerchantID  string
	PublicKey   string
	PrivateKey  string
}

// Config carries everything the process needs, built once in main and
// passed by reference. No package-level state.
type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	RedisAddr   string
	KafkaBroker string
	Braintree   BraintreeConfig
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: buildDSN(),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		Braintree: BraintreeConfig{
			Environment: getEnv("BRAINTREE_ENV", "sandbox"),
			MerchantID:  os.Getenv("BRAINTREE_MERCHANT_ID"),
			PublicKey:   os.Getenv("BRAINTREE_PUBLIC_KEY"),
			PrivateKey:  os.Getenv("BRAINTREE_PRIVATE_KEY"),
		},
	}
}

func buildDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASS", "postgres")
	name := getEnv("DB_NAME", "ecommerce")

	return "host=" + host + " user=" + user + " password=" + pass +
		" dbname=" + name + " port=" + port +
		" sslmode=disable TimeZone=UTC"
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
