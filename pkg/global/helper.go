package global

import (
	"context"
	"math"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDefaultTimer() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func GetMongoURI() string {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI is not set in environment variables")
	}
	return mongoURI
}

func GetDatabaseName() string {
	return GetEnvOrDefault("MONGODB_DATABASE", "velora_storefront")
}

// Round2 rounds to 2 decimal places, half away from zero. All monetary
// amounts go through this so pricing and persistence agree on cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
