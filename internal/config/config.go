package config

import "os"

// Each backend domain runs as its own service, so every gateway client gets
// its own base URL. Watchlist endpoints are served by the catalog service
// unless overridden.
func AuthServiceURL() string {
	return GetEnv("AUTH_SERVICE_URL", "http://localhost:8081")
}

func CatalogServiceURL() string {
	return GetEnv("CATALOG_SERVICE_URL", "http://localhost:8082")
}

func RecommendationServiceURL() string {
	return GetEnv("RECOMMENDATION_SERVICE_URL", "http://localhost:8083")
}

func ReviewServiceURL() string {
	return GetEnv("REVIEW_SERVICE_URL", "http://localhost:8084")
}

func WatchlistServiceURL() string {
	return GetEnv("WATCHLIST_SERVICE_URL", CatalogServiceURL())
}

// RedisConfig returns host, port, password
func RedisConfig() (string, string, string) {
	host := GetEnv("R_HOST", "localhost")
	port := GetEnv("R_PORT", "6379")
	password := GetEnv("R_PASS", "")
	return host, port, password
}

// GetEnv retrieves values from environment files based on the key it matches,
// returns a string (value) if not empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
