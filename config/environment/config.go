package environment

import (
	"os"
	"strconv"
	"time"
)

func GetAIProvider() string {
	provider := os.Getenv("AI_PROVIDER")
	if provider == "" {
		return "openai" // cloud by default
	}
	return provider
}

func GetOpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// GetAIBaseURL is only used by the "local" provider (Ollama, LM Studio, vLLM
// or any other OpenAI-compatible server).
func GetAIBaseURL() string {
	baseURL := os.Getenv("AI_BASE_URL")
	if baseURL == "" {
		return "http://localhost:11434/v1"
	}
	return baseURL
}

func GetAIModel() string {
	model := os.Getenv("AI_MODEL")
	if model == "" {
		return "gpt-4o-mini"
	}
	return model
}

func GetAITimeout() time.Duration {
	return getDurationSeconds("AI_TIMEOUT_SECONDS", 30*time.Second)
}

func GetSheetCSVURL() string {
	url := os.Getenv("SHEET_CSV_URL")
	if url == "" {
		return "https://docs.google.com/spreadsheets/d/1FlVCrM1jAKv3GLKhT6B05Vx379xdOCNAj8HDPPLIxvA/export?format=csv&gid=0"
	}
	return url
}

func GetGeocodeCacheFile() string {
	path := os.Getenv("GEOCODE_CACHE_FILE")
	if path == "" {
		return "geocoding_cache.json"
	}
	return path
}

func GetGeocodeTimeout() time.Duration {
	return getDurationSeconds("GEOCODE_TIMEOUT_SECONDS", 10*time.Second)
}

func GetFirebaseKey() string {
	return os.Getenv("FIREBASE_CREDENTIALS_BASE64")
}

func GetFirebaseProjectID() string {
	return os.Getenv("FIREBASE_PROJECT_ID")
}

func GetSessionSecret() string {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return "map-excel-api-chat-dev-secret"
	}
	return secret
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		return "8080"
	}
	return port
}

func getDurationSeconds(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
