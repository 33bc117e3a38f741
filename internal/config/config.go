package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendMongoDB   = "mongodb"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	Firestore FirestoreConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StoreConfig selects which document store adapter backs the dashboard.
type StoreConfig struct {
	Backend string
}

// MongoDBConfig holds settings for the MongoDB adapter.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// FirestoreConfig holds settings for the Firestore REST adapter.
type FirestoreConfig struct {
	ProjectID string
	APIKey    string
	BaseURL   string // overridable for tests
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Store: StoreConfig{
			Backend: getenvWithDefault("STORE_BACKEND", BackendMongoDB),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "patisserie"),
		},
		Firestore: FirestoreConfig{
			ProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
			APIKey:    os.Getenv("FIRESTORE_API_KEY"),
			BaseURL:   os.Getenv("FIRESTORE_BASE_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated for the
// selected backend.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Backend {
	case BackendMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			return errors.New("FIRESTORE_PROJECT_ID must be provided")
		}
		if c.Firestore.APIKey == "" {
			return errors.New("FIRESTORE_API_KEY must be provided")
		}
	case BackendMemory:
		// Nothing to validate; the memory backend needs no credentials.
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
