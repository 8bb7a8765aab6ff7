package config

import (
	"time"
)

// Store backends.
const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
	BackendMemory    = "memory"
)

// Config holds the application configuration.
type Config struct {
	Backend           string        `validate:"required,oneof=firestore mongo memory"`
	DataDir           string        `validate:"required"`
	Strict            bool          `validate:"-"`
	SyncLog           bool          `validate:"-"`
	LogLevel          string        `validate:"oneof=debug info warn error"`
	Timeout           time.Duration `validate:"gt=0"`
	CredentialsFile   string        `validate:"required_without=CredentialsSecret"`
	CredentialsSecret string
	ProjectID         string
	MongoURI          string `validate:"required_if=Backend mongo"`
	MongoDatabase     string `validate:"required_if=Backend mongo"`
}
