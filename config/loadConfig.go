package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default values.
const (
	defaultTimeout         = 60 * time.Second
	defaultBackend         = BackendFirestore
	defaultDataDir         = "."
	defaultLogLevel        = "info"
	defaultEnvFile         = ".env"
	defaultCredentialsFile = "serviceAccountKey.json"
	defaultMongoHost       = "localhost"
	defaultMongoPort       = "27017"
	defaultMongoDatabase   = "firstaid"
	defaultMongoURI        = "mongodb://localhost:27017/firstaid"
)

// Viper keys. Flags bound in main use the same names.
const (
	KeyConfigFile        = "config"
	KeyEnvFile           = "env_file"
	KeyBackend           = "backend"
	KeyDataDir           = "data_dir"
	KeyStrict            = "strict"
	KeySyncLog           = "sync_log"
	KeyLogLevel          = "log_level"
	KeyTimeout           = "timeout"
	KeyCredentialsFile   = "credentials_file"
	KeyCredentialsSecret = "credentials_secret"
	KeyProjectID         = "firestore_project_id"
	KeyMongoURI          = "mongo_uri"
	KeyMongoHost         = "mongo_host"
	KeyMongoUser         = "mongo_user"
	KeyMongoPassword     = "mongo_password"
	KeyMongoDatabase     = "mongo_database"
)

var envNames = map[string]string{
	KeyEnvFile:           "ENV_FILE",
	KeyBackend:           "STORE_BACKEND",
	KeyDataDir:           "DATA_DIR",
	KeyStrict:            "STRICT_RECORDS",
	KeySyncLog:           "SYNC_LOG",
	KeyLogLevel:          "LOG_LEVEL",
	KeyTimeout:           "LOAD_TIMEOUT",
	KeyCredentialsFile:   "CREDENTIALS_FILE",
	KeyCredentialsSecret: "CREDENTIALS_SECRET",
	KeyProjectID:         "FIRESTORE_PROJECT_ID",
	KeyMongoURI:          "MONGO_URI",
	KeyMongoHost:         "MONGO_HOST",
	KeyMongoUser:         "MONGO_USER",
	KeyMongoPassword:     "MONGO_PASSWORD",
	KeyMongoDatabase:     "MONGO_DATABASE",
}

// LoadConfig loads the application configuration from flags, environment variables,
// an optional .env file and an optional config file, in that order of precedence.
func LoadConfig(ctx context.Context, logger *slog.Logger, v *viper.Viper) (*Config, error) {
	setDefaults(v)
	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	loadDotEnv(ctx, v.GetString(KeyEnvFile), logger)

	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
		logger.DebugContext(ctx, "Using config file", "file", v.ConfigFileUsed())
	}

	cfg := &Config{
		Backend:           v.GetString(KeyBackend),
		DataDir:           v.GetString(KeyDataDir),
		Strict:            v.GetBool(KeyStrict),
		SyncLog:           v.GetBool(KeySyncLog),
		LogLevel:          v.GetString(KeyLogLevel),
		Timeout:           v.GetDuration(KeyTimeout),
		CredentialsFile:   v.GetString(KeyCredentialsFile),
		CredentialsSecret: v.GetString(KeyCredentialsSecret),
		ProjectID:         v.GetString(KeyProjectID),
		MongoURI:          formatMongoURI(ctx, v, logger),
		MongoDatabase:     v.GetString(KeyMongoDatabase),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.DebugContext(ctx, "Configuration loaded",
		"backend", cfg.Backend,
		"dataDir", cfg.DataDir,
		"strict", cfg.Strict,
		"syncLog", cfg.SyncLog,
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyEnvFile, defaultEnvFile)
	v.SetDefault(KeyBackend, defaultBackend)
	v.SetDefault(KeyDataDir, defaultDataDir)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyTimeout, defaultTimeout)
	v.SetDefault(KeyCredentialsFile, defaultCredentialsFile)
	v.SetDefault(KeyMongoHost, defaultMongoHost)
	v.SetDefault(KeyMongoDatabase, defaultMongoDatabase)
}

// loadDotEnv exports the variables of an env file. Existing variables win.
func loadDotEnv(ctx context.Context, path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	err := godotenv.Load(path)
	switch {
	case err == nil:
		logger.DebugContext(ctx, "Loaded env file", "file", path)
	case errors.Is(err, fs.ErrNotExist):
		logger.DebugContext(ctx, "No env file found", "file", path)
	default:
		logger.WarnContext(ctx, "Failed to load env file", "file", path, "error", err)
	}
}

// formatMongoURI formats mongo settings to a url and return the result.
func formatMongoURI(ctx context.Context, v *viper.Viper, logger *slog.Logger) string {
	if mongoURI := v.GetString(KeyMongoURI); mongoURI != "" {
		logger.DebugContext(ctx, "Using MongoDB URI from environment variable")
		return mongoURI
	}

	mongoHost := v.GetString(KeyMongoHost)
	mongoUser := v.GetString(KeyMongoUser)
	mongoPassword := v.GetString(KeyMongoPassword)

	if mongoUser != "" && mongoPassword != "" {
		hostPort := net.JoinHostPort(mongoHost, defaultMongoPort)
		logger.DebugContext(ctx, "Created MongoDB URI from user, password, and host", "host", hostPort)
		return fmt.Sprintf(
			"mongodb://%s:%s@%s/%s?authSource=admin",
			mongoUser,
			mongoPassword,
			hostPort,
			v.GetString(KeyMongoDatabase),
		)
	}

	logger.DebugContext(ctx, "Using default MongoDB URI", "uri", defaultMongoURI)
	return defaultMongoURI
}
