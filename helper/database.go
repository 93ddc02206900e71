package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Environment variables read by NewDatabaseConfiguration.
const (
	EnvDatabaseHost     = "STARCALC_DB_HOST"
	EnvDatabasePort     = "STARCALC_DB_PORT"
	EnvDatabaseName     = "STARCALC_DB_DATABASE"
	EnvDatabaseUsername = "STARCALC_DB_USERNAME"
	EnvDatabasePassword = "STARCALC_DB_PASSWORD"
	EnvDatabaseSchema   = "STARCALC_DB_SCHEMA"
	EnvDatabaseSSLMode  = "STARCALC_DB_SSLMODE"
)

// DatabaseConfiguration holds the connection settings for PostgreSQL
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration reads the database configuration from the environment.
// A .env file in the working directory is loaded first if it exists.
// Schema defaults to "public" and SSLMode to "disable".
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv(EnvDatabaseHost),
		Port:     os.Getenv(EnvDatabasePort),
		Database: os.Getenv(EnvDatabaseName),
		Username: os.Getenv(EnvDatabaseUsername),
		Password: os.Getenv(EnvDatabasePassword),
		Schema:   os.Getenv(EnvDatabaseSchema),
		SSLMode:  os.Getenv(EnvDatabaseSSLMode),
	}

	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	if config.Host == "" || config.Port == "" || config.Database == "" || config.Username == "" {
		return nil, NewError("database configuration", fmt.Errorf("host, port, database and username must be set (%s, %s, %s, %s)", EnvDatabaseHost, EnvDatabasePort, EnvDatabaseName, EnvDatabaseUsername))
	}

	return config, nil
}

// DSN returns the lib/pq connection string for the configuration
func (c *DatabaseConfiguration) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode, c.Schema,
	)
}

// Database bundles a connection pool with its logger
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabase opens and pings a PostgreSQL connection pool.
// It panics if the database is unreachable.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	if logger == nil {
		logger = slog.Default()
	}

	instance, err := sql.Open("postgres", config.DSN())
	if err != nil {
		log.Panicf("error opening database %s: %#v", name, err)
	}

	instance.SetMaxOpenConns(10)
	instance.SetMaxIdleConns(5)
	instance.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = instance.PingContext(ctx)
	if err != nil {
		log.Panicf("error connecting to database %s: %#v", name, err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("host", config.Host), slog.String("database", config.Database))

	return &Database{
		Name:     name,
		Instance: instance,
		Logger:   logger,
	}
}

// NewTestDatabase opens a database with a debug logger for tests
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	logger := slog.New(NewPrettyHandler(os.Stdout, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
	}))
	return NewDatabase("test", config, logger)
}

// Close closes the connection pool
func (d *Database) Close() error {
	if d == nil || d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}
