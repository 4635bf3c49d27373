package config

import (
	"fmt"
	"time"

	"github.com/midwestpm/reportingest/internal/db"
	"github.com/spf13/viper"
)

// Config is the full service configuration: database, HTTP listener, and
// ingestion knobs.
type Config struct {
	Database db.Config
	Server   ServerConfig
	Ingest   IngestConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// IngestConfig configures the snapshot ingestion controller.
type IngestConfig struct {
	// BatchPause is the wait between sequential batch submissions.
	BatchPause time.Duration
	// VerifyCounts enables the informational post-ingest row count query.
	VerifyCounts bool
	// MigrationsPath points at the SQL migration directory.
	MigrationsPath string
}

// Load reads config.yaml from configPath with environment overrides
// (prefix RI, e.g. RI_DATABASE_HOST). Missing files fall back to defaults
// plus env vars.
func Load(configPath string) (Config, error) {
	cfg := Config{
		Database: db.DefaultConfig(),
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Ingest: IngestConfig{
			BatchPause:     250 * time.Millisecond,
			VerifyCounts:   true,
			MigrationsPath: "./migrations",
		},
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("RI")

	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("server.addr")
	v.BindEnv("ingest.batch_pause_ms")
	v.BindEnv("ingest.verify_counts")
	v.BindEnv("ingest.migrations_path")

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("ingest.batch_pause_ms") {
		cfg.Ingest.BatchPause = time.Duration(v.GetInt("ingest.batch_pause_ms")) * time.Millisecond
	}
	if v.IsSet("ingest.verify_counts") {
		cfg.Ingest.VerifyCounts = v.GetBool("ingest.verify_counts")
	}
	if v.IsSet("ingest.migrations_path") {
		cfg.Ingest.MigrationsPath = v.GetString("ingest.migrations_path")
	}

	return cfg, nil
}
