package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Pagination
		Logging
		Seed
		ReadOnly
		Admin
		Sessions
		CSRF
		CORS
		Tasks
		Cleanup
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	UI struct {
		TemplatesPath string // empty means the embedded templates
		StaticPath    string
	}
	Pagination struct {
		DefaultSize int
		MaxSize     int
	}
	Logging struct {
		Level          string
		Format         string
		File           string
		FileMaxSizeMB  int
		FileMaxBackups int
		FileMaxAgeDays int
	}
	Seed struct {
		File string
	}
	ReadOnly struct {
		Enabled bool // blocks every write request
	}
	Admin struct {
		Username     string
		PasswordHash string // bcrypt; empty disables admin protection
	}
	Sessions struct {
		Lifetime      time.Duration
		SecureCookies bool // set to false for local dev without HTTPS
	}
	CSRF struct {
		Enabled bool
		Secret  string // hex encoded, generated when empty
	}
	CORS struct {
		AllowedOrigins []string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Cleanup struct {
		ScheduleEnabled bool
		Schedule        string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

// loadDotEnv populates the environment from path when the file exists.
// Variables already set in the environment win.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "path", path, "error", err)
	}
}

func NewConfig() *Config {
	loadDotEnv(".env")

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "./static")
	v.SetDefault("page_size_default", DefaultPageSize)
	v.SetDefault("page_size_max", MaxPageSize)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
	v.SetDefault("log_file_max_size_mb", 50)
	v.SetDefault("log_file_max_backups", 3)
	v.SetDefault("log_file_max_age_days", 28)

	v.SetDefault("seed_file", DefaultSeedFile)
	v.SetDefault("read_only", false)

	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password_hash", "")

	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("csrf_enabled", true)
	v.SetDefault("csrf_secret", "") // Auto-generated if empty
	v.SetDefault("cors_allowed_origins", "*")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("cleanup_schedule_enabled", true)
	v.SetDefault("cleanup_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Pagination: Pagination{
			DefaultSize: v.GetInt("PAGE_SIZE_DEFAULT"),
			MaxSize:     v.GetInt("PAGE_SIZE_MAX"),
		},
		Logging: Logging{
			Level:          v.GetString("LOG_LEVEL"),
			Format:         v.GetString("LOG_FORMAT"),
			File:           v.GetString("LOG_FILE"),
			FileMaxSizeMB:  v.GetInt("LOG_FILE_MAX_SIZE_MB"),
			FileMaxBackups: v.GetInt("LOG_FILE_MAX_BACKUPS"),
			FileMaxAgeDays: v.GetInt("LOG_FILE_MAX_AGE_DAYS"),
		},
		Seed: Seed{
			File: v.GetString("SEED_FILE"),
		},
		ReadOnly: ReadOnly{
			Enabled: v.GetBool("READ_ONLY"),
		},
		Admin: Admin{
			Username:     v.GetString("ADMIN_USERNAME"),
			PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		},
		Sessions: Sessions{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		CSRF: CSRF{
			Enabled: v.GetBool("CSRF_ENABLED"),
			Secret:  v.GetString("CSRF_SECRET"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Cleanup: Cleanup{
			ScheduleEnabled: v.GetBool("CLEANUP_SCHEDULE_ENABLED"),
			Schedule:        v.GetString("CLEANUP_SCHEDULE"),
		},
	}
}

// splitList parses a comma separated value, dropping empty entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
