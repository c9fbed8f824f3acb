package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/env"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN"      required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"          required:"true"`
	BackendRootPath string            `env:"BACKEND_ROOT_PATH" required:"false"`
	HttpPort        string            `env:"HTTP_PORT"         env-default:"4005"`
	AppURL          string            `env:"APP_URL"           env-default:"http://localhost:3000"`
	JwtSecret       string            `env:"JWT_SECRET"        required:"true"`
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"     required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"     required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME" required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   env-default:"false"`
	// smtp, email notifications are disabled when host is empty
	SmtpHost     string `env:"SMTP_HOST"      required:"false"`
	SmtpPort     string `env:"SMTP_PORT"      env-default:"587"`
	SmtpUsername string `env:"SMTP_USERNAME"  required:"false"`
	SmtpPassword string `env:"SMTP_PASSWORD"  required:"false"`
	SmtpFrom     string `env:"SMTP_FROM"      required:"false"`
	SmtpFromName string `env:"SMTP_FROM_NAME" env-default:"Sketchflow"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded {
		// variables may come straight from the environment (containers, CI)
		log.Warn("No .env file found, reading configuration from process environment")
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	if env.BackendRootPath == "" {
		env.BackendRootPath = backendRoot
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if len(env.JwtSecret) < 32 && env.EnvMode == env_utils.EnvModeProduction {
		log.Error("JWT_SECRET must be at least 32 characters in production")
		os.Exit(1)
	}

	if env.ValkeyHost == "" {
		log.Error("VALKEY_HOST is empty")
		os.Exit(1)
	}
	if env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty")
		os.Exit(1)
	}

	if env.SmtpHost == "" {
		log.Info("SMTP_HOST is empty, invitation emails are disabled")
	}

	log.Info("Environment variables loaded successfully!")
}

func (e EnvVariables) MigrationsPath() string {
	return filepath.Join(e.BackendRootPath, "migrations")
}
