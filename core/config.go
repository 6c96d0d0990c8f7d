package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine  string // mongodb | memory
		URL     string
		Name    string
		Timeout time.Duration
	}

	// AdminConfig holds the static demo credential accepted by /admin/login.
	AdminConfig struct {
		Username string
		Password string
		Token    string
		Name     string
	}

	Config struct {
		Env      string // DEV (local; default), TEST, QA, PROD
		Build    string
		Debug    bool
		TestMode bool
		AppName  string

		Server   ServerConfig
		Database DatabaseConfig
		Admin    AdminConfig

		RollbarToken     string
		SendgridApiKey   string
		defaultFromEmail string
	}
)

const (
	EngineMongo  = "mongodb"
	EngineMemory = "memory"
)

// NewConfig reads the configuration from the environment (and an optional config/.env.<env> file).
func NewConfig() *Config {
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", env == "DEV" || env == "TEST")
	v.SetDefault("build", "develop")
	v.SetDefault("app.name", "Emel Laboratory School & Arojbegi Laboratory College")
	v.SetDefault("default.from.email", "Admissions <noreply@localhost>")
	v.SetDefault("rollbar.token", "")
	v.SetDefault("sendgrid.api.key", "")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debug.host", ":4000")
	v.SetDefault("server.shutdown.timeout", 10*time.Second)

	v.SetDefault("database.engine", EngineMongo)
	v.SetDefault("database.url", "mongodb://localhost:27017")
	v.SetDefault("database.name", "school_college_db")
	v.SetDefault("database.timeout", 10*time.Second)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("admin.token", "demo-token")
	v.SetDefault("admin.name", "Administrator")

	// database.url <- DATABASE_URL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		Env:      env,
		Build:    v.GetString("build"),
		Debug:    v.GetBool("debug"),
		TestMode: env == "TEST",
		AppName:  v.GetString("app.name"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debug.host"),
			ShutdownTimeout: v.GetDuration("server.shutdown.timeout"),
		},
		Database: DatabaseConfig{
			Engine:  strings.ToLower(v.GetString("database.engine")),
			URL:     v.GetString("database.url"),
			Name:    v.GetString("database.name"),
			Timeout: v.GetDuration("database.timeout"),
		},
		Admin: AdminConfig{
			Username: v.GetString("admin.username"),
			Password: v.GetString("admin.password"),
			Token:    v.GetString("admin.token"),
			Name:     v.GetString("admin.name"),
		},
		RollbarToken:     v.GetString("rollbar.token"),
		SendgridApiKey:   v.GetString("sendgrid.api.key"),
		defaultFromEmail: v.GetString("default.from.email"),
	}
}

func (conf *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(conf.defaultFromEmail)
	if err != nil {
		return mail.Address{Address: conf.defaultFromEmail}
	}
	return *addr
}

// NewTestConfig returns the configuration used by tests: in-memory store and debug mode.
func NewTestConfig() *Config {
	conf := newConfig(viper.New())
	conf.Env = "TEST"
	conf.TestMode = true
	conf.Debug = true
	conf.Database.Engine = EngineMemory
	return conf
}
