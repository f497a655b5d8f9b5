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

const (
	AuthModeFirebase = "firebase"
	AuthModeLocal    = "local"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		CORSOrigins     []string
	}

	AuthConfig struct {
		Mode            string // firebase | local
		LocalSigningKey string
		LocalTokenTTL   time.Duration
	}

	FirebaseConfig struct {
		ProjectID       string
		CredentialsFile string
		StorageBucket   string
	}

	ExpoConfig struct {
		AccessToken string
		BaseURL     string
		Timeout     time.Duration
	}

	Config struct {
		Env      string
		Build    string
		AppName  string
		Debug    bool
		TestMode bool

		Server   ServerConfig
		Auth     AuthConfig
		Firebase FirebaseConfig
		Expo     ExpoConfig

		RollbarToken     string
		SendgridApiKey   string
		defaultFromEmail string
	}
)

// NewConfig reads the environment (and config/.env.<env> if it exists) into a Config.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Festify")
	v.SetDefault("defaultFromEmail", "Festify <noreply@localhost>")
	v.SetDefault("server_address", ":8000")
	v.SetDefault("server_debugHost", ":4000")
	v.SetDefault("server_shutdownTimeout", 5*time.Second)
	v.SetDefault("server_corsOrigins", []string{"*"})
	v.SetDefault("auth_mode", AuthModeLocal)
	v.SetDefault("auth_localSigningKey", "x7#q!p2z$9fe1c@rk0w^m5hv&3nd8ts6")
	v.SetDefault("auth_localTokenTTL", 24*time.Hour)
	v.SetDefault("expo_baseURL", "https://exp.host")
	v.SetDefault("expo_timeout", 10*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	host, _ := os.Hostname()
	return &Config{
		Env:      env,
		Build:    v.GetString("build"),
		AppName:  v.GetString("appName"),
		Debug:    v.GetBool("debug"),
		TestMode: v.GetBool("testMode"),
		Server: ServerConfig{
			Host:            host,
			Address:         v.GetString("server_address"),
			DebugHost:       v.GetString("server_debugHost"),
			ShutdownTimeout: v.GetDuration("server_shutdownTimeout"),
			CORSOrigins:     v.GetStringSlice("server_corsOrigins"),
		},
		Auth: AuthConfig{
			Mode:            strings.ToLower(v.GetString("auth_mode")),
			LocalSigningKey: v.GetString("auth_localSigningKey"),
			LocalTokenTTL:   v.GetDuration("auth_localTokenTTL"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       v.GetString("firebase_projectID"),
			CredentialsFile: v.GetString("firebase_credentialsFile"),
			StorageBucket:   v.GetString("firebase_storageBucket"),
		},
		Expo: ExpoConfig{
			AccessToken: v.GetString("expo_accessToken"),
			BaseURL:     v.GetString("expo_baseURL"),
			Timeout:     v.GetDuration("expo_timeout"),
		},
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		defaultFromEmail: v.GetString("defaultFromEmail"),
	}
}

// NewTestConfig returns a Config suitable for tests, without reading the environment.
func NewTestConfig() *Config {
	return &Config{
		Env:      "TEST",
		Build:    "test",
		AppName:  "Festify",
		Debug:    true,
		TestMode: true,
		Server: ServerConfig{
			Address:         ":0",
			ShutdownTimeout: time.Second,
			CORSOrigins:     []string{"*"},
		},
		Auth: AuthConfig{
			Mode:            AuthModeLocal,
			LocalSigningKey: "test-signing-key",
			LocalTokenTTL:   time.Hour,
		},
		Firebase:         FirebaseConfig{StorageBucket: "festify-test.appspot.com"},
		defaultFromEmail: "Festify <noreply@localhost>",
	}
}

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
	}
	return *addr
}

func (c *Config) IsLocal() bool {
	return c.Auth.Mode != AuthModeFirebase
}
