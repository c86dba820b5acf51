package main

import (
	"os"
	"strings"
)

// Config collects the handful of environment knobs the server needs. A .env
// file, if present, is loaded into the environment before this runs.
type Config struct {
	Port        string
	DSN         string
	AutoMigrate bool
	UploadBase  string
}

func loadConfig() Config {
	return Config{
		Port:        getEnv("PORT", "8081"),
		DSN:         os.Getenv("DB_DSN"),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		UploadBase:  getEnv("UPLOAD_BASE", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "":
		return fallback
	case "false", "0", "no":
		return false
	}
	return true
}
