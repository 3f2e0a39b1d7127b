package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	UploadDir   string
}

// Load reads configuration from the environment. DatabaseURL has no
// default on purpose; cmd/app fails fast when it is missing.
func Load() Config {
	addr := os.Getenv("SAWMILL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	uploadDir := os.Getenv("SAWMILL_UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		UploadDir:   uploadDir,
	}
}
