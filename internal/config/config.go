package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	JWTSecret      string
	DataDir        string
	UploadDir      string
	StaticDir      string
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 6 << 20 // 6 MiB

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, using environment defaults")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./public/images"
	}

	maxUpload := int64(defaultMaxUploadBytes)
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxUpload = n
		}
	}

	return Config{
		Port:           port,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		DataDir:        dataDir,
		UploadDir:      uploadDir,
		StaticDir:      os.Getenv("STATIC_DIR"),
		MaxUploadBytes: maxUpload,
	}
}
