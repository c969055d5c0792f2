package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDSN     string
	UploadDir string
	LogFile   string
}

func Load() Config {
	// .env is optional; real deployments use the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[warn] could not load .env: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "campusmart.db"
	} // sqlite file in project root
	uploads := os.Getenv("UPLOAD_DIR")
	if uploads == "" {
		// Image files land here via the external storage collaborator; the
		// app only serves previously stored paths.
		uploads = "./uploads"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./campusmart.log"
	}

	cfg := Config{Port: port, DBDSN: dsn, UploadDir: uploads, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s UPLOAD_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.UploadDir, cfg.LogFile)
	return cfg
}
