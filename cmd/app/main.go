package main

import (
	"log"
	"os"

	"github.com/andreyxaxa/Media-Pipeline/config"
	"github.com/andreyxaxa/Media-Pipeline/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	// Config: ENV_FILE points at a dotenv file, .env in the working dir otherwise
	envFile, explicit := os.LookupEnv("ENV_FILE")
	if !explicit {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); err == nil || explicit {
		// variables already set in the environment win over the file
		if err := godotenv.Load(envFile); err != nil {
			log.Fatalf("config error: load %s: %s", envFile, err)
		}
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("config error: %s", err)
	}

	// Run
	app.Run(cfg)
}
