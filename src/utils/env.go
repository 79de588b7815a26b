package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

func InitEnvironmentVariables(projectsDir string, goEnv string) error {
	// Hosted environments inject their configuration directly and carry no
	// .env files
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	envDir := filepath.Join(projectsDir, "optrack", "src")

	envFile := filepath.Join(envDir, DEV_ENV_FILENAME)
	if goEnv == "production" {
		envFile = filepath.Join(envDir, PROD_ENV_FILENAME)
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	return nil
}

func GetEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("environment variable %s not set", name)
	}

	return value, nil
}
