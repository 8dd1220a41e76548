package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvFile names a dotenv file to load instead of .env.
const EnvFile = "ENV_FILE"

// LoadDotEnv populates the process environment from a dotenv file: the one
// named by ENV_FILE, or .env in the working directory. Variables already set
// are left alone. A missing file is not an error.
func LoadDotEnv() error {
	path := os.Getenv(EnvFile)
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
