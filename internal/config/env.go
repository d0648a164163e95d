package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// APIKeyEnv is the environment variable holding the OpenAI API key.
const APIKeyEnv = "OPENAI_API_KEY"

// LoadDotEnv loads variables from a .env file without overriding variables
// already set in the environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// APIKey returns the API key from the environment.
func APIKey() string {
	return os.Getenv(APIKeyEnv)
}
