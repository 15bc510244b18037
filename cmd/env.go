package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/warpdl/autoclaim/common"
)

// loadEnvFiles loads .env files in priority order:
// $AUTOCLAIM_ENV_FILE alone when set, otherwise .env.local then .env.
// Variables already present in the environment are never overridden, so the
// first file to define a variable wins. Missing files are not an error.
func loadEnvFiles() error {
	if envFile := os.Getenv(common.EnvFileEnv); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}
