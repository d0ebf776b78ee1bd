package initializers

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env into the process environment. A missing file is fine:
// production passes real environment variables.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
}
