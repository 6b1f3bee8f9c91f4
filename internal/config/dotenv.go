package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/doccbuilder/internal/logfields"
)

// envFiles are tried in order; the first one that exists is loaded.
var envFiles = []string{".env", ".env.local"}

// LoadEnvFile loads the first existing .env file in dir into the process
// environment without overriding variables that are already set. It returns
// the loaded path, or "" when none exists.
func LoadEnvFile(dir string) (string, error) {
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", err
		}
		slog.Debug("Loaded environment file", logfields.Path(p))
		return p, nil
	}
	return "", nil
}
