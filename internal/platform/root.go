package platform

import (
	"os"

	"github.com/aretw0/hbnb/pkg/storage"
)

// EnvFile names the environment variable that overrides the default backing file.
const EnvFile = "HBNB_FILE"

// ResolvePath determines the backing file: the explicit path if given,
// then $HBNB_FILE, then storage.DefaultPath.
func ResolvePath(userPath string) string {
	if userPath != "" {
		return userPath
	}
	if env := os.Getenv(EnvFile); env != "" {
		return env
	}
	return storage.DefaultPath
}
