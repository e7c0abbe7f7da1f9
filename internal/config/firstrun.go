package config

import (
	"os"
)

// IsFirstRun reports whether no configuration file exists yet at path.
// An empty path checks the global config file.
func IsFirstRun(path string) bool {
	if path == "" {
		path = ConfigPath()
	}
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}
