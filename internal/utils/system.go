package utils

import (
	"os"
	"os/user"
)

// GetUsername returns the current username. The USER environment variable is
// used when the account database cannot be read, as in some containers.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		if name := os.Getenv("USER"); name != "" {
			return name, nil
		}
		return "", err
	}
	return u.Username, nil
}
