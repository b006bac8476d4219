package utils

import (
	"os"
	"os/user"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// Identity returns user@host for audit entries, or whichever half is known.
func Identity() string {
	name, err := GetUsername()
	if err != nil {
		name = os.Getenv("USER")
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return name
	}
	if name == "" {
		return host
	}
	return name + "@" + host
}
