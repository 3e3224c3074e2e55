package facts

import (
	"os"
	"os/user"
)

// UserFacts contains current user information
type UserFacts struct {
	Name string // Current username
	Home string // Home directory
}

// gatherUserFacts collects user-related facts
func gatherUserFacts() (UserFacts, error) {
	currentUser, err := user.Current()
	if err != nil {
		// Fall back to environment variables
		facts := UserFacts{Name: os.Getenv("USER")}
		if facts.Name == "" {
			facts.Name = "unknown"
		}
		facts.Home, _ = os.UserHomeDir()
		return facts, nil
	}

	return UserFacts{
		Name: currentUser.Username,
		Home: currentUser.HomeDir,
	}, nil
}
