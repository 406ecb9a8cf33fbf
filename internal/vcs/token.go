package vcs

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// LoadToken reads a cached access token. A missing file is not an error;
// the caller falls back to anonymous requests.
func LoadToken(path string) (*oauth2.Token, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(b, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	return &token, nil
}

func SaveToken(path string, token *oauth2.Token) error {
	b, err := json.Marshal(token)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, b, 0600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}
