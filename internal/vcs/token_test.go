package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	require.NoError(t, SaveToken(path, &oauth2.Token{AccessToken: "sekrit", TokenType: "Bearer"}))

	token, err := LoadToken(path)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "sekrit", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
}

func TestLoadToken_MissingIsAnonymous(t *testing.T) {
	token, err := LoadToken(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestLoadToken_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := LoadToken(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token")
}
