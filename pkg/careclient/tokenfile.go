package careclient

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileTokenStore keeps the access token in a local JSON file so the
// companion stays signed in across restarts. The token is cleared only by
// an explicit sign-out.
type FileTokenStore struct {
	path string
}

type tokenFileState struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// NewFileTokenStore stores the token at path, or under the user home
// directory when path is empty.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".lumi", "token.json")
	}
	return &FileTokenStore{path: path}, nil
}

// Token implements TokenSource. A missing file means no token yet, which
// is not an error.
func (s *FileTokenStore) Token() (string, error) {

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	var state tokenFileState
	if err := json.Unmarshal(data, &state); err != nil {
		return "", fmt.Errorf("failed to parse token file: %w", err)
	}

	return state.Token, nil
}

func (s *FileTokenStore) Save(token string) error {

	state := tokenFileState{
		Token:   token,
		SavedAt: time.Now(),
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode token state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

func (s *FileTokenStore) Clear() error {

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}

	return nil
}
