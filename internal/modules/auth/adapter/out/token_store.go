package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"kqtrainer/internal/modules/auth/domain"
	authout "kqtrainer/internal/modules/auth/port/out"
)

// FileTokenStore keeps the access token in a 0600 file under the state dir.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) authout.TokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(_ context.Context, token domain.StoredToken) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	b, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Load(_ context.Context) (domain.StoredToken, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return domain.StoredToken{}, err
	}
	var token domain.StoredToken
	if err := json.Unmarshal(b, &token); err != nil {
		return domain.StoredToken{}, fmt.Errorf("decode token file: %w", err)
	}
	return token, nil
}

func (s *FileTokenStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
