package clio

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rotisserie/eris"
)

// Credentials is the OAuth token pair shared by every request the client
// issues. Token refresh is the only code path that mutates it.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether no usable token is present.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// TokenStore persists the credential pair across process restarts. Load is
// called at client construction when no in-memory tokens were supplied;
// Save is called after every successful refresh or code exchange.
type TokenStore interface {
	Load() (Credentials, error)
	Save(Credentials) error
}

// fileTokenStore keeps the token pair in a small JSON file.
type fileTokenStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTokenStore returns a TokenStore backed by a JSON file at path.
func NewFileTokenStore(path string) TokenStore {
	return &fileTokenStore{path: path}
}

func (s *fileTokenStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, eris.Wrap(err, "clio: read token cache")
	}

	var cred Credentials
	if err := json.Unmarshal(data, &cred); err != nil {
		return Credentials{}, eris.Wrap(err, "clio: parse token cache")
	}
	return cred, nil
}

func (s *fileTokenStore) Save(cred Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return eris.Wrap(err, "clio: encode token cache")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return eris.Wrap(err, "clio: write token cache")
	}
	return nil
}
