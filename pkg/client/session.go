package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Session is the persisted CLI identity
type Session struct {
	BaseURL       string    `yaml:"base_url"`
	WalletAddress string    `yaml:"wallet_address"`
	UserID        string    `yaml:"user_id,omitempty"`
	ConnectedAt   time.Time `yaml:"connected_at"`
}

// SessionStore keeps a Session in a YAML file
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath is ~/.localtrade/session.yaml
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".localtrade", "session.yaml")
	}
	return filepath.Join(home, ".localtrade", "session.yaml")
}

func (s *SessionStore) Path() string {
	return s.path
}

// Load returns nil without error when no session has been saved
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	return &sess, nil
}

func (s *SessionStore) Save(sess *Session) error {
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Connect registers the wallet with the server and persists the session.
// The server's normalized address becomes the client identity.
func (s *SessionStore) Connect(ctx context.Context, c *Client, address string) (*Session, error) {
	user, err := c.Connect(ctx, address)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		BaseURL:       c.baseURL,
		WalletAddress: user.WalletAddress,
		UserID:        user.ID.String(),
		ConnectedAt:   time.Now().UTC(),
	}
	c.SetWalletAddress(sess.WalletAddress)
	if err := s.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Disconnect removes the session file. A missing file is not an error.
func (s *SessionStore) Disconnect() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
