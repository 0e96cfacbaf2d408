package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

// SessionUser is the identity the tokens were issued for.
type SessionUser struct {
	ID    string `json:"id"    yaml:"ID"`
	Email string `json:"email" yaml:"Email"`
}

type SessionTokenSet struct {
	AccessToken  string       `json:"access_token"  yaml:"AccessToken"`
	RefreshToken string       `json:"refresh_token" yaml:"RefreshToken"`
	ExpiresIn    int          `json:"expires_in"    yaml:"ExpiresIn"`
	ExpiresAt    int64        `json:"expires_at"    yaml:"ExpiresAt"`
	TokenType    string       `json:"token_type"    yaml:"TokenType"`
	User         *SessionUser `json:"user"          yaml:"User"`
}

// Expired reports whether the access token expires within buffer.
func (t *SessionTokenSet) Expired(now time.Time, buffer time.Duration) bool {
	if t == nil || t.ExpiresAt == 0 {
		return false
	}
	return now.Add(buffer).Unix() >= t.ExpiresAt
}

type Credentials struct {
	Tokens   *SessionTokenSet `yaml:"tokens"`
	APIKey   string           `yaml:"api_key"`
	AuthType string           `yaml:"auth_type"`
	log      *zerolog.Logger
}

const (
	ThreefAPIKeyVar = "THREEF_API_KEY"
	AuthTypeApiKey  = "api-key"
	AuthTypeBearer  = "bearer"
	ConfigDir       = ".threef"
	ConfigFile      = "session.yaml"
)

var ErrNoSession = errors.New("you are not logged in, try running threef login")

// New loads the stored session. A missing session is not an error: the
// returned Credentials simply carry no tokens.
func New(logger *zerolog.Logger) (*Credentials, error) {
	cfg := &Credentials{
		AuthType: AuthTypeBearer,
		log:      logger,
	}
	if key := os.Getenv(ThreefAPIKeyVar); key != "" {
		cfg.APIKey = key
		cfg.AuthType = AuthTypeApiKey
		return cfg, nil
	}

	path, err := Path()
	if err != nil {
		logger.Debug().Err(err).Msg("no home directory, continuing without a session")
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg.Tokens); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	if cfg.Tokens != nil && cfg.Tokens.AccessToken == "" {
		cfg.Tokens = nil
	}
	return cfg, nil
}

// LoggedIn reports whether a usable session is present.
func (c *Credentials) LoggedIn() bool {
	if c == nil {
		return false
	}
	if c.AuthType == AuthTypeApiKey {
		return c.APIKey != ""
	}
	return c.Tokens != nil && c.Tokens.AccessToken != ""
}

// UserID returns the session's user id or ErrNoSession.
func (c *Credentials) UserID() (string, error) {
	if !c.LoggedIn() || c.Tokens == nil || c.Tokens.User == nil || c.Tokens.User.ID == "" {
		return "", ErrNoSession
	}
	return c.Tokens.User.ID, nil
}

func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

func SaveCredentials(tokenSet *SessionTokenSet) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(tokenSet)
	if err != nil {
		return fmt.Errorf("marshal token set: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file %s to %s: %w", tmp, path, err)
	}
	return nil
}

// DeleteCredentials removes the stored session. Removing an absent file is not an error.
func DeleteCredentials() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}
