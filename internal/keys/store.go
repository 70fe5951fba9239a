// Package keys stores the bearer token presented to the generation webhook.
package keys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mithrel/pressgen/internal/config"
)

// TokenStore provides access to named secrets.
type TokenStore interface {
	Get(id string) (string, error)
	Put(id, token string) error
	Delete(id string) error
}

var ErrTokenNotFound = errors.New("token not found")

// WebhookTokenID names the webhook token inside a TokenStore.
const WebhookTokenID = "webhook"

// ConfigStore keeps tokens in Viper under "<id>.token". When Persist is set,
// writes are flushed to the config file in use.
type ConfigStore struct {
	V       *viper.Viper
	Persist bool
}

func (s *ConfigStore) Get(id string) (string, error) {
	if s == nil || s.V == nil {
		return "", ErrTokenNotFound
	}
	val := strings.TrimSpace(s.V.GetString(id + ".token"))
	if val == "" {
		return "", ErrTokenNotFound
	}
	return val, nil
}

func (s *ConfigStore) Put(id, token string) error {
	s.V.Set(id+".token", token)
	return s.flush(id+".token", token)
}

func (s *ConfigStore) Delete(id string) error {
	if s == nil || s.V == nil {
		return nil
	}
	s.V.Set(id+".token", "")
	return s.flush(id+".token", "")
}

// flush writes only key to the config file. Settings that came from the
// environment, .env or defaults stay out of the file.
func (s *ConfigStore) flush(key, val string) error {
	if !s.Persist {
		return nil
	}
	path := s.V.ConfigFileUsed()
	if path == "" {
		return errors.New("no config file in use; run `pressgen config generate` first")
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext != "toml" && ext != "" {
		// Other formats cannot keep comments; rewrite from the file alone.
		file := viper.New()
		file.SetConfigFile(path)
		if err := file.ReadInConfig(); err != nil {
			return err
		}
		file.Set(key, val)
		return file.WriteConfig()
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	out, err := config.SetTOMLValue(string(data), key, val)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	mode := os.FileMode(0o600)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(out), mode)
}

// ForProvider returns the store selected by webhook.token_provider.
func ForProvider(v *viper.Viper, persist bool) (TokenStore, error) {
	switch p := v.GetString("webhook.token_provider"); p {
	case "", "config":
		return &ConfigStore{V: v, Persist: persist}, nil
	case "keyring":
		return &KeyringStore{}, nil
	default:
		return nil, fmt.Errorf("unknown token provider %q", p)
	}
}

// WebhookToken resolves the configured webhook token. A missing token is not
// an error; the webhook is then called without Authorization.
func WebhookToken(v *viper.Viper) (string, error) {
	store, err := ForProvider(v, false)
	if err != nil {
		return "", err
	}
	tok, err := store.Get(WebhookTokenID)
	if errors.Is(err, ErrTokenNotFound) {
		return "", nil
	}
	return tok, err
}
