package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < .env < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was provided upstream it takes precedence; these
	// search paths are fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "pressgen"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pressgen"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && v.ConfigFileUsed() != "" {
			if _, statErr := os.Stat(v.ConfigFileUsed()); statErr == nil {
				return fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
			}
		}
	}

	// .env never overrides variables already set in the process environment.
	_ = godotenv.Load()

	// Environment variables: PRESSGEN_* (highest among these sources)
	v.SetEnvPrefix("pressgen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return nil
}

// defaultDataDir resolves $XDG_DATA_HOME/pressgen or ~/.local/share/pressgen.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "pressgen")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "pressgen")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "pressgen", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// It is the single source for defaults and for the generated config file.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; history DB is data_dir/pressgen.db"},
		{Key: "db_url", Default: "", Comment: "History store DSN (sqlite://path or mem://); empty uses data_dir"},
		{Key: "http_addr", Default: ":8501", Comment: "Listen address for the web front end"},

		{Key: "webhook.url", Default: "", Comment: "AI generation webhook; empty means always use the fallback template"},
		{Key: "webhook.timeout", Default: "30s", Comment: "Timeout for the single webhook call (no retries)"},
		{Key: "webhook.debug", Default: false, Comment: "Record raw webhook responses and log at debug level"},
		{Key: "webhook.token", Default: "", Comment: "Bearer token sent to the webhook (token_provider = config)"},
		{Key: "webhook.token_provider", Default: "config", Comment: "Where the webhook token lives: config | keyring"},

		{Key: "format.escape_html", Default: false, Comment: "HTML-escape text before wrapping it in styled spans"},

		{Key: "auth.token", Default: "", Comment: "Bearer token required by /api routes; empty disables auth"},

		{Key: "tls.domain", Default: "", Comment: "Serve HTTPS with an automatic certificate for this domain"},
		{Key: "tls.email", Default: "", Comment: "ACME account email for automatic certificates"},
		{Key: "tls.cert_file", Default: "", Comment: "PEM certificate for HTTPS (with tls.key_file)"},
		{Key: "tls.key_file", Default: "", Comment: "PEM private key for HTTPS"},
		{Key: "tls.http3", Default: false, Comment: "Also serve HTTP/3 over QUIC when TLS is enabled"},

		{Key: "history.limit", Default: 50, Comment: "Default number of records shown by history list"},
	}
}

// ResolveDBPath returns the sqlite history file under data_dir.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "pressgen.db")
}

// ResolveDBURL returns db_url, or a sqlite DSN under data_dir when unset.
func ResolveDBURL(v *viper.Viper) string {
	if dsn := strings.TrimSpace(v.GetString("db_url")); dsn != "" {
		return dsn
	}
	return "sqlite://" + ResolveDBPath(v)
}

// CheckConfigValidity reports every problem found in v.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if raw := strings.TrimSpace(v.GetString("webhook.url")); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("webhook.url must be an absolute http(s) url"))
		}
	}
	if v.GetDuration("webhook.timeout") <= 0 {
		errs = append(errs, errors.New("webhook.timeout must be greater than 0"))
	}
	switch p := v.GetString("webhook.token_provider"); p {
	case "", "config", "keyring":
	default:
		errs = append(errs, fmt.Errorf("webhook.token_provider must be config or keyring, got %q", p))
	}
	if v.GetInt("history.limit") <= 0 {
		errs = append(errs, errors.New("history.limit must be greater than 0"))
	}
	domain := strings.TrimSpace(v.GetString("tls.domain"))
	cert := strings.TrimSpace(v.GetString("tls.cert_file"))
	key := strings.TrimSpace(v.GetString("tls.key_file"))
	if (cert == "") != (key == "") {
		errs = append(errs, errors.New("tls.cert_file and tls.key_file must be set together"))
	}
	if domain != "" && cert != "" {
		errs = append(errs, errors.New("tls.domain and tls.cert_file are mutually exclusive"))
	}
	if v.GetBool("tls.http3") && domain == "" && cert == "" {
		errs = append(errs, errors.New("tls.http3 requires tls.domain or tls.cert_file"))
	}
	return errors.Join(errs...)
}
