package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/svenschultze/generic-oauth2/pkg/client/rp"
)

const (
	// default port for the callback server to run
	DefaultPort = "9999"

	DefaultCallbackPath = "/auth/callback"
)

type Config struct {
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	// KeyPath points to a key.json for private_key_jwt client authentication.
	KeyPath string `yaml:"keyPath"`

	ResponseType         string            `yaml:"responseType"`
	Scopes               []string          `yaml:"scopes"`
	PAREndpoint          string            `yaml:"parEndpoint"`
	AuthorizationURL     string            `yaml:"authorizationUrl"`
	PKCE                 bool              `yaml:"pkce"`
	AdditionalParameters map[string]string `yaml:"additionalParameters"`

	Port         string        `yaml:"port"`
	CallbackPath string        `yaml:"callbackPath"`
	Timeout      time.Duration `yaml:"timeout"`
	LogsEnabled  bool          `yaml:"logsEnabled"`
	Debug        bool          `yaml:"debug"`
}

// Defaults returns the configuration used for values not set otherwise.
func Defaults() *Config {
	return &Config{
		ResponseType: "code",
		Scopes:       []string{"openid"},
		PKCE:         true,
		Port:         DefaultPort,
		CallbackPath: DefaultCallbackPath,
		Timeout:      10 * time.Second,
	}
}

// Load reads a YAML file over defaults.
func Load(path string, defaults *Config) (*Config, error) {
	cfg := *defaults
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// FromEnvVars loads configuration parameters from environment variables.
// If there is no such variable defined, then use default values.
func FromEnvVars(defaults *Config) (*Config, error) {
	if defaults == nil {
		defaults = &Config{}
	}
	cfg := *defaults
	if value, ok := os.LookupEnv("CLIENT_ID"); ok {
		cfg.ClientID = value
	}
	if value, ok := os.LookupEnv("CLIENT_SECRET"); ok {
		cfg.ClientSecret = value
	}
	if value, ok := os.LookupEnv("KEY_PATH"); ok {
		cfg.KeyPath = value
	}
	if value, ok := os.LookupEnv("SCOPES"); ok {
		cfg.Scopes = strings.Split(value, " ")
	}
	if value, ok := os.LookupEnv("PAR_ENDPOINT"); ok {
		cfg.PAREndpoint = value
	}
	if value, ok := os.LookupEnv("AUTHORIZATION_URL"); ok {
		cfg.AuthorizationURL = value
	}
	if value, ok := os.LookupEnv("PORT"); ok {
		cfg.Port = value
	}
	if value, ok := os.LookupEnv("PKCE"); ok {
		pkce, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid PKCE value: %w", err)
		}
		cfg.PKCE = pkce
	}
	if value, ok := os.LookupEnv("TIMEOUT"); ok {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEOUT value: %w", err)
		}
		cfg.Timeout = timeout
	}
	return &cfg, nil
}

func (c *Config) RedirectURL() string {
	return "http://localhost:" + c.Port + c.CallbackPath
}

// Options creates the options of a new authorization attempt.
func (c *Config) Options() *rp.OAuth2Options {
	return &rp.OAuth2Options{
		AppID:                c.ClientID,
		ResponseType:         c.ResponseType,
		RedirectURL:          c.RedirectURL(),
		Scope:                strings.Join(c.Scopes, " "),
		PAREndpoint:          c.PAREndpoint,
		PKCEEnabled:          c.PKCE,
		AdditionalParameters: c.AdditionalParameters,
		LogsEnabled:          c.LogsEnabled,
		AuthorizationBaseURL: c.AuthorizationURL,
	}
}

// RequesterOptions configures client authentication and the timeout.
func (c *Config) RequesterOptions() []rp.Option {
	options := []rp.Option{rp.WithTimeout(c.Timeout)}
	switch {
	case c.KeyPath != "":
		options = append(options, rp.WithJWTProfile(rp.SignerFromKeyPath(c.KeyPath)))
	case c.ClientSecret != "":
		options = append(options, rp.WithClientSecretBasic(c.ClientID, c.ClientSecret))
	}
	return options
}
