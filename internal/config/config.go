package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/jrsteele09/go-cognito-bridge/identity"
	apperrors "github.com/jrsteele09/go-cognito-bridge/internal/errors"
	"github.com/pkg/errors"
)

// Environment variable names, also usable as LoadWithOverrides keys.
const (
	EnvUserPoolID   = "COGNITO_USER_POOL_ID"
	EnvClientID     = "COGNITO_CLIENT_ID"
	EnvClientSecret = "COGNITO_CLIENT_SECRET"
	EnvRegion       = "COGNITO_REGION"
	EnvEndpoint     = "COGNITO_ENDPOINT"
	EnvLogLevel     = "LOG_LEVEL"

	EnvKeychainDir        = "COGNITO_KEYCHAIN_DIR"
	EnvKeychainPassphrase = "COGNITO_KEYCHAIN_PASSPHRASE"
	EnvRedisAddr          = "COGNITO_REDIS_ADDR"
)

type Config interface {
	EnvConfig
	PoolConfig
	KeychainConfig
}

type PoolConfig interface {
	GetUserPoolID() string
	GetClientID() string
	GetClientSecret() string
	GetRegion() identity.Region
	GetEndpoint() string
	GetVerifyIDToken() bool
}

type KeychainConfig interface {
	GetKeychainDir() string
	GetKeychainPassphrase() string
	GetRedisAddr() string
}

type mainConfig struct {
	EnvVars
	Pool
	Keychain
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return LoadWithOverrides(nil)
}

// LoadWithOverrides reads the environment with overrides taking precedence,
// e.g. values given as command line flags. Empty override values are ignored.
func LoadWithOverrides(overrides map[string]string) (Config, error) {
	environment := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environment[k] = v
		}
	}
	for k, v := range overrides {
		if v != "" {
			environment[k] = v
		}
	}

	c := mainConfig{}
	if err := env.ParseWithOptions(&c, env.Options{Environment: environment}); err != nil {
		return nil, errors.Wrap(err, "[config.LoadWithOverrides] env.ParseWithOptions")
	}
	if err := c.Pool.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Pool holds the user pool settings.
type Pool struct {
	UserPoolID    string `env:"COGNITO_USER_POOL_ID"`
	ClientID      string `env:"COGNITO_CLIENT_ID"`
	ClientSecret  string `env:"COGNITO_CLIENT_SECRET"`
	Region        string `env:"COGNITO_REGION"`
	Endpoint      string `env:"COGNITO_ENDPOINT"`
	VerifyIDToken bool   `env:"COGNITO_VERIFY_ID_TOKEN" envDefault:"false"`
}

var _ PoolConfig = Pool{}

func (p Pool) validate() error {
	if strings.TrimSpace(p.UserPoolID) == "" {
		return apperrors.ErrMissingUserPoolID
	}
	if strings.TrimSpace(p.ClientID) == "" {
		return apperrors.ErrMissingClientID
	}
	return nil
}

func (p Pool) GetUserPoolID() string   { return p.UserPoolID }
func (p Pool) GetClientID() string     { return p.ClientID }
func (p Pool) GetClientSecret() string { return p.ClientSecret }
func (p Pool) GetEndpoint() string     { return p.Endpoint }
func (p Pool) GetVerifyIDToken() bool  { return p.VerifyIDToken }

// GetRegion falls back to identity.DefaultRegion for empty or unknown values.
func (p Pool) GetRegion() identity.Region {
	return identity.ParseRegion(p.Region)
}

// Keychain holds the token persistence settings.
type Keychain struct {
	Dir        string `env:"COGNITO_KEYCHAIN_DIR" envDefault:"./data/keychain"`
	Passphrase string `env:"COGNITO_KEYCHAIN_PASSPHRASE"`
	RedisAddr  string `env:"COGNITO_REDIS_ADDR"`
}

var _ KeychainConfig = Keychain{}

func (k Keychain) GetKeychainDir() string        { return k.Dir }
func (k Keychain) GetKeychainPassphrase() string { return k.Passphrase }
func (k Keychain) GetRedisAddr() string          { return k.RedisAddr }
