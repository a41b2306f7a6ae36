package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// BaseConfig is the process configuration. New seeds it from the
// environment, then the go-config container layers file overrides on top
// before Validate runs. Signing keys are required; the process refuses to
// start without them rather than failing per request later.
type BaseConfig struct {
	App         App         `json:"app"`
	Auth        Auth        `json:"auth"`
	Persistence Persistence `json:"persistence"`
}

type App struct {
	Port string `json:"port"`
}

type Auth struct {
	UserSigningKey  string `json:"user_signing_key"`
	AdminSigningKey string `json:"admin_signing_key"`
	TokenExpiration int    `json:"token_expiration"`
	TokenLookup     string `json:"token_lookup"`
	AuthScheme      string `json:"auth_scheme"`
	ContextKey      string `json:"context_key"`
}

type Persistence struct {
	Driver                string `json:"driver"`
	Server                string `json:"server"`
	Database              string `json:"database"`
	DSN                   string `json:"dsn"`
	Debug                 bool   `json:"debug"`
	PingTimeoutExpression string `json:"ping_timeout"`
	OtelIdentifier        string `json:"otel_identifier"`
}

// New builds the configuration defaults from the environment. PORT,
// DATABASE_DSN, DEBUG, JWT_USER_PASSWORD, JWT_ADMIN_PASSWORD, and
// TOKEN_EXPIRATION_HOURS keep their original meaning.
func New() (*BaseConfig, error) {
	cfg := &BaseConfig{
		App: App{
			Port: envOrDefault("PORT", "3000"),
		},
		Auth: Auth{
			UserSigningKey:  os.Getenv("JWT_USER_PASSWORD"),
			AdminSigningKey: os.Getenv("JWT_ADMIN_PASSWORD"),
			TokenLookup:     "header:Authorization,header:token",
			AuthScheme:      "Bearer",
			ContextKey:      "principal",
		},
		Persistence: Persistence{
			Driver:                "sqlite",
			Server:                "file",
			Database:              "courses.db",
			DSN:                   envOrDefault("DATABASE_DSN", "file:courses.db?cache=shared"),
			Debug:                 os.Getenv("DEBUG") == "true",
			PingTimeoutExpression: "5s",
			OtelIdentifier:        "coursesd",
		},
	}

	if raw := os.Getenv("TOKEN_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_EXPIRATION_HOURS is not a number: %w", err)
		}
		cfg.Auth.TokenExpiration = hours
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func (c BaseConfig) Validate() error {
	if c.Auth.UserSigningKey == "" {
		return fmt.Errorf("JWT_USER_PASSWORD is missing in environment variables")
	}

	if c.Auth.AdminSigningKey == "" {
		return fmt.Errorf("JWT_ADMIN_PASSWORD is missing in environment variables")
	}

	return nil
}

func (c *BaseConfig) GetApp() *App                 { return &c.App }
func (c *BaseConfig) GetAuth() *Auth               { return &c.Auth }
func (c *BaseConfig) GetPersistence() *Persistence { return &c.Persistence }

func (a App) GetPort() string { return a.Port }

func (a *Auth) GetUserSigningKey() string  { return a.UserSigningKey }
func (a *Auth) GetAdminSigningKey() string { return a.AdminSigningKey }
func (a *Auth) GetTokenExpiration() int    { return a.TokenExpiration }
func (a *Auth) GetTokenLookup() string     { return a.TokenLookup }
func (a *Auth) GetAuthScheme() string      { return a.AuthScheme }
func (a *Auth) GetContextKey() string      { return a.ContextKey }

func (p *Persistence) GetDriver() string   { return p.Driver }
func (p *Persistence) GetServer() string   { return p.Server }
func (p *Persistence) GetDatabase() string { return p.Database }
func (p *Persistence) GetDSN() string      { return p.DSN }
func (p *Persistence) GetDebug() bool      { return p.Debug }

func (p *Persistence) GetOtelIdentifier() string { return p.OtelIdentifier }

func (p *Persistence) GetPingTimeout() time.Duration {
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}
