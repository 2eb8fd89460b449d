package clubgate

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log       LogConfig       `toml:"log"`
	Web       WebConfig       `toml:"web"`
	DB        DBConfig        `toml:"db"`
	Discord   DiscordConfig   `toml:"discord"`
	Braintree BraintreeConfig `toml:"braintree"`
	SendGrid  SendGridConfig  `toml:"sendgrid"`
	Claims    ClaimsConfig    `toml:"claims"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type WebConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	BaseURL      string `toml:"base_url"`
	AllowOrigins string `toml:"allow_origins"`
	GatewayKey   string `toml:"gateway_key"`
	AdminKey     string `toml:"admin_key"`
	SessionKey   string `toml:"session_key"`
	SuccessURL   string `toml:"success_url"`
	FailureURL   string `toml:"failure_url"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

// Enabled reports whether a persistence layer is configured at all. A
// deployment without one runs with the ledger and audit log disabled.
func (c DBConfig) Enabled() bool {
	return c.Host != "" && c.Database != ""
}

type DiscordConfig struct {
	Token   string             `toml:"token"`
	GuildID snowflake.ID       `toml:"guild_id"`
	OAuth   DiscordOAuthConfig `toml:"oauth"`
	Roles   RoleConfig         `toml:"roles"`
}

type DiscordOAuthConfig struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	RedirectURL  string   `toml:"redirect_url"`
	Scopes       []string `toml:"scopes"`
}

// RoleConfig maps plan tiers to Discord role IDs. Anual falls back to
// Mentoria when unset; Mentoria is also the default for unknown plans.
type RoleConfig struct {
	Senales  snowflake.ID `toml:"senales"`
	Mentoria snowflake.ID `toml:"mentoria"`
	Anual    snowflake.ID `toml:"anual"`
}

type BraintreeConfig struct {
	Environment string `toml:"environment"`
	MerchantID  string `toml:"merchant_id"`
	PublicKey   string `toml:"public_key"`
	PrivateKey  string `toml:"private_key"`
}

func (c BraintreeConfig) Enabled() bool {
	return c.MerchantID != "" && c.PublicKey != "" && c.PrivateKey != ""
}

type SendGridConfig struct {
	APIKey    string `toml:"api_key"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

func (c SendGridConfig) Enabled() bool {
	return c.APIKey != "" && c.FromEmail != ""
}

type ClaimsConfig struct {
	Secret   string `toml:"secret"`
	TTLHours int    `toml:"ttl_hours"`
}

func (c ClaimsConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

func (c *Config) applyDefaults() {
	if c.Web.Host == "" {
		c.Web.Host = "0.0.0.0"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 8090
	}
	if c.Claims.TTLHours == 0 {
		c.Claims.TTLHours = 24
	}
	if len(c.Discord.OAuth.Scopes) == 0 {
		c.Discord.OAuth.Scopes = []string{"identify", "email"}
	}
	if c.Discord.Roles.Anual == 0 {
		c.Discord.Roles.Anual = c.Discord.Roles.Mentoria
	}
}

// Validate rejects configurations that make the service meaningless. Optional
// collaborators (db, sendgrid, braintree) may be absent and only disable
// their integration.
func (c *Config) Validate() error {
	if c.Claims.Secret == "" {
		return fmt.Errorf("claims.secret is required")
	}
	if c.Discord.Token == "" {
		return fmt.Errorf("discord.token is required")
	}
	if c.Discord.GuildID == 0 {
		return fmt.Errorf("discord.guild_id is required")
	}
	if c.Web.BaseURL == "" {
		return fmt.Errorf("web.base_url is required")
	}
	return nil
}
