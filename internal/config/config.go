package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type MySQL struct {
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	Host         string `koanf:"host"`
	Port         string `koanf:"port"`
	Database     string `koanf:"database"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
}

type Redis struct {
	Addr string `koanf:"addr"`
}

type Rabbit struct {
	URL      string `koanf:"url"`
	Exchange string `koanf:"exchange"`
}

// Stripe credentials; an empty secret key means offline mode, where orders are
// created without a payment intent.
type Stripe struct {
	SecretKey string `koanf:"secret_key"`
	Currency  string `koanf:"currency"`
}

// Slack has two transports; the webhook URL wins when both are set, the
// bot token + channel pair is the fallback, neither means no chat messages.
type Slack struct {
	WebhookURL string `koanf:"webhook_url"`
	BotToken   string `koanf:"bot_token"`
	Channel    string `koanf:"channel"`
}

type SMTP struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
}

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	MySQL  MySQL  `koanf:"mysql"`
	Redis  Redis  `koanf:"redis"`
	Rabbit Rabbit `koanf:"rabbit"`
	Stripe Stripe `koanf:"stripe"`
	Slack  Slack  `koanf:"slack"`
	SMTP   SMTP   `koanf:"smtp"`

	Security struct {
		JWTSecret string `koanf:"jwt_secret"`
	} `koanf:"security"`
}

// Load reads the optional yaml file, then overlays SHOP_-prefixed environment
// variables (SHOP_MYSQL_HOST -> mysql.host).
func Load(path string) (Config, error) {
	k := koanf.New(".")

	defaults(k)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("SHOP_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SHOP_")), "_", ".", 1)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

func defaults(k *koanf.Koanf) {
	_ = k.Set("app.name", "shop-service")
	_ = k.Set("app.http_addr", ":8080")
	_ = k.Set("app.log_file", "./logs/app.log")
	_ = k.Set("mysql.user", "root")
	_ = k.Set("mysql.host", "localhost")
	_ = k.Set("mysql.port", "3306")
	_ = k.Set("mysql.database", "shop")
	_ = k.Set("mysql.max_open_conns", 100)
	_ = k.Set("mysql.max_idle_conns", 20)
	_ = k.Set("rabbit.exchange", "shop.orders")
	_ = k.Set("stripe.currency", "usd")
	_ = k.Set("smtp.port", 587)
}

// GatewayConfigured reports whether checkout should attempt payment intents.
func (c Config) GatewayConfigured() bool {
	return c.Stripe.SecretKey != ""
}
