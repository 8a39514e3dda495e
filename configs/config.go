package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Postgres struct {
		DSN      string `koanf:"dsn"`
		MaxConns int32  `koanf:"max_conns"`
	} `koanf:"postgres"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Catalog struct {
		CacheTTL time.Duration `koanf:"cache_ttl"`
	} `koanf:"catalog"`

	Rabbit struct {
		URL        string `koanf:"url"`
		Exchange   string `koanf:"exchange"`
		Queue      string `koanf:"queue"`
		RoutingKey string `koanf:"routing_key"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Brokers     []string `koanf:"brokers"`
		TopicOrders string   `koanf:"topic_orders"`
		GroupID     string   `koanf:"group_id"`
	} `koanf:"kafka"`

	Security struct {
		JWTSecret string        `koanf:"jwt_secret"`
		Issuer    string        `koanf:"issuer"`
		Audience  string        `koanf:"audience"`
		TTL       time.Duration `koanf:"ttl"`
	} `koanf:"security"`

	Store struct {
		DeliveryFee   string `koanf:"delivery_fee"` // decimal string, e.g. "2.00"
		PaymentLink   string `koanf:"payment_link"`
		PixKey        string `koanf:"pix_key"`
		PixQRImageURL string `koanf:"pix_qr_image_url"`
		WhatsApp      string `koanf:"whatsapp"` // digits with country code, e.g. 5517996248616
		SMSGatewayURL string `koanf:"sms_gateway_url"`
		SMSTo         string `koanf:"sms_to"`
		BoardPageSize int    `koanf:"board_page_size"`
	} `koanf:"store"`
}

// Load reads base.yaml, overlays <envName>.yaml if present, then environment
// variables (prefix ACAI_, nested keys joined with __), e.g.
// ACAI_POSTGRES__DSN, ACAI_STORE__PAYMENT_LINK.
func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// env-specific overlay is optional for local runs
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	if err := k.Load(env.Provider("ACAI_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "ACAI_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn required")
	}
	if c.Store.PaymentLink == "" {
		return fmt.Errorf("store.payment_link required")
	}
	if _, err := decimal.NewFromString(c.Store.DeliveryFee); err != nil {
		return fmt.Errorf("store.delivery_fee: %w", err)
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers required")
	}
	return nil
}

// DeliveryFee returns the parsed fee. Validate has already checked the string.
func (c Config) DeliveryFee() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Store.DeliveryFee)
	return d
}
