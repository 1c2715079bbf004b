package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"orderhub/internal/domain"
	"orderhub/internal/repository"
)

const envPrefix = "ORDERHUB_"

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`

	Storage struct {
		Driver      string `koanf:"driver"` // memory | postgres
		PostgresDSN string `koanf:"postgres_dsn"`
	} `koanf:"storage"`

	Redis struct {
		Enabled  bool          `koanf:"enabled"`
		Addr     string        `koanf:"addr"`
		Password string        `koanf:"password"`
		TTL      time.Duration `koanf:"ttl"`
		Prefix   string        `koanf:"prefix"`
	} `koanf:"redis"`

	Orders struct {
		HubIDs         []int64 `koanf:"hub_ids"`
		ReconcileTotal bool    `koanf:"reconcile_total"`
	} `koanf:"orders"`

	Seed Seed `koanf:"seed"`
}

// Seed справочные данные для драйвера memory
type Seed struct {
	Customers []struct {
		ID    int64  `koanf:"id"`
		Name  string `koanf:"name"`
		Email string `koanf:"email"`
	} `koanf:"customers"`
	Products []struct {
		ID        int64  `koanf:"id"`
		Name      string `koanf:"name"`
		ImagePath string `koanf:"image_path"`
		Price     string `koanf:"price"`
	} `koanf:"products"`
	Hubs []struct {
		ID      int64  `koanf:"id"`
		Name    string `koanf:"name"`
		Address string `koanf:"address"`
	} `koanf:"hubs"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod), optional
	if err := k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envName, err)
	}

	// 3) environment variables, e.g. ORDERHUB_STORAGE__POSTGRES_DSN
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
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
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn required for postgres driver")
		}
	default:
		return fmt.Errorf("storage.driver must be memory or postgres, got %q", c.Storage.Driver)
	}
	if len(c.Orders.HubIDs) == 0 {
		return fmt.Errorf("orders.hub_ids required")
	}
	for _, id := range c.Orders.HubIDs {
		if id <= 0 {
			return fmt.Errorf("orders.hub_ids: invalid id %d", id)
		}
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr required when redis is enabled")
	}
	if _, err := c.Seed.Data(); err != nil {
		return err
	}
	return nil
}

// Data переводит сид из конфига в доменные сущности
func (s Seed) Data() (repository.SeedData, error) {
	var out repository.SeedData
	for _, c := range s.Customers {
		out.Customers = append(out.Customers, domain.Customer{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	for _, p := range s.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return repository.SeedData{}, fmt.Errorf("seed.products[%d].price: %w", p.ID, err)
		}
		out.Products = append(out.Products, domain.Product{ID: p.ID, Name: p.Name, ImagePath: p.ImagePath, Price: price})
	}
	for _, h := range s.Hubs {
		out.Hubs = append(out.Hubs, domain.DistributionHub{ID: h.ID, Name: h.Name, Address: h.Address})
	}
	return out, nil
}
