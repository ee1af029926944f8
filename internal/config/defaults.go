package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DocumentDefaults seed every newly created document.
type DocumentDefaults struct {
	Currency     string `mapstructure:"currency"`
	Template     string `mapstructure:"template"`
	PrimaryColor string `mapstructure:"primaryColor"`
	AccentColor  string `mapstructure:"accentColor"`
	Font         string `mapstructure:"font"`
	DueDays      int    `mapstructure:"dueDays"`
}

func DefaultDocumentDefaults() DocumentDefaults {
	return DocumentDefaults{
		Currency:     "USD",
		Template:     "clean",
		PrimaryColor: "#1e40af",
		AccentColor:  "#10b981",
		Font:         "inter",
		DueDays:      30,
	}
}

// DefaultsHolder keeps the current document defaults, hot-reloaded from an
// optional yaml file.
type DefaultsHolder struct {
	current atomic.Value // holds DocumentDefaults
}

func NewDefaultsHolder() (*DefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("defaults")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/quickbill/config") // Volume-mounted config
	v.AddConfigPath("/etc/quickbill")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("QUICKBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fallback := DefaultDocumentDefaults()
	v.SetDefault("document.currency", fallback.Currency)
	v.SetDefault("document.template", fallback.Template)
	v.SetDefault("document.primaryColor", fallback.PrimaryColor)
	v.SetDefault("document.accentColor", fallback.AccentColor)
	v.SetDefault("document.font", fallback.Font)
	v.SetDefault("document.dueDays", fallback.DueDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg DocumentDefaults
	if err := v.UnmarshalKey("document", &cfg); err != nil {
		return nil, err
	}
	if err := validateDefaults(cfg); err != nil {
		return nil, err
	}

	holder := &DefaultsHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DocumentDefaults
		if err := v.UnmarshalKey("document", &updated); err != nil {
			log.Printf("[defaults] reload failed: %v", err)
			return
		}
		if err := validateDefaults(updated); err != nil {
			log.Printf("[defaults] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[defaults] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *DefaultsHolder) Get() DocumentDefaults {
	return h.current.Load().(DocumentDefaults)
}

func validateDefaults(cfg DocumentDefaults) error {
	if len(cfg.Currency) != 3 {
		return errors.New("document.currency must be a 3-letter code")
	}
	if strings.TrimSpace(cfg.Template) == "" {
		return errors.New("document.template is required")
	}
	if cfg.DueDays < 0 {
		return errors.New("document.dueDays must not be negative")
	}
	return nil
}
