package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CatalogConfig holds the selection options rendered on the filter form.
type CatalogConfig struct {
	Colleges []string `mapstructure:"colleges"`
	Branches []string `mapstructure:"branches"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Colleges: []string{"PES", "RVCE", "BMS"},
		Branches: []string{"CSE", "ECE", "EEE", "ME"},
	}
}

// CatalogConfigHolder serves the current catalog options and reloads
// them when the backing file changes.
type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

func NewCatalogConfigHolder() (*CatalogConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("catalog")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/swiftprep/config") // Volume-mounted config
	v.AddConfigPath("/etc/swiftprep")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("SWIFTPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCatalogConfig()
		v.SetDefault("catalog.colleges", defaults.Colleges)
		v.SetDefault("catalog.branches", defaults.Branches)
	}

	var cfg CatalogConfig
	if err := v.UnmarshalKey("catalog", &cfg); err != nil {
		return nil, err
	}
	if err := validateCatalogConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CatalogConfig
		if err := v.UnmarshalKey("catalog", &updated); err != nil {
			log.Printf("[catalog-config] reload failed: %v", err)
			return
		}
		if err := validateCatalogConfig(updated); err != nil {
			log.Printf("[catalog-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[catalog-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CatalogConfigHolder) Get() CatalogConfig {
	return h.current.Load().(CatalogConfig)
}

func validateCatalogConfig(cfg CatalogConfig) error {
	if len(cfg.Colleges) == 0 {
		return errors.New("catalog.colleges cannot be empty")
	}
	if len(cfg.Branches) == 0 {
		return errors.New("catalog.branches cannot be empty")
	}
	return nil
}
