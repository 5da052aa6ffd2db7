// Package config loads the venue's house rules: the menu, the stay
// pricing, the admission hours and the default tax mode.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/staytab/internal/domain"
)

// EnvConfigPath names the env var that points at a house-rules file.
const EnvConfigPath = "STAYTAB_CONFIG"

// Config is the top-level house-rules configuration.
type Config struct {
	Menu    []MenuConfig  `yaml:"menu"`
	Pricing PricingConfig `yaml:"pricing"`
	Hours   HoursConfig   `yaml:"hours"`
}

// MenuConfig describes one menu category.
type MenuConfig struct {
	Category string `yaml:"category"`
	Label    string `yaml:"label"`
	Icon     string `yaml:"icon"`
	Prices   []int  `yaml:"prices"`
}

// PricingConfig holds the stay charge and tax settings. BaseCharge covers
// the first BaseMinutes; ExtensionCharge is due per started
// ExtensionMinutes unit after that. TaxRate is a decimal string such as
// "0.10".
type PricingConfig struct {
	BaseCharge       int    `yaml:"base_charge"`
	BaseMinutes      int    `yaml:"base_minutes"`
	ExtensionCharge  int    `yaml:"extension_charge"`
	ExtensionMinutes int    `yaml:"extension_minutes"`
	TaxRate          string `yaml:"tax_rate"`
	TaxMode          string `yaml:"tax_mode"`
}

// HoursConfig holds the admission windows as "HH:MM" strings. Each window
// is [from, until).
type HoursConfig struct {
	ClosedFrom         string `yaml:"closed_from"`
	ClosedUntil        string `yaml:"closed_until"`
	LastAdmissionFrom  string `yaml:"last_admission_from"`
	LastAdmissionUntil string `yaml:"last_admission_until"`
}

// Default returns the built-in house rules.
func Default() Config {
	return Config{
		Menu: []MenuConfig{
			{Category: "drink", Label: "Drink", Icon: "🍹", Prices: []int{600, 800, 1000, 1500}},
			{Category: "food", Label: "Food", Icon: "🍽️", Prices: []int{1000, 1500, 2000}},
			{Category: "amuse", Label: "Amuse", Icon: "📷", Prices: []int{1000, 1500}},
		},
		Pricing: PricingConfig{
			BaseCharge:       800,
			BaseMinutes:      60,
			ExtensionCharge:  400,
			ExtensionMinutes: 30,
			TaxRate:          "0.10",
			TaxMode:          "inclusive",
		},
		Hours: HoursConfig{
			ClosedFrom:         "05:00",
			ClosedUntil:        "12:00",
			LastAdmissionFrom:  "22:30",
			LastAdmissionUntil: "23:00",
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults. Environment
// variables referenced as ${VAR} or $VAR are expanded before parsing. An
// empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator-provided config path
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	seen := make(map[domain.Category]struct{}, len(c.Menu))
	for _, m := range c.Menu {
		cat, err := domain.ParseCategory(m.Category)
		if err != nil {
			return fmt.Errorf("config: menu: %w", err)
		}
		if _, dup := seen[cat]; dup {
			return fmt.Errorf("config: menu: duplicate category %q", m.Category)
		}
		seen[cat] = struct{}{}

		if len(m.Prices) == 0 {
			return fmt.Errorf("config: menu: category %q has no prices", m.Category)
		}
		prices := make(map[int]struct{}, len(m.Prices))
		for _, p := range m.Prices {
			if p <= 0 {
				return fmt.Errorf("config: menu: category %q: price must be positive, got %d", m.Category, p)
			}
			if _, dup := prices[p]; dup {
				return fmt.Errorf("config: menu: category %q: duplicate price %d", m.Category, p)
			}
			prices[p] = struct{}{}
		}
	}
	for _, cat := range []domain.Category{domain.CategoryDrink, domain.CategoryAmuse} {
		if _, ok := seen[cat]; !ok {
			return fmt.Errorf("config: menu: required category %q is missing", cat)
		}
	}

	p := c.Pricing
	if p.BaseCharge < 0 || p.ExtensionCharge < 0 {
		return fmt.Errorf("config: pricing: charges must not be negative")
	}
	if p.BaseMinutes <= 0 || p.ExtensionMinutes <= 0 {
		return fmt.Errorf("config: pricing: base_minutes and extension_minutes must be positive")
	}
	rate, err := c.TaxRate()
	if err != nil {
		return err
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("config: pricing: tax_rate must be in [0, 1), got %s", rate)
	}
	if _, err := c.TaxMode(); err != nil {
		return fmt.Errorf("config: pricing: %w", err)
	}

	for name, v := range map[string]string{
		"closed_from":          c.Hours.ClosedFrom,
		"closed_until":         c.Hours.ClosedUntil,
		"last_admission_from":  c.Hours.LastAdmissionFrom,
		"last_admission_until": c.Hours.LastAdmissionUntil,
	} {
		if _, err := domain.ParseClock(v); err != nil {
			return fmt.Errorf("config: hours: %s: %w", name, err)
		}
	}
	return nil
}

// TaxRate parses the configured rate.
func (c Config) TaxRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Pricing.TaxRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: pricing: tax_rate %q: %w", c.Pricing.TaxRate, err)
	}
	return rate, nil
}

// TaxMode parses the configured default tax mode.
func (c Config) TaxMode() (domain.TaxMode, error) {
	return domain.ParseTaxMode(c.Pricing.TaxMode)
}
