package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"btc-ltv-planner/internal/model"
	"btc-ltv-planner/internal/strategy"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML or TOML, chosen by file extension).
type Config struct {
	// Optional: load assumptions from a preset file (e.g. presets/conservative.yaml).
	// Explicit fields in Assumptions override the preset.
	AssumptionsFile string            `yaml:"assumptions_file" toml:"assumptions_file"`
	Assumptions     AssumptionsConfig `yaml:"assumptions" toml:"assumptions"`
	Strategy        StrategyConfig    `yaml:"strategy" toml:"strategy"`
}

type AssumptionsConfig struct {
	Name               string  `yaml:"name" toml:"name"`
	BitcoinAmount      float64 `yaml:"bitcoin_amount" toml:"bitcoin_amount"`
	BitcoinPriceStart  float64 `yaml:"bitcoin_price_start" toml:"bitcoin_price_start"`
	Years              int     `yaml:"years" toml:"years"`
	InterestRate       float64 `yaml:"interest_rate" toml:"interest_rate"`
	InflationRate      float64 `yaml:"inflation_rate" toml:"inflation_rate"`
	InitialGrowthRate  float64 `yaml:"initial_growth_rate" toml:"initial_growth_rate"`
	TerminalGrowthRate float64 `yaml:"terminal_growth_rate" toml:"terminal_growth_rate"`
	MaxLTV             float64 `yaml:"max_ltv" toml:"max_ltv"`
	AnnualExpenses     float64 `yaml:"annual_expenses" toml:"annual_expenses"`
}

type StrategyConfig struct {
	Name string `yaml:"name" toml:"name"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges a scenario, but does not validate it.
// Preset files use the same shape; only their assumptions block is read.
func LoadUnchecked(path string) (*Config, error) {
	var c Config
	if err := decodeFile(path, &c); err != nil {
		return nil, err
	}
	if c.AssumptionsFile != "" {
		presetPath := c.AssumptionsFile
		if !filepath.IsAbs(presetPath) {
			// Relative to the scenario file first, then the working directory.
			cand := filepath.Join(filepath.Dir(path), presetPath)
			if _, err := os.Stat(cand); err == nil {
				presetPath = cand
			}
		}
		var preset Config
		if err := decodeFile(presetPath, &preset); err != nil {
			return nil, fmt.Errorf("assumptions_file %s: %w", c.AssumptionsFile, err)
		}
		c.Assumptions = MergeAssumptions(preset.Assumptions, c.Assumptions)
	}
	return &c, nil
}

func decodeFile(path string, out *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(raw, out)
	default:
		return yaml.Unmarshal(raw, out)
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	s, err := strategy.ByName(c.Strategy.Name)
	if err != nil {
		return err
	}
	in := c.Assumptions.ToModelInputs()
	if s.Name() == strategy.NameOptimal {
		err = in.ValidateTarget()
	} else {
		err = in.Validate()
	}
	if err != nil {
		return fmt.Errorf("assumptions invalid: %w", err)
	}
	return nil
}

func (a AssumptionsConfig) ToModelInputs() model.SimulationInputs {
	return model.SimulationInputs{
		BitcoinAmount:      a.BitcoinAmount,
		BitcoinPriceStart:  a.BitcoinPriceStart,
		Years:              a.Years,
		InterestRate:       a.InterestRate,
		InflationRate:      a.InflationRate,
		InitialGrowthRate:  a.InitialGrowthRate,
		TerminalGrowthRate: a.TerminalGrowthRate,
		MaxLTV:             a.MaxLTV,
		AnnualExpenses:     a.AnnualExpenses,
	}
}

// MergeAssumptions overlays non-zero fields from override onto base.
// A zero rate cannot be expressed as an override; put it in the preset instead.
func MergeAssumptions(base, override AssumptionsConfig) AssumptionsConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.BitcoinAmount != 0 {
		out.BitcoinAmount = override.BitcoinAmount
	}
	if override.BitcoinPriceStart != 0 {
		out.BitcoinPriceStart = override.BitcoinPriceStart
	}
	if override.Years != 0 {
		out.Years = override.Years
	}
	if override.InterestRate != 0 {
		out.InterestRate = override.InterestRate
	}
	if override.InflationRate != 0 {
		out.InflationRate = override.InflationRate
	}
	if override.InitialGrowthRate != 0 {
		out.InitialGrowthRate = override.InitialGrowthRate
	}
	if override.TerminalGrowthRate != 0 {
		out.TerminalGrowthRate = override.TerminalGrowthRate
	}
	if override.MaxLTV != 0 {
		out.MaxLTV = override.MaxLTV
	}
	if override.AnnualExpenses != 0 {
		out.AnnualExpenses = override.AnnualExpenses
	}
	return out
}

// FromModelInputs is the inverse of ToModelInputs; used to overlay request inputs on presets.
func FromModelInputs(in model.SimulationInputs) AssumptionsConfig {
	return AssumptionsConfig{
		BitcoinAmount:      in.BitcoinAmount,
		BitcoinPriceStart:  in.BitcoinPriceStart,
		Years:              in.Years,
		InterestRate:       in.InterestRate,
		InflationRate:      in.InflationRate,
		InitialGrowthRate:  in.InitialGrowthRate,
		TerminalGrowthRate: in.TerminalGrowthRate,
		MaxLTV:             in.MaxLTV,
		AnnualExpenses:     in.AnnualExpenses,
	}
}
