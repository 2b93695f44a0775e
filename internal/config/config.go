// Package config loads the optional .husk.yml project file and resolves the
// external QA tool catalog. Every field has a built-in default, so running
// without a config file is the common case.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when no
// explicit --config path is given.
const DefaultFile = ".husk.yml"

type Config struct {
	Tools    ToolsConfig    `yaml:"tools"`
	Paths    PathsConfig    `yaml:"paths"`
	Analyze  AnalyzeConfig  `yaml:"analyze"`
	Coverage CoverageConfig `yaml:"coverage"`
}

// ToolsConfig holds the binaries husk dispatches to.
type ToolsConfig struct {
	Sniffer  string `yaml:"sniffer"`
	Fixer    string `yaml:"fixer"`
	Analyzer string `yaml:"analyzer"`
	Tester   string `yaml:"tester"`
}

// PathsConfig holds the default target paths per command family, used when a
// command is invoked without positional path arguments.
type PathsConfig struct {
	Sniff   []string `yaml:"sniff"`
	Analyze []string `yaml:"analyze"`
	Test    []string `yaml:"test"`
}

type AnalyzeConfig struct {
	Level string `yaml:"level"`
}

type CoverageConfig struct {
	Dir string  `yaml:"dir"`
	Min Percent `yaml:"min"`
}

// CloverPath returns the location of the Clover coverage report.
func (c CoverageConfig) CloverPath() string {
	return filepath.Join(c.Dir, "clover.xml")
}

// JUnitPath returns the location of the JUnit test result report.
func (c CoverageConfig) JUnitPath() string {
	return filepath.Join(c.Dir, "junit.xml")
}

// Percent is a decimal percentage kept as text so YAML authors can write
// either a bare number or a quoted string.
type Percent string

func (p *Percent) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("percentage must be a scalar value")
	}
	*p = Percent(value.Value)
	return nil
}

// Decimal parses the percentage. The empty value counts as zero.
func (p Percent) Decimal() (decimal.Decimal, error) {
	if p == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(string(p))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid percentage %q: %w", string(p), err)
	}
	return d, nil
}

// Tool is a resolved external tool invocation: the binary plus the fixed
// arguments placed before the target paths.
type Tool struct {
	Name string
	Bin  string
	Args []string
}

// Default returns the built-in configuration matching a conventional PHP
// project layout with composer-installed QA tools.
func Default() *Config {
	return &Config{
		Tools: ToolsConfig{
			Sniffer:  filepath.Join("vendor", "bin", "phpcs"),
			Fixer:    filepath.Join("vendor", "bin", "phpcbf"),
			Analyzer: filepath.Join("vendor", "bin", "phpstan"),
			Tester:   filepath.Join("vendor", "bin", "phpunit"),
		},
		Paths: PathsConfig{
			Sniff:   []string{"src", "tests"},
			Analyze: []string{"src"},
			Test:    []string{"tests"},
		},
		Analyze: AnalyzeConfig{Level: "max"},
		Coverage: CoverageConfig{
			Dir: filepath.Join("build", "qa"),
			Min: "0",
		},
	}
}

// Load reads the config file and merges it over the defaults. A missing
// DefaultFile is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	tools := map[string]string{
		"sniffer":  c.Tools.Sniffer,
		"fixer":    c.Tools.Fixer,
		"analyzer": c.Tools.Analyzer,
		"tester":   c.Tools.Tester,
	}
	for name, bin := range tools {
		if bin == "" {
			return fmt.Errorf("tools.%s must not be empty", name)
		}
	}

	if c.Analyze.Level == "" {
		return fmt.Errorf("analyze.level must not be empty")
	}
	if c.Coverage.Dir == "" {
		return fmt.Errorf("coverage.dir must not be empty")
	}
	if _, err := c.Coverage.Min.Decimal(); err != nil {
		return fmt.Errorf("coverage.min: %w", err)
	}

	return nil
}

// Sniffer resolves the style checker invocation.
func (c *Config) Sniffer() Tool {
	return Tool{Name: "sniffer", Bin: c.Tools.Sniffer}
}

// Fixer resolves the style auto-fixer invocation.
func (c *Config) Fixer() Tool {
	return Tool{Name: "fixer", Bin: c.Tools.Fixer}
}

// Analyzer resolves the static analyzer invocation. An empty level falls
// back to the configured one.
func (c *Config) Analyzer(level string) Tool {
	if level == "" {
		level = c.Analyze.Level
	}
	return Tool{
		Name: "analyzer",
		Bin:  c.Tools.Analyzer,
		Args: []string{"analyse", "--no-progress", "--level", level},
	}
}

// Tester resolves the plain test runner invocation.
func (c *Config) Tester() Tool {
	return Tool{Name: "tester", Bin: c.Tools.Tester}
}

// TesterWithCoverage resolves the test runner invocation with coverage and
// JUnit report flags for the given coverage settings.
func (c *Config) TesterWithCoverage(cov CoverageConfig) Tool {
	return Tool{
		Name: "tester",
		Bin:  c.Tools.Tester,
		Args: []string{
			"--coverage-clover", cov.CloverPath(),
			"--log-junit", cov.JUnitPath(),
		},
	}
}
