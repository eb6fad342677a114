package config

import (
	"fmt"
	"strings"

	"github.com/brianbland/pressurediagram/pkg/diagram"
	"github.com/brianbland/pressurediagram/pkg/scenarios"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Config holds the settings of a render run
type Config struct {
	Input    string  // Dataset file (.json, .toml, .csv, .xlsx)
	Scenario string  // Built-in sample to render instead of a file
	Output   string  // Output image path, or output directory in batch mode
	Overview string  // Optional auto-scaled overview PNG path
	Width    int     // Data area width in pixels
	Height   int     // Data area height in pixels
	Format   string  // jpeg or png; empty picks from the output extension
	Quality  int     // JPEG quality 1-100
	Backend  string  // Canvas backend: raster, gg or plot
	Noise    float64 // Gaussian noise on sample degradation curves (0.0-1.0)
	Surge    float64 // Per-sample surge chance on sample degradation curves (0.0-1.0)
	Seed     int64   // Seed for sample noise and surges

	Workers         int  // Concurrent renders in batch mode
	ContinueOnError bool // Keep going after a failed render in batch mode

	LogLevel   string
	ConfigFile string
}

// Default returns a configuration with sensible defaults
func Default() Config {
	return Config{
		Output:   "diagram.jpg",
		Width:    1000,
		Height:   1000,
		Quality:  75,
		Backend:  string(diagram.BackendRaster),
		Seed:     1,
		Workers:  4,
		LogLevel: "info",
	}
}

// Parser handles command-line flag parsing
type Parser struct {
	config     *Config
	flagSet    *pflag.FlagSet
	registered bool
}

// NewParser creates a new configuration parser bound to flagSet. A nil
// flagSet gets a fresh one.
func NewParser(flagSet *pflag.FlagSet) *Parser {
	config := Default()
	if flagSet == nil {
		flagSet = pflag.NewFlagSet("pressurediagram", pflag.ContinueOnError)
	}
	return &Parser{
		config:  &config,
		flagSet: flagSet,
	}
}

// RegisterFlags registers all command-line flags. Later calls are no-ops.
func (p *Parser) RegisterFlags() {
	if p.registered {
		return
	}
	p.registered = true

	p.flagSet.StringVarP(&p.config.Input, "input", "i", p.config.Input, "Dataset file with reference and degradation curves")
	p.flagSet.StringVar(&p.config.Scenario, "scenario", p.config.Scenario, "Render a built-in sample: blockage, example, flat, leak, surge")
	p.flagSet.StringVarP(&p.config.Output, "output", "o", p.config.Output, "Output image path (directory in batch mode)")
	p.flagSet.StringVar(&p.config.Overview, "overview", p.config.Overview, "Also write an auto-scaled overview chart to this PNG path")
	p.flagSet.IntVar(&p.config.Width, "width", p.config.Width, "Data area width in pixels (border excluded)")
	p.flagSet.IntVar(&p.config.Height, "height", p.config.Height, "Data area height in pixels (border excluded)")
	p.flagSet.StringVar(&p.config.Format, "format", p.config.Format, "Image format: jpeg or png (default: from output extension)")
	p.flagSet.IntVar(&p.config.Quality, "quality", p.config.Quality, "JPEG quality (1-100)")
	p.flagSet.StringVar(&p.config.Backend, "backend", p.config.Backend, "Canvas backend: raster, gg or plot")
	p.flagSet.Float64Var(&p.config.Noise, "noise", p.config.Noise, "Gaussian noise on sample degradation curves (0.0-1.0)")
	p.flagSet.Float64Var(&p.config.Surge, "surge", p.config.Surge, "Per-sample pressure surge chance on sample degradation curves (0.0-1.0)")
	p.flagSet.Int64Var(&p.config.Seed, "seed", p.config.Seed, "Seed for sample noise and surges")
	p.flagSet.IntVar(&p.config.Workers, "workers", p.config.Workers, "Concurrent renders in batch mode")
	p.flagSet.BoolVar(&p.config.ContinueOnError, "continue-on-error", p.config.ContinueOnError, "Keep rendering after a failure in batch mode")
	p.flagSet.StringVar(&p.config.LogLevel, "log-level", p.config.LogLevel, "Log level: trace, debug, info, warn, error")
	p.flagSet.StringVar(&p.config.ConfigFile, "config", p.config.ConfigFile, "TOML config file (default: $XDG_CONFIG_HOME/pressurediagram/config.toml)")
}

// Parse parses command-line arguments and returns configuration
func (p *Parser) Parse(args []string) (*Config, error) {
	p.RegisterFlags()

	if err := p.flagSet.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	return p.Resolve()
}

// Resolve applies the config file to every flag not set on the command line
// and validates the result. Use it directly when another library (cobra)
// has already parsed the flag set.
func (p *Parser) Resolve() (*Config, error) {
	path := p.config.ConfigFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	fileCfg, err := LoadFile(path, explicit)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	p.apply(fileCfg)

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return p.config, nil
}

// Validate validates the configuration parameters
func (p *Parser) Validate() error {
	return p.config.Validate()
}

// Validate validates the configuration parameters
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width (%d) and height (%d) must be positive", c.Width, c.Height)
	}

	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality (%d) must be between 1 and 100", c.Quality)
	}

	if c.Format != "" {
		if _, err := diagram.ParseFormat(c.Format); err != nil {
			return err
		}
	}

	if _, err := diagram.ParseBackend(c.Backend); err != nil {
		return err
	}

	if c.Noise < 0 || c.Noise > 1.0 {
		return fmt.Errorf("noise (%.3f) must be between 0.0 and 1.0", c.Noise)
	}

	if c.Surge < 0 || c.Surge > 1.0 {
		return fmt.Errorf("surge (%.3f) must be between 0.0 and 1.0", c.Surge)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("workers (%d) must be positive", c.Workers)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level '%s': %w", c.LogLevel, err)
	}

	if c.Input != "" && c.Scenario != "" {
		return fmt.Errorf("input and scenario cannot be combined")
	}

	if c.Scenario != "" {
		validScenarios := scenarios.NewGenerator(scenarios.DefaultOptions()).Names()
		isValid := false
		for _, valid := range validScenarios {
			if c.Scenario == valid {
				isValid = true
				break
			}
		}
		if !isValid {
			return fmt.Errorf("invalid scenario '%s', must be one of: %v", c.Scenario, validScenarios)
		}
	}

	return nil
}

// ImageFormat returns the configured format, falling back to the output
// file extension.
func (c *Config) ImageFormat() diagram.Format {
	if c.Format == "" {
		return diagram.FormatFromPath(c.Output)
	}
	format, err := diagram.ParseFormat(c.Format)
	if err != nil {
		return diagram.FormatJPEG
	}
	return format
}

// ImageExt returns the file extension matching ImageFormat
func (c *Config) ImageExt() string {
	if c.ImageFormat() == diagram.FormatPNG {
		return ".png"
	}
	return ".jpg"
}

// ScenarioOptions builds sample generation options for a gauge ceiling
func (c *Config) ScenarioOptions(maxValue float64) scenarios.Options {
	return scenarios.Options{
		Seed:     c.Seed,
		Noise:    c.Noise,
		Surge:    c.Surge,
		MaxValue: maxValue,
	}
}

// DiagramOptions builds composer options from the configuration
func (c *Config) DiagramOptions(logger logrus.FieldLogger) (diagram.Options, error) {
	backend, err := diagram.ParseBackend(c.Backend)
	if err != nil {
		return diagram.Options{}, err
	}

	opts := diagram.DefaultOptions()
	opts.Backend = backend
	opts.Encoder = diagram.Encoder{Format: c.ImageFormat(), Quality: c.Quality}
	if logger != nil {
		opts.Logger = logger
	}
	return opts, nil
}

// DetailedHelp returns the long command description
func DetailedHelp() string {
	var b strings.Builder
	b.WriteString("Pressure Diagram - reference vs. degradation curve renderer\n\n")
	b.WriteString("Renders a reference curve (black) and a degradation curve (red) of\n")
	b.WriteString("pressure in psi over time in seconds onto a white canvas with a fixed\n")
	b.WriteString("axis frame: time labels 0-10, pressure labels 1-9, 100 units per tick.\n")
	b.WriteString("The image is (width+200) x (height+200) pixels.\n\n")
	b.WriteString("INPUT FILES:\n")
	b.WriteString("  .json  {\"reference\": [{\"x\": 0, \"y\": 0}, ...], \"degradation\": [...]}\n")
	b.WriteString("  .toml  [[reference]] / [[degradation]] tables with x and y\n")
	b.WriteString("  .csv   rows of series,x,y (optional header row)\n")
	b.WriteString("  .xlsx  sheets \"reference\" and \"degradation\", time in column A, pressure in B\n\n")
	b.WriteString("CONFIG FILE:\n")
	b.WriteString("  [render] width, height, format, quality, backend, workers\n")
	b.WriteString("  [sample] noise, surge, seed\n")
	b.WriteString("  [log]    level\n")
	b.WriteString("  Command-line flags override config values.\n")
	return b.String()
}
