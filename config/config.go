// Package config holds the demo's runtime configuration.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/erinpentecost/framestat"
)

// Config holds runtime configuration for the sampler and the demo host.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Sampling
	ReportIntervalMs int  `json:"report_interval_ms"`
	HistorySize      int  `json:"history_size"`
	ResetGPUInfo     bool `json:"reset_gpu_info"`

	// Host
	Headless     bool   `json:"headless"`
	FrameDelayMs int    `json:"frame_delay_ms"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Collapsed    bool   `json:"collapsed"`
	MetricsAddr  string `json:"metrics_addr"`
	BlinkDelayMs int    `json:"blink_delay_ms"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		ReportIntervalMs: 1000,
		HistorySize:      framestat.DefaultHistorySize,
		ResetGPUInfo:     false,
		Headless:         false,
		FrameDelayMs:     16,
		Width:            800,
		Height:           600,
		Collapsed:        false,
		MetricsAddr:      "",
		BlinkDelayMs:     500,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.ReportIntervalMs <= 0 {
		c.ReportIntervalMs = 1000
	}
	if c.HistorySize <= 0 {
		c.HistorySize = framestat.DefaultHistorySize
	}
	if c.FrameDelayMs <= 0 {
		c.FrameDelayMs = 16
	}
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.BlinkDelayMs <= 0 {
		c.BlinkDelayMs = 500
	}
	return nil
}

// ReportInterval returns the reporting window as a duration.
func (c *Config) ReportInterval() time.Duration {
	return time.Duration(c.ReportIntervalMs) * time.Millisecond
}

// FrameDelay returns the headless tick spacing as a duration.
func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.FrameDelayMs) * time.Millisecond
}

// BlinkDelay returns the blink page's toggle interval.
func (c *Config) BlinkDelay() time.Duration {
	return time.Duration(c.BlinkDelayMs) * time.Millisecond
}

// SamplerOptions translates the sampling fields into sampler options.
func (c *Config) SamplerOptions() []framestat.Option {
	policy := framestat.GPURetainLastKnown
	if c.ResetGPUInfo {
		policy = framestat.GPUResetEachWindow
	}
	return []framestat.Option{
		framestat.WithReportInterval(c.ReportInterval()),
		framestat.WithHistorySize(c.HistorySize),
		framestat.WithGPUPolicy(policy),
	}
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
