package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"panostills/internal/projection"
	"panostills/internal/sink"
	"panostills/internal/stills"
)

// Config holds the input, output and processing settings of a run.
type Config struct {
	// Paths
	Input     string `json:"input" yaml:"input"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	GPX       string `json:"gpx,omitempty" yaml:"gpx,omitempty"`

	// Output
	Prefix   string `json:"prefix" yaml:"prefix"`
	Encoder  string `json:"encoder" yaml:"encoder"`
	Quality  int    `json:"quality" yaml:"quality"`
	MaxWidth int    `json:"max_width,omitempty" yaml:"max_width,omitempty"`

	// Frame selection, in seconds from the first frame
	Start    float64  `json:"start" yaml:"start"`
	End      *float64 `json:"end,omitempty" yaml:"end,omitempty"` // negative or unset: until the last frame
	Interval int      `json:"interval" yaml:"interval"`
	FPS      float64  `json:"fps" yaml:"fps"`

	// Reprojection
	Reproject   bool     `json:"reproject" yaml:"reproject"`
	FaceWidth   int      `json:"face_width,omitempty" yaml:"face_width,omitempty"`
	Mode        string   `json:"mode" yaml:"mode"`
	Overlap     *float64 `json:"overlap,omitempty" yaml:"overlap,omitempty"`
	Orientation string   `json:"orientation" yaml:"orientation"`

	Workers int `json:"workers" yaml:"workers"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as JSON or YAML, chosen by extension.
func Save(path string, cfg Config) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Flags holds CLI flag values that override config file settings.
// Zero values and nil pointers mean "not given".
type Flags struct {
	Input       string
	OutputDir   string
	GPX         string
	Prefix      string
	Encoder     string
	Quality     int
	MaxWidth    int
	Start       *float64
	End         *float64
	Interval    int
	FPS         float64
	Reproject   bool
	FaceWidth   int
	Mode        string
	Overlap     *float64
	Orientation string
	Workers     int
}

// Resolve applies CLI flags over the file values and fills in defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	setString(&c.Input, flags.Input)
	setString(&c.OutputDir, flags.OutputDir)
	setString(&c.GPX, flags.GPX)
	setString(&c.Prefix, flags.Prefix)
	setString(&c.Encoder, flags.Encoder)
	setString(&c.Mode, flags.Mode)
	setString(&c.Orientation, flags.Orientation)
	setInt(&c.Quality, flags.Quality)
	setInt(&c.MaxWidth, flags.MaxWidth)
	setInt(&c.Interval, flags.Interval)
	setInt(&c.FaceWidth, flags.FaceWidth)
	setInt(&c.Workers, flags.Workers)
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Start != nil {
		c.Start = *flags.Start
	}
	if flags.End != nil {
		c.End = flags.End
	}
	if flags.Overlap != nil {
		c.Overlap = flags.Overlap
	}
	if flags.Reproject {
		c.Reproject = true
	}

	// Defaults
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Prefix == "" {
		c.Prefix = "still"
	}
	if c.Encoder == "" {
		c.Encoder = "jpg"
	}
	if c.Quality <= 0 {
		c.Quality = sink.DefaultQuality
	}
	if c.End == nil {
		end := -1.0
		c.End = &end
	}
	if c.Interval == 0 {
		c.Interval = 1
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Mode == "" {
		c.Mode = "bilinear"
	}
	if c.Overlap == nil {
		ov := stills.DefaultOverlap
		c.Overlap = &ov
	}
	if c.Orientation == "" {
		c.Orientation = stills.InsideOut.Name
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate checks a resolved config.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("no input given"))
	}
	if c.Start < 0 {
		errs = append(errs, fmt.Errorf("start %v is negative", c.Start))
	}
	if c.End != nil && *c.End >= 0 && *c.End <= c.Start {
		errs = append(errs, fmt.Errorf("end %v is not after start %v", *c.End, c.Start))
	}
	if c.Interval < 1 {
		errs = append(errs, fmt.Errorf("frame interval %d is smaller than one", c.Interval))
	}
	if c.FaceWidth < 0 {
		errs = append(errs, fmt.Errorf("face width %d is negative", c.FaceWidth))
	}
	if c.Overlap != nil && !(*c.Overlap >= 0) {
		errs = append(errs, fmt.Errorf("overlap %v is negative", *c.Overlap))
	}
	if _, err := sink.ParseFormat(c.Encoder); err != nil {
		errs = append(errs, err)
	}
	if _, err := projection.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := stills.ParseOrientation(c.Orientation); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// StillsOptions returns the reprojection options of a validated config.
func (c *Config) StillsOptions() (stills.Options, error) {
	mode, err := projection.ParseMode(c.Mode)
	if err != nil {
		return stills.Options{}, err
	}
	orient, err := stills.ParseOrientation(c.Orientation)
	if err != nil {
		return stills.Options{}, err
	}
	opts := stills.Options{FaceWidth: c.FaceWidth, Mode: mode, Overlap: stills.DefaultOverlap, Orientation: orient}
	if c.Overlap != nil {
		opts.Overlap = *c.Overlap
	}
	return opts, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
