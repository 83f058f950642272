// Package config resolves the command-line flags that govern how a
// document is parsed and how the viewer starts up, mirroring the teacher's
// validated-settings-loader shape but sourced from cobra/pflag flags
// instead of a persisted dotfile.
package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/trygveh/sdp/internal/viewer"
)

// DataFormat names which parser to use for the input stream.
type DataFormat int

const (
	AutoDetect DataFormat = iota
	JSON
	YAML
)

// Config holds every flag-derived setting needed to start the viewer.
type Config struct {
	Mode       viewer.Mode
	Scrolloff  int
	Format     DataFormat
	InputPath  string
}

// flagSet holds the raw flag values before validation, so
// a bad --mode string can be reported with its offending value.
type flagSet struct {
	mode      string
	scrolloff int
	yaml      bool
	json      bool
}

// Register adds this package's flags to fs, returning a closure that
// resolves them into a Config once fs.Parse has run.
func Register(fs *pflag.FlagSet) func() (Config, error) {
	vals := &flagSet{}
	fs.StringVar(&vals.mode, "mode", "data", `initial display mode: "line" or "data"`)
	fs.IntVar(&vals.scrolloff, "scrolloff", 3, "minimum number of lines kept visible above/below the focused row")
	fs.BoolVar(&vals.yaml, "yaml", false, "parse input as YAML instead of auto-detecting")
	fs.BoolVar(&vals.json, "json", false, "parse input as JSON instead of auto-detecting")

	return func() (Config, error) {
		return resolve(vals, fs.Args())
	}
}

func resolve(vals *flagSet, args []string) (Config, error) {
	var cfg Config

	switch vals.mode {
	case "line":
		cfg.Mode = viewer.LineMode
	case "data":
		cfg.Mode = viewer.DataMode
	default:
		return Config{}, fmt.Errorf("invalid --mode %q: must be \"line\" or \"data\"", vals.mode)
	}

	if vals.scrolloff < 0 {
		return Config{}, fmt.Errorf("invalid --scrolloff %d: must be >= 0", vals.scrolloff)
	}
	cfg.Scrolloff = vals.scrolloff

	if vals.yaml && vals.json {
		return Config{}, fmt.Errorf("--yaml and --json are mutually exclusive")
	}
	switch {
	case vals.yaml:
		cfg.Format = YAML
	case vals.json:
		cfg.Format = JSON
	default:
		cfg.Format = AutoDetect
	}

	if len(args) > 0 {
		cfg.InputPath = args[0]
	}

	return cfg, nil
}
