package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trygveh/sdp/internal/app"
	"github.com/trygveh/sdp/internal/config"
	"github.com/trygveh/sdp/internal/errs"
	"github.com/trygveh/sdp/internal/flatdoc"
	jsonparse "github.com/trygveh/sdp/internal/parse/json"
	yamlparse "github.com/trygveh/sdp/internal/parse/yaml"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sdp [file]",
		Short:        "sdp",
		SilenceUsage: true,
		Long:         `sdp pages structured JSON/YAML data, letting you collapse, search, and navigate it the way less pages plain text. Reads FILE, or stdin when no file is given.`,
		RunE:         run,
	}

	resolveConfig func() (config.Config, error)
)

// Execute runs the root command.
func Execute() error {
	resolveConfig = config.Register(rootCmd.Flags())
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	logger := logrus.StandardLogger()

	cfg, err := resolveConfig()
	if err != nil {
		return errs.New(errs.Config, "%s", err)
	}

	src, name, err := readInput(cfg.InputPath)
	if err != nil {
		return errs.New(errs.IO, "%s", err)
	}

	format := cfg.Format
	if format == config.AutoDetect {
		format = detectFormat(name, src)
	}

	doc, err := parseDoc(format, src)
	if err != nil {
		return errs.New(errs.Parse, "%s", err)
	}

	logger.WithField("format", formatName(format)).WithField("rows", len(doc.Rows)).Debug("parsed input document")

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errs.New(errs.IO, "stdout is not a terminal")
	}

	model := app.New(doc, cfg.Mode, cfg.Scrolloff, name)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errs.New(errs.IO, "%s", err)
	}
	return nil
}

func readInput(path string) (src string, name string, err error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), "(stdin)", nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), filepath.Base(path), nil
}

func detectFormat(name, src string) config.DataFormat {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".yaml", ".yml":
		return config.YAML
	case ".json":
		return config.JSON
	}

	trimmed := strings.TrimLeft(src, " \t\r\n")
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return config.JSON
	}
	return config.YAML
}

func parseDoc(format config.DataFormat, src string) (*flatdoc.FlatDocument, error) {
	if format == config.YAML {
		return yamlparse.Parse(src)
	}
	return jsonparse.Parse(src)
}

func formatName(f config.DataFormat) string {
	switch f {
	case config.JSON:
		return "json"
	case config.YAML:
		return "yaml"
	default:
		return "auto"
	}
}
