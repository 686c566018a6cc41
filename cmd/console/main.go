package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"taskboard/cmd/console/ui"
	"taskboard/internal/client"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func loadConfig() *viper.Viper {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "taskboard")

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "config.yaml"))
	v.SetConfigType("yaml")

	v.SetDefault("server.url", "http://localhost:8080")
	v.SetDefault("state.dir", dir)
	v.SetDefault("log.path", filepath.Join(dir, "console.log"))
	_ = v.ReadInConfig()

	return v
}

// newLogger writes to the configured file; the terminal belongs to the
// TUI.
func newLogger(path string) zerolog.Logger {
	var w io.Writer = io.Discard
	if path != "" {
		if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			w = file
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
}

func run() error {
	cfg := loadConfig()

	stateDir := cfg.GetString("state.dir")
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return fmt.Errorf("state dir: %w", err)
	}

	log := newLogger(cfg.GetString("log.path"))

	store, err := client.NewStateStore(stateDir)
	if err != nil {
		return fmt.Errorf("state store: %w", err)
	}

	c := client.New(cfg.GetString("server.url"), store, log)
	log.Info().Str("server", c.BaseURL).Msg("console starting")

	p := tea.NewProgram(ui.NewRootModel(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
