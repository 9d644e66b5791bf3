package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dkeene/ubreader/internal/annotations"
	"github.com/dkeene/ubreader/internal/config"
	"github.com/dkeene/ubreader/internal/document"
	"github.com/dkeene/ubreader/internal/settings"
	"github.com/dkeene/ubreader/internal/storage"
	"github.com/dkeene/ubreader/internal/tui"
)

var (
	flagDoc         string
	flagData        string
	flagConfig      string
	flagLog         string
	flagNoAltScreen bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ubreader",
		Short: "Terminal reader with notes, quotes, and a pull-up panel",
		Long: `ubreader opens a structured document in the terminal and keeps your
notes and quotes alongside it. A pull-up panel at the bottom of the
screen collects annotations, search results, and display settings;
drag it with the mouse or cycle its height with double taps on the
handle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	cmd.Flags().StringVar(&flagDoc, "doc", "", "path to a document JSON file (default: built-in sample)")
	cmd.Flags().StringVar(&flagData, "data", "", "annotation storage directory (default from config)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "config file (default $HOME/.config/ubreader/config.json)")
	cmd.Flags().StringVar(&flagLog, "log", "", "write a debug log to this file")
	cmd.Flags().BoolVar(&flagNoAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	return cmd
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDoc != "" {
		cfg.Document.Path = flagDoc
	}
	if flagData != "" {
		cfg.Storage.Dir = flagData
	}
	if flagLog != "" {
		cfg.Log.Path = flagLog
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	doc, err := openDocument(cfg.Document.Path)
	if err != nil {
		return err
	}

	store := storage.NewDisk(config.ExpandPath(cfg.Storage.Dir))
	manager := annotations.NewManager(doc.ID, store,
		annotations.WithLogger(logger),
		annotations.WithInitialSettings(seedSettings(cfg.Reader)),
	)
	manager.Load()

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !flagNoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Document: doc,
			Manager:  manager,
			Panel:    cfg.Panel,
			Logger:   logger,
		}),
		opts...,
	)

	logger.Info("starting reader", "doc", doc.ID, "storage", cfg.Storage.Dir)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.LoadFrom(config.ExpandPath(flagConfig))
	}
	return config.Load()
}

func openDocument(path string) (*document.Document, error) {
	if path == "" {
		return document.Sample(), nil
	}
	doc, err := document.Load(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return doc, nil
}

// seedSettings converts the config defaults into reader settings for a first
// run. Stored settings win once the manager loads them.
func seedSettings(rc config.ReaderConfig) settings.Reader {
	return settings.Reader{
		FontSize:             rc.FontSize,
		LineHeight:           rc.LineHeight,
		Theme:                settings.Theme(rc.Theme),
		ShowParagraphNumbers: rc.ShowParagraphNumbers,
		FormatType:           settings.FormatType(rc.FormatType),
	}.Normalize()
}

// newLogger builds the slog sink. Log output must not reach stdout while the
// TUI owns the terminal, so without a file the logs are discarded.
func newLogger(lc config.LogConfig) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if lc.Path == "" {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(config.ExpandPath(lc.Path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
