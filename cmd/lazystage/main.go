// Package main is the entry point for the lazystage application.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystage/internal/app"
	"github.com/chmouel/lazystage/internal/buildinfo"
	"github.com/chmouel/lazystage/internal/config"
	"github.com/chmouel/lazystage/internal/git"
	"github.com/chmouel/lazystage/internal/log"
	"github.com/chmouel/lazystage/internal/theme"
	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

const openTimeout = 10 * time.Second

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	cliApp := &urfavecli.App{
		Name:      "lazystage",
		Usage:     "A TUI for staging, committing and syncing a git worktree",
		ArgsUsage: "[path]",
		Version:   buildinfo.Version(),

		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "theme",
				Aliases: []string{"t"},
				Usage:   "color theme: " + themeList(),
			},
			&urfavecli.StringFlag{
				Name:  "debug-log",
				Usage: "write debug output to `FILE`",
			},
			&urfavecli.IntFlag{
				Name:  "history-limit",
				Usage: "maximum commits shown in the History view",
				Value: config.DefaultConfig().HistoryLimit,
			},
			&urfavecli.BoolFlag{
				Name:  "no-watch",
				Usage: "disable automatic refresh on repository changes",
			},
			&urfavecli.BoolFlag{
				Name:  "no-icons",
				Usage: "disable Nerd Font file icons",
			},
		},

		Action: runTUI,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runTUI(c *urfavecli.Context) error {
	if debugLog := c.String("debug-log"); debugLog != "" {
		if err := log.SetFile(debugLog); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", debugLog, err)
		}
	} else {
		_ = log.SetFile("")
	}

	cfg := config.DefaultConfig()
	if c.String("theme") != "" {
		cfg.Theme = c.String("theme")
	}
	cfg.HistoryLimit = c.Int("history-limit")
	cfg.AutoRefresh = !c.Bool("no-watch")
	cfg.ShowIcons = !c.Bool("no-icons")
	cfg.DebugLog = c.String("debug-log")
	cfg.RepoPath = c.Args().First()
	if cfg.RepoPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		cfg.RepoPath = cwd
	}
	if err := cfg.Validate(); err != nil {
		_ = log.Close()
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		_ = log.Close()
		return fmt.Errorf("lazystage requires an interactive terminal")
	}

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	repo, err := git.Open(ctx, cfg.RepoPath)
	cancel()
	if err != nil {
		_ = log.Close()
		return fmt.Errorf("cannot open %s: %w", cfg.RepoPath, err)
	}

	model := app.NewModel(cfg, repo)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	model.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		_ = log.Close()
		return err
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
	return nil
}

func themeList() string {
	names := theme.AvailableThemes()
	out := ""
	for i, name := range names {
		if i > 0 {
			out += ", "
		}
		out += name
	}
	return out
}
