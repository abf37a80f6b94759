// Package main is the entry point for the sqlite-glance CLI.
package main

import (
	"context"
	"fmt"
	"os"

	glance "github.com/takluyver/sqlite-glance/internal/cli"
	"github.com/takluyver/sqlite-glance/internal/config"
	"github.com/takluyver/sqlite-glance/internal/render"
	"github.com/takluyver/sqlite-glance/internal/shell"
	"github.com/takluyver/sqlite-glance/pkg/version"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const appName = "sqlite-glance"

func newApp(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:      appName,
		Usage:     "Quick look at the tables in an SQLite database file",
		Version:   version.Version,
		ArgsUsage: "<file> [table]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   cfg.LogLevel,
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("SQLITE_GLANCE_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "where",
				Aliases: []string{"w"},
				Usage:   "WHERE clause to select rows in table view",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   12,
				Usage:   "Maximum number of rows to show in table view",
			},
			&cli.BoolFlag{
				Name:  "hidden",
				Usage: "Show shadow tables, SQLite system tables & hidden columns in virtual tables",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("database file required (usage: %s <file> [table])", appName)
			}

			if !cfg.Color || !term.IsTerminal(int(os.Stdout.Fd())) {
				render.NoColor()
			}

			path := cmd.Args().Get(0)

			if cmd.Args().Len() > 1 {
				limit := int64(cmd.Int("limit"))
				if !cmd.IsSet("limit") && cfg.Limit > 0 {
					limit = int64(cfg.Limit)
				}
				return glance.Inspect(glance.InspectParams{
					Path:  path,
					Table: cmd.Args().Get(1),
					Where: cmd.String("where"),
					Limit: limit,
				})
			}

			hidden := cmd.Bool("hidden")
			if !cmd.IsSet("hidden") {
				hidden = cfg.Hidden
			}
			return glance.Schema(glance.SchemaParams{
				Path:   path,
				Hidden: hidden,
			})
		},
		Commands: []*cli.Command{
			{
				Name:      "completion",
				Usage:     "Print the completion registration script for a shell",
				ArgsUsage: "<bash|zsh>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("shell name required (bash or zsh)")
					}
					gen, err := shell.NewCodeGenerator(cmd.Args().Get(0))
					if err != nil {
						return err
					}
					fmt.Print(gen.Script(appName))
					return nil
				},
			},
			{
				Name:            "__complete",
				Usage:           "Resolve completion candidates for the current command line",
				ArgsUsage:       "-- [words...]",
				Hidden:          true, // used internally by the shell scripts
				SkipFlagParsing: true, // words may contain our own flags
				HideHelp:        true,
				Action: func(_ context.Context, _ *cli.Command) error {
					// The registration scripts pass COMP_WORDS after "--"
					// and COMP_CWORD via SQLITE_GLANCE_COMP_CWORD. Use
					// os.Args directly: the framework treats "--" as a
					// separator and would drop it.
					var words []string
					found := false
					skipFirstDoubleDash := true
					for _, arg := range os.Args {
						if !found {
							found = arg == "__complete"
							continue
						}
						if arg == "--" && skipFirstDoubleDash {
							skipFirstDoubleDash = false
							continue
						}
						words = append(words, arg)
					}

					cword := len(words) - 1
					if s := os.Getenv("SQLITE_GLANCE_COMP_CWORD"); s != "" {
						_, _ = fmt.Sscanf(s, "%d", &cword) // keep default on bad input
					}

					// --hidden already typed on the line being completed
					// also reveals internal objects.
					hidden := cfg.Hidden
					for _, w := range words {
						if w == "--hidden" {
							hidden = true
						}
					}

					return glance.Completion(glance.CompletionParams{
						Words:    words,
						CWord:    cword,
						Hidden:   hidden,
						LogLevel: cfg.LogLevel,
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a sqlite-glance configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := config.FindConfig(config.Dir())
					if cmd.Args().Len() > 0 {
						path = cmd.Args().Get(0)
					}
					if path == "" {
						return fmt.Errorf("no configuration file found in %s", config.Dir())
					}

					result, err := config.Validate(path)
					if err != nil {
						return err
					}
					if result.Valid {
						fmt.Printf("%s is valid\n", path)
						return nil
					}
					for _, e := range result.Errors {
						fmt.Printf("  %s: %s\n", e.Field, e.Message)
					}
					return fmt.Errorf("configuration file %s is invalid", path)
				},
			},
		},
	}
}

func main() {
	app := newApp(config.LoadDefault())
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
