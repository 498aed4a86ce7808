package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/berserker-backend/internal"
	"github.com/rocketscienceinc/berserker-backend/internal/config"
)

// main - is the entry point of the application. It loads .env, then runs the
// selected command (serve by default).
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load .env file: %v\n", err)
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "berserker",
		Usage: "Berserker board game backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yml",
				Usage:   "path to the yaml config",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the websocket and HTTP servers",
				Action: serve,
			},
			{
				Name:      "replay",
				Usage:     "play moves on a fresh board and print the final state as JSON",
				ArgsUsage: "--move r,c [--move r,c ...]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "move",
						Usage: "placement as row,col (0-based)",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Value: "info",
						Usage: "debug or info",
					},
				},
				Action: replay,
			},
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	logger := initLogger(os.Stdout, conf.LogLevel)

	if err = app.RunApp(ctx, logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

// initialize logger.
func initLogger(out io.Writer, logLevel string) *slog.Logger {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}
