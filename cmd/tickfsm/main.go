// Package main is the entry point for tickfsm.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samdwyer/tickfsm/fsm/graph"
	"github.com/samdwyer/tickfsm/internal/config"
	"github.com/samdwyer/tickfsm/internal/game"
	"github.com/samdwyer/tickfsm/internal/logger"
	"github.com/samdwyer/tickfsm/internal/telemetry"
)

func main() {
	graphFormat := flag.String("graph", "", "print the game-mode transition graph (dot or mermaid) and exit")
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	flag.Parse()

	if *graphFormat != "" {
		if err := printGraph(*graphFormat); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The terminal belongs to the renderer, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	l := logger.New(
		logger.WithOutput(logFile),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(logger.Component("tickfsm")),
	)
	slog.SetDefault(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, telemetry.Settings{
			Endpoint: cfg.OTLPEndpoint,
			Headers:  cfg.OTLPHeaders(),
		})
		if err != nil {
			// Continue without telemetry - game still works
			l.Warn("telemetry setup failed", logger.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					l.Error("telemetry shutdown", logger.Error(err))
				}
			}()
		}
	}

	g, err := game.New(game.Config{
		Seed:          cfg.Seed,
		FrameInterval: cfg.FrameInterval(),
		FixedInterval: cfg.FixedInterval(),
	}, game.WithLogger(l))
	if err != nil {
		l.Error("initialize game", logger.Error(err))
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		l.Error("game error", logger.Error(err))
		log.Fatalf("Game error: %v", err)
	}
}

func printGraph(format string) error {
	info, err := game.ModeGraph()
	if err != nil {
		return err
	}
	switch format {
	case "dot":
		fmt.Print(graph.Dot(info))
	case "mermaid":
		fmt.Print(graph.Mermaid(info))
	default:
		return fmt.Errorf("unknown graph format %q (want dot or mermaid)", format)
	}
	return nil
}
