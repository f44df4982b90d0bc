package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/rpggio/designboard/internal/app"
	"github.com/rpggio/designboard/internal/config"
	"github.com/rpggio/designboard/internal/transport"
)

var version = "dev"

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "designboard: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	transport  string
	addr       string
	logLevel   string
	logPath    string
	seedPath   string
}

func newCommand() *cli.Command {
	var f flags
	return &cli.Command{
		Name:    "designboard",
		Usage:   "Kanban board engine with design change approvals",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to YAML config file",
				Sources:     cli.EnvVars("DESIGNBOARD_CONFIG_PATH"),
				Destination: &f.configPath,
			},
			&cli.StringFlag{
				Name:        "transport",
				Usage:       "Transport mode (stdio, http)",
				Destination: &f.transport,
			},
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "HTTP listen address, overrides server host and port",
				Sources:     cli.EnvVars("DESIGNBOARD_ADDR"),
				Destination: &f.addr,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level (debug, info, warn, error)",
				Destination: &f.logLevel,
			},
			&cli.StringFlag{
				Name:        "log-path",
				Usage:       "Write logs to this file instead of the console",
				Sources:     cli.EnvVars("DESIGNBOARD_LOG_PATH"),
				Destination: &f.logPath,
			},
			&cli.StringFlag{
				Name:        "seed",
				Usage:       "Seed document for the initial board",
				Destination: &f.seedPath,
			},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return run(ctx, f)
		},
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if f.transport != "" {
		cfg.Transport.Mode = f.transport
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.seedPath != "" {
		cfg.Seed.Path = f.seedPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if f.logPath != "" {
		fileWriter, err := newLogFileWriter(f.logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer board.Close()

	mcpServer := board.MCPServer(version, logger)

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(ctx, logger, mcpServer)
	}
	addr := f.addr
	if addr == "" {
		addr = cfg.Server.Addr()
	}
	return runHTTPMode(ctx, logger, board, mcpServer, addr)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, board *app.App, mcpServer *sdkmcp.Server, addr string) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	httpServer := &http.Server{
		Addr: addr,
		Handler: transport.NewServer(board.Handler, transport.Options{
			MCP:    mcpHandler,
			Logger: logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		board.Close()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
