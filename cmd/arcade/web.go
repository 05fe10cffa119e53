package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/redlight-arcade/internal/platform/web"
)

var (
	flagWebAddr   string
	flagWebPath   string
	flagWebRate   int
	flagWebOrigin []string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the websocket server for browsers",
	Long: `Start a websocket server. Every connection plays its own session.

The browser sends JSON commands:
  {"type":"press","key":"ArrowUp"}    {"type":"release","key":"ArrowUp"}
  {"type":"start"}  {"type":"restart"}  {"type":"freeze"}

and receives the field layout once, then a snapshot on every change.

Examples:
  arcade web                            # Listen on :8080, endpoint /ws
  arcade web --addr :9000 --rate 60
  arcade web --origin https://example.org`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().StringVar(&flagWebPath, "path", "/ws", "Websocket endpoint path")
	webCmd.Flags().IntVar(&flagWebRate, "rate", 30, "Session frames per second")
	webCmd.Flags().StringSliceVar(&flagWebOrigin, "origin", nil, "Allowed browser origins (default: any)")
}

func runWeb(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := newLogger(os.Stderr, "arcade-web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := web.NewServer(web.Config{
		Address:        flagWebAddr,
		Path:           flagWebPath,
		FrameRate:      flagWebRate,
		Seed:           flagSeed,
		AllowedOrigins: flagWebOrigin,
	}, gameCfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	fmt.Printf("Starting websocket server on %s%s\n", flagWebAddr, flagWebPath)
	fmt.Println("Press Ctrl+C to stop")

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
