package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/gosteel/internal/api"
	"github.com/alexiusacademia/gosteel/internal/config"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP JSON API",
	Long: `Serve the column, beam, connection and base plate checks over HTTP.

Routes:
  POST /api/column       axial compression
  POST /api/beam         flexure and LTB
  POST /api/connection   bolted connection limit states
  POST /api/baseplate    column base plate
  GET  /api/sections/{name}
  GET  /api/materials
  GET  /healthz

Requests under /api are rate limited per client IP using the [server]
rate and burst from the configuration file.

Examples:
  gosteel serve
  gosteel serve --addr :9090
  GOSTEEL_ADDR=127.0.0.1:8000 gosteel serve`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, "+config.Default().Server.Addr+")")
}

func runServe(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	logger := log.New(os.Stderr, "gosteel: ", log.LstdFlags)

	srv, err := api.New(ws.cfg, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	addr := serveAddr
	if addr == "" {
		addr = ws.cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		logger.Printf("server error: %v", err)
		os.Exit(1)
	}
}
