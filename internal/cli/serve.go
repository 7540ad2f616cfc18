package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/puffin/internal/server"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Run:   runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: $PUFFIN_ADDR or 127.0.0.1:8000)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	logger, err := cfg.Logger()
	if err != nil {
		exitErr("logger", err)
	}
	defer logger.Sync()

	s := openStore(cfg)
	defer s.Close()

	loc, err := cfg.Location()
	if err != nil {
		exitErr("timezone", err)
	}

	logger.Info("store opened", zap.String("db", cfg.DBPath), zap.String("timezone", loc.String()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(s, newComposer(cfg, s), loc, logger)
	if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		exitErr("serve", err)
	}
}
