package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpman/internal/platform/tui"
	"github.com/vovakirdan/jumpman/internal/watch"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHistory     int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Train and show the dashboard over SSH",
	Long: `Train on a level while an SSH server shows the live dashboard to
anyone who connects. Viewers are read-only: quitting the view disconnects
the viewer and never stops training.

After training ends the server keeps running so viewers can inspect the
final result. Press Ctrl+C to stop.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.jumpman/host_key

Examples:
  jumpman serve --level levels.txt                 # Listen on :23234
  jumpman serve --level levels.txt --ssh :2222     # Listen on port 2222
  jumpman serve --level levels.txt --out runs/l0   # Also write run output

Viewers can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	addTrainingFlags(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagHistory, "history", 50, "Generations replayed to viewers that join late")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	logger := newLogger()

	hub := watch.NewHub(flagHistory)

	t, err := newTrainer(cfg, flagLevel, flagLevelIndex, flagOut, hub, logger)
	if err != nil {
		fail("%v", err)
	}
	defer t.Close()

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	serverCfg.Dashboard = tui.DashboardOptions{
		Title:          fmt.Sprintf("JUMPMAN - %s", flagLevel),
		Target:         float64(cfg.Fitness.Target),
		MaxGenerations: cfg.Run.MaxGenerations,
	}

	server, err := tui.NewSSHServer(serverCfg, hub, logger.WithPrefix("jumpman-ssh"))
	if err != nil {
		t.Close()
		fail("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe(ctx)
	}()

	fmt.Printf("Serving the training dashboard on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	res, err := t.Run(ctx)
	if err != nil {
		logger.Error("training failed", "error", err)
	} else {
		printSummary(res)
	}

	// Keep serving the final state until interrupted.
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			t.Close()
			fail("server: %v", err)
		}
		return
	}

	if err := <-serveErr; err != nil {
		logger.Error("server shutdown", "error", err)
	}
}
