package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/hbnb/pkg/adapters/lifecycle"
	"github.com/aretw0/hbnb/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the storage whenever the backing file changes",
	Long:  `Watch keeps the storage in sync with the backing file and prints every reload until interrupted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openStorage()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		source := lifecycle.NewSource(s)
		if err := source.Start(ctx); err != nil {
			fatal("Error starting watcher", err)
		}
		slog.Info("watching", "path", s.Path(), "records", s.Count(""))

		for event := range source.Events() {
			if e, ok := event.(core.Event); ok && e.Type == core.EventError {
				slog.Warn("reload failed, keeping previous records", "path", e.Path, "error", e.Err)
			}
			fmt.Println(event)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
