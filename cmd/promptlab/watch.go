package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/promptlab/internal/corpus"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate prompt records as they change",
	Long:  "Watches the prompts directory and re-validates any record that is created or edited, until interrupted.",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	root, err := promptsRoot()
	if err != nil {
		return err
	}
	v, err := newValidator()
	if err != nil {
		return err
	}

	watcher, err := corpus.NewWatcher(root, newLogger())
	if err != nil {
		return err
	}
	watcher.OnChange(func(paths []string) {
		for _, rel := range paths {
			full := filepath.Join(root, rel)
			if _, err := os.Stat(full); err != nil {
				fmt.Printf("🗑  %s removed\n", rel)
				continue
			}
			record, err := corpus.LoadRecord(full)
			if err != nil {
				fmt.Printf("❌ %s failed to parse:\n   %v\n", rel, err)
				continue
			}
			printOutcome(rel, v.Validate(record.Raw))
		}
	})

	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Printf("👀 Watching %s for changes (Ctrl-C to stop)\n", root)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println("\nStopped.")
	return nil
}
