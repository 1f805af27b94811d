package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	taskssync "github.com/minhvu/garage-tasks/internal/sync"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the cache fresh and print updates as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}

			interval := time.Duration(a.cfg.Sync.PollIntervalSec) * time.Second
			poller := taskssync.New(a.client, a.coord, a.store, a.sess, interval, a.logger)
			poller.Start()
			defer poller.Stop()

			fmt.Printf("Watching for updates every %s (Ctrl-C to stop)\n", interval)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			now := time.Now
			for {
				select {
				case <-sigCh:
					fmt.Println("Stopped")
					return nil
				case res := <-poller.Results():
					if res.AuthExpired {
						return fmt.Errorf("session expired: run `garage-tasks login` again")
					}
					if res.Err != nil {
						fmt.Fprintf(os.Stderr, "refresh failed: %v\n", res.Err)
						continue
					}
					if res.NewTaskCount > 0 {
						fmt.Printf("%d new task(s)\n", res.NewTaskCount)
					}
					for _, t := range res.Tasks {
						fmt.Println(a.renderer.TaskLine(t, now()))
					}
				}
			}
		},
	}
}
