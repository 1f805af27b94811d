package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhvu/garage-tasks/internal/client"
)

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Workshop announcements",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List announcements, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			events, err := a.client.ListEvents(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range events {
				fmt.Println(a.renderer.EventLine(e))
			}
			return nil
		},
	}

	var title, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Post a new announcement (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}
			e, err := a.client.CreateEvent(cmd.Context(), client.CreateEventRequest{
				Title:       title,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Posted announcement %s\n", e.ID)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "announcement title")
	create.Flags().StringVar(&description, "description", "", "announcement body")
	_ = create.MarkFlagRequired("title")

	cmd.AddCommand(list, create)
	return cmd
}
