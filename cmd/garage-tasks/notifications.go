package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNotificationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "Read workflow notifications",
	}

	var unreadOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}

			if err := a.notifier.Refresh(cmd.Context()); err != nil {
				return err
			}
			items, err := a.notifier.List(cmd.Context(), unreadOnly)
			if err != nil {
				return err
			}
			for _, n := range items {
				fmt.Println(a.renderer.NotificationLine(n))
			}
			return nil
		},
	}
	list.Flags().BoolVar(&unreadOnly, "unread", false, "show unread notifications only")

	read := &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}
			return a.notifier.MarkRead(cmd.Context(), args[0])
		},
	}

	readAll := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}
			return a.notifier.MarkAllRead(cmd.Context(), nil)
		},
	}

	del := &cobra.Command{
		Use:   "delete <notification-id>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}
			return a.notifier.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, read, readAll, del)
	return cmd
}
