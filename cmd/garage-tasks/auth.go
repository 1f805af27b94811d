package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/minhvu/garage-tasks/internal/client"
	"github.com/minhvu/garage-tasks/internal/model"
	"github.com/minhvu/garage-tasks/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the workshop backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Email").
							Value(&email),
						huh.NewInput().
							Title("Password").
							EchoMode(huh.EchoModePassword).
							Value(&password),
					),
				)
				if err := form.Run(); err != nil {
					return err
				}
			}

			result, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			sess, err := session.NewSession(result.User, result.Token)
			if err != nil {
				return err
			}
			if err := session.Save(sess); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n",
				sess.User.DisplayName(), a.renderer.Labels().Role(sess.Role()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			u := a.sess.User
			fmt.Printf("%s\n%s\nRole: %s\n",
				u.DisplayName(), u.Email, a.renderer.Labels().Role(u.Role))
			return nil
		},
	}

	var firstName, lastName, email, password string
	update := &cobra.Command{
		Use:   "update",
		Short: "Update the current account's details",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			updated, err := a.client.UpdateUser(cmd.Context(), client.UpdateUserRequest{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
				Password:  password,
			})
			if err != nil {
				return err
			}
			if updated.ID != "" {
				a.sess.User = updated
				if err := session.Save(a.sess); err != nil {
					return err
				}
			}
			fmt.Println("Account updated")
			return nil
		},
	}
	update.Flags().StringVar(&firstName, "first-name", "", "new first name")
	update.Flags().StringVar(&lastName, "last-name", "", "new last name")
	update.Flags().StringVar(&email, "email", "", "new email")
	update.Flags().StringVar(&password, "password", "", "new password")

	cmd.AddCommand(update)
	return cmd
}

func newEmployeesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Manage workshop employees (admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List employee accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}
			users, err := a.client.ListEmployees(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				role, err := session.NormalizeRole(string(u.Role))
				if err != nil || role != model.RoleEmployee {
					continue
				}
				fmt.Printf("%s  %s  <%s>\n", u.ID, u.DisplayName(), u.Email)
			}
			return nil
		},
	}

	var firstName, lastName, email, password string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a new employee account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}
			u, err := a.client.CreateUser(cmd.Context(), client.CreateUserRequest{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
				Password:  password,
				Role:      model.RoleEmployee,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created employee %s (%s)\n", u.DisplayName(), u.ID)
			return nil
		},
	}
	add.Flags().StringVar(&firstName, "first-name", "", "first name")
	add.Flags().StringVar(&lastName, "last-name", "", "last name")
	add.Flags().StringVar(&email, "email", "", "email")
	add.Flags().StringVar(&password, "password", "", "initial password")
	_ = add.MarkFlagRequired("email")
	_ = add.MarkFlagRequired("password")

	cmd.AddCommand(list, add)
	return cmd
}
