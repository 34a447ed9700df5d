package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) registerCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.api.Register(name, email, password)
			if err != nil {
				return err
			}
			a.state.SetToken(s.Token)
			if err := a.state.Save(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Welcome, %s!\n", s.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 6 characters)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.api.Login(email, password)
			if err != nil {
				return err
			}
			a.state.SetToken(s.Token)
			if err := a.state.Save(); err != nil {
				return err
			}
			role := ""
			if s.IsAdmin {
				role = " (admin)"
			}
			fmt.Fprintf(a.out, "Logged in as %s%s\n", s.Email, role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

// logoutCmd forgets the token. The cart survives.
func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.state.SetToken("")
			if err := a.state.Save(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			s, err := a.api.Profile()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "ID:    %s\nName:  %s\nEmail: %s\nAdmin: %t\n", s.ID, s.Name, s.Email, s.IsAdmin)
			return nil
		},
	}
}
