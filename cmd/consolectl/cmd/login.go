package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/spec-kit/restaurant-console/internal/api/dto"
	"github.com/spec-kit/restaurant-console/internal/auth"
)

var (
	username string
	password string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Unlock the terminal with staff credentials",
	Long: `Authenticates against the restaurant API and stores the issued credential
for this terminal. Logging in while another identity is active logs it out first.

The password is prompted for when --password is not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if username == "" {
			if username, err = pterm.DefaultInteractiveTextInput.Show("Username"); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password"); err != nil {
				return err
			}
		}

		req := dto.LoginRequest{Username: username, Password: password}
		if details := dto.Validate(&req); details != nil {
			for field, rule := range details {
				pterm.Warning.Printf("%s: %v\n", field, rule)
			}
			return errors.New("invalid login form")
		}

		s, err := manager.Login(cmd.Context(), req.Username, req.Password)
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return errors.New("username or password incorrect")
		case err != nil:
			return fmt.Errorf("login failed, please try again: %w", err)
		}

		pterm.Success.Printf("Logged in as %s (%s)\n", s.Identity.Subject, s.Identity.Role)
		pterm.Info.Printf("Credential expires at %s\n", s.ExpiresAt.Local().Format(time.RFC1123))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&username, "username", "u", "", "Staff username")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Staff password")
}
