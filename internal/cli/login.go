package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func newRegisterCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if name == "" {
				if name, err = promptLine("Name"); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = promptLine("Email"); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}

			if err := api.Register(cmd.Context(), name, email, password); err != nil {
				return fmt.Errorf("register: %w", err)
			}
			fmt.Println("Account created. Run `plantscan login` to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (prompted if omitted)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (prompted if omitted)")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, googleToken string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			var err error

			if googleToken != "" {
				token, err = api.GoogleLogin(cmd.Context(), googleToken)
				if err != nil {
					return fmt.Errorf("google login: %w", err)
				}
			} else {
				if email == "" {
					if email, err = promptLine("Email"); err != nil {
						return err
					}
				}
				password, err := promptPassword("Password")
				if err != nil {
					return err
				}
				token, err = api.Login(cmd.Context(), email, password)
				if err != nil {
					return fmt.Errorf("login: %w", err)
				}
			}

			if err := sessions.Save(token, api.BaseURL); err != nil {
				return err
			}
			fmt.Println("Signed in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (prompted if omitted)")
	cmd.Flags().StringVar(&googleToken, "google-token", "", "Google id-token for Sign in with Google")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if api.Token() != "" {
				// Best effort; the local session is cleared regardless.
				_ = api.Logout(cmd.Context())
			}
			if err := sessions.Clear(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}
