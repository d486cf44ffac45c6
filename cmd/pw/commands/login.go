package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store API credentials",
		Long: `Store an API access token and user email. The credentials are checked
against the account endpoint before they are saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			email := strings.TrimSpace(viper.GetString(keyEmail))
			if email == "" {
				_, _ = fmt.Fprint(out, "Email: ")

				line, err := reader.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read email: %w", err)
				}

				email = strings.TrimSpace(line)
			}

			if email == "" {
				return constants.ErrNoEmail
			}

			token := strings.TrimSpace(viper.GetString(keyAccessToken))
			if token == "" {
				_, _ = fmt.Fprint(out, "Access token: ")

				secret, err := readSecret(reader)
				if err != nil {
					return fmt.Errorf("failed to read access token: %w", err)
				}

				_, _ = fmt.Fprintln(out)

				token = strings.TrimSpace(secret)
			}

			if token == "" {
				return constants.ErrEmptyToken
			}

			viper.Set(keyEmail, email)
			viper.Set(keyAccessToken, token)

			var name string

			err := withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				account, err := client.Account().Get(ctx)
				if err != nil {
					return fmt.Errorf("failed to verify credentials: %w", err)
				}

				name = account.Name()

				return nil
			})
			if err != nil {
				return err
			}

			config := loadConfig()

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Logged in as %s (account %s)\n", email, name)

			return nil
		},
	}
}

// readSecret reads without echo from a terminal and falls back to a plain
// line read for piped input.
func readSecret(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)

		return string(secret), err
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return line, nil
}
