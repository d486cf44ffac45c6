package commands_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// setupViper resets the global configuration and points the client at url.
func setupViper(t *testing.T, url string) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("access_token", "secret-token")
	viper.Set("email", "pam@dundermifflin.com")
	viper.Set("base_url", url)
	viper.Set("output", "json")
}

// run executes cmd with args and returns what it printed.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}
