package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/prosperworks/cmd/pw/commands"
	"github.com/fivetwenty-io/prosperworks/internal/constants"
)

func useConfigFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pw", "config.yml")
	viper.SetConfigFile(path)

	return path
}

func readConfigFile(t *testing.T, path string) commands.Config {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config commands.Config
	require.NoError(t, yaml.Unmarshal(data, &config))

	return config
}

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)

	for _, name := range []string{"show", "set", "unset"} {
		assert.NotNil(t, findSubcommand(cmd, name), name)
	}
}

func TestConfigSet(t *testing.T) {
	setupViper(t, "")
	path := useConfigFile(t)

	out, err := run(t, commands.NewConfigCommand(), "set", "api_version", "v1")
	require.NoError(t, err)
	assert.Equal(t, "Set api_version = v1\n", out)

	config := readConfigFile(t, path)
	assert.Equal(t, "v1", config.APIVersion)
	assert.Equal(t, "pam@dundermifflin.com", config.Email)
	assert.Equal(t, "v1", viper.GetString("api_version"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())
}

func TestConfigSet_MasksToken(t *testing.T) {
	setupViper(t, "")
	path := useConfigFile(t)

	out, err := run(t, commands.NewConfigCommand(), "set", "access_token", "new-token")
	require.NoError(t, err)
	assert.Equal(t, "Set access_token = ***\n", out)
	assert.Equal(t, "new-token", readConfigFile(t, path).AccessToken)
}

func TestConfigSet_UnknownKey(t *testing.T) {
	setupViper(t, "")
	useConfigFile(t)

	_, err := run(t, commands.NewConfigCommand(), "set", "shoe_size", "11")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)
}

func TestConfigUnset(t *testing.T) {
	setupViper(t, "")
	path := useConfigFile(t)

	out, err := run(t, commands.NewConfigCommand(), "unset", "email")
	require.NoError(t, err)
	assert.Equal(t, "Unset email\n", out)
	assert.Empty(t, readConfigFile(t, path).Email)
}

func TestConfigShow(t *testing.T) {
	setupViper(t, "https://example.test/")

	out, err := run(t, commands.NewConfigCommand(), "show")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, constants.MaskedSecret, got["access_token"])
	assert.Equal(t, "pam@dundermifflin.com", got["email"])
	assert.Equal(t, "https://example.test/", got["base_url"])
	assert.NotContains(t, got, "nats_url")
}

func TestConfigShow_Table(t *testing.T) {
	setupViper(t, "")
	viper.Set("output", "table")

	out, err := run(t, commands.NewConfigCommand(), "show")
	require.NoError(t, err)

	assert.Contains(t, out, constants.MaskedSecret)
	assert.NotContains(t, out, "secret-token")
	assert.Contains(t, out, constants.NotAvailable)
}

func TestVersionCommand(t *testing.T) {
	setupViper(t, "")

	out, err := run(t, commands.NewVersionCommand("1.2.3", "abc123", "2026-10-17"))
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "1.2.3", got["version"])
	assert.Equal(t, constants.Version, got["library"])
	assert.Equal(t, "abc123", got["commit"])
	assert.Equal(t, "2026-10-17", got["built"])
}

func TestVersionCommand_YAML(t *testing.T) {
	setupViper(t, "")
	viper.Set("output", "yaml")

	out, err := run(t, commands.NewVersionCommand("1.2.3", "abc123", "2026-10-17"))
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1.2.3\n")
}

func TestLoginCommand(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"GET /account": `{"id": 1, "name": "Dunder Mifflin"}`})
	path := useConfigFile(t)

	out, err := run(t, commands.NewLoginCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as pam@dundermifflin.com (account Dunder Mifflin)")

	config := readConfigFile(t, path)
	assert.Equal(t, "secret-token", config.AccessToken)
	assert.Equal(t, "pam@dundermifflin.com", config.Email)
	assert.Len(t, api.Calls(), 1)
}

func TestLoginCommand_RejectedCredentials(t *testing.T) {
	newFakeAPI(t, nil)
	path := useConfigFile(t)

	_, err := run(t, commands.NewLoginCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to verify credentials")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
