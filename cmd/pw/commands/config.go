package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
)

// Config is the persisted CLI configuration.
type Config struct {
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty"`
	Email       string `json:"email,omitempty"        yaml:"email,omitempty"`
	APIVersion  string `json:"api_version,omitempty"  yaml:"api_version,omitempty"`
	BaseURL     string `json:"base_url,omitempty"     yaml:"base_url,omitempty"`
	Output      string `json:"output,omitempty"       yaml:"output,omitempty"`
	CacheType   string `json:"cache_type,omitempty"   yaml:"cache_type,omitempty"`
	CacheLife   string `json:"cache_life,omitempty"   yaml:"cache_life,omitempty"`
	NATSURL     string `json:"nats_url,omitempty"     yaml:"nats_url,omitempty"`
	NATSBucket  string `json:"nats_bucket,omitempty"  yaml:"nats_bucket,omitempty"`
}

type configField struct {
	key    string
	label  string
	value  *string
	secret bool
}

func (c *Config) fields() []configField {
	return []configField{
		{key: keyAccessToken, label: "Access Token", value: &c.AccessToken, secret: true},
		{key: keyEmail, label: "Email", value: &c.Email},
		{key: keyAPIVersion, label: "API Version", value: &c.APIVersion},
		{key: keyBaseURL, label: "Base URL", value: &c.BaseURL},
		{key: keyOutput, label: "Output", value: &c.Output},
		{key: keyCacheType, label: "Cache Type", value: &c.CacheType},
		{key: keyCacheLife, label: "Cache Life", value: &c.CacheLife},
		{key: keyNATSURL, label: "NATS URL", value: &c.NATSURL},
		{key: keyNATSBucket, label: "NATS Bucket", value: &c.NATSBucket},
	}
}

func (c *Config) field(key string) (configField, error) {
	for _, f := range c.fields() {
		if f.key == key {
			return f, nil
		}
	}

	return configField{}, fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
}

// masked returns a copy safe to display.
func (c *Config) masked() *Config {
	out := *c
	if out.AccessToken != "" {
		out.AccessToken = constants.MaskedSecret
	}

	return &out
}

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage pw CLI credentials and settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := loadConfig().masked()

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format != constants.FormatTable {
				return encode(cmd.OutOrStdout(), format, config)
			}

			rows := make([][]string, 0)

			for _, f := range config.fields() {
				value := *f.value
				if value == "" {
					value = constants.NotAvailable
				}

				rows = append(rows, []string{f.label, value})
			}

			return renderTable(cmd.OutOrStdout(), []string{"Property", "Value"}, rows)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd, args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd, args[0], "")
		},
	}
}

func setConfigValue(cmd *cobra.Command, key, value string) error {
	config := loadConfig()

	f, err := config.field(key)
	if err != nil {
		return err
	}

	*f.value = value

	err = saveConfig(config)
	if err != nil {
		return err
	}

	viper.Set(key, value)

	shown := value
	if f.secret && shown != "" {
		shown = constants.MaskedSecret
	}

	if value == "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, shown)
	}

	return nil
}

// loadConfig reads the persisted keys from viper, which merges the config
// file with PW_* environment variables and flags.
func loadConfig() *Config {
	config := &Config{}
	for _, f := range config.fields() {
		*f.value = viper.GetString(f.key)
	}

	return config
}

func saveConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configFile = filepath.Join(home, ".pw", "config.yml")
	}

	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
