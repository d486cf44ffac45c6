package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
)

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the pw CLI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			type VersionInfo struct {
				Version string `json:"version" yaml:"version"`
				Library string `json:"library" yaml:"library"`
				Commit  string `json:"commit"  yaml:"commit"`
				Built   string `json:"built"   yaml:"built"`
			}

			versionInfo := VersionInfo{
				Version: version,
				Library: constants.Version,
				Commit:  commit,
				Built:   date,
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format != constants.FormatTable {
				return encode(cmd.OutOrStdout(), format, versionInfo)
			}

			return renderTable(cmd.OutOrStdout(), []string{"Property", "Value"}, [][]string{
				{"Version", version},
				{"Library", constants.Version},
				{"Commit", commit},
				{"Built", date},
			})
		},
	}
}
