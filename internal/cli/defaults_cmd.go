package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gantt2svg/internal/config"
)

func newDefaultsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration",
		Long:  "Print the built-in configuration, a starting point for a --config file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			case "toml":
				return toml.NewEncoder(out).Encode(cfg)
			default:
				return fmt.Errorf("unknown --format %q (want yaml or toml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or toml")
	return cmd
}
