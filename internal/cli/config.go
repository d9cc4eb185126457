package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codeforge/codeforge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage codeforge configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig, buildOverrides())
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		fmt.Fprint(os.Stdout, string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configShowCmd.Flags().StringVar(&flagConfig, "config", "", "Config file path (default: .codeforge.yaml)")
}
