package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/classlayout/pkg/layout"
)

// configCommand creates the config command that prints the effective layout
// configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the layout configuration as TOML",
		Long: `Print the layout configuration as TOML.

Without --config the defaults are printed, which makes a good starting point
for a config file:

  classlayout config > classlayout.toml
  classlayout layout diagram.json --config classlayout.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := layout.DefaultConfig()
			if !defaults {
				var err error
				if cfg, err = c.loadConfig(); err != nil {
					return err
				}
			}
			return writeConfig(os.Stdout, cfg)
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, "ignore --config and print the defaults")

	return cmd
}

func writeConfig(w io.Writer, cfg layout.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
