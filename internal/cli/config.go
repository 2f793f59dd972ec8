package cli

// ABOUTME: CLI commands for reading and writing tmpsweep config.yaml settings.

import (
	"fmt"

	"github.com/kstenerud/tmpsweep/internal/sweep"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get or set configuration values",
	}

	cmd.AddCommand(
		newConfigGetCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print configuration value(s)",
		Long: `Print configuration values from ~/.tmpsweep/config.yaml.

Without arguments, prints the entire config file.
With a key (e.g., threshold), prints just that value.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				data, err := sweep.ReadConfigRaw()
				if err != nil {
					return err
				}
				if data != nil {
					_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
					return err
				}
				return nil
			}

			value, found, err := sweep.GetConfigValue(args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s is not set", args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in ~/.tmpsweep/config.yaml.

Keys: root, threshold, consider_access_time, pattern, jobs.
Creates the config file if it doesn't exist.
Preserves comments and formatting.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return sweep.UpdateConfigFields(map[string]string{
				args[0]: args[1],
			})
		},
	}
}
