package tracker

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesolver12/weight-loss-tracker/internal/app"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change tracker configuration",
}

var configShowOutput string

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration (flags, TRACKER_* env, config file, defaults)",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := service.ParseReportFormat(configShowOutput)
		if err != nil {
			return err
		}
		switch format {
		case service.FormatJSON, service.FormatYAML:
			return service.Encode(cmd.OutOrStdout(), settings, format)
		case service.FormatText:
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", app.KeyDB, settings.DBPath)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", app.KeyLogLevel, settings.LogLevel)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", app.KeyRollingWindow, settings.RollingWindow)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", app.KeyPhotoDir, settings.PhotoDir)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", app.KeyBackupDir, settings.BackupDir)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", app.KeyServeAddr, settings.ServeAddr)
			return nil
		default:
			return fmt.Errorf("invalid --output %q (use text|json|yaml)", configShowOutput)
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value to the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			def, err := app.DefaultConfigPath()
			if err != nil {
				return err
			}
			path = def
		}
		if err := app.SetConfigValue(path, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
	configShowCmd.Flags().StringVar(&configShowOutput, "output", "text", "Output format: text|json|yaml")
}
