// cmd/config.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inkmon/inkstat/internal/config"
	"github.com/inkmon/inkstat/internal/printer"
)

var (
	showConfig  bool
	setPrinter  string
	setTimeout  int
	resetConfig bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change the persisted defaults",
	Long: `Manages the persisted configuration: the default printer endpoint, the
request timeout, and the time of the last successful reading. The file is
created on first write.`,
	Example: `  inkstat config --show
  inkstat config --set-printer 192.168.1.13
  inkstat config --set-timeout 10
  inkstat config --reset`,
	Run: func(cmd *cobra.Command, args []string) {
		if noColor {
			disableColor()
		}

		path, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}

		if err := runConfig(path); err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if resetConfig {
		if err := config.Default().Save(path); err != nil {
			return err
		}
		infoColor.Println("Configuration reset to defaults")
		return nil
	}

	if showConfig {
		headerColor.Println("Current configuration:")
		fmt.Printf("# %s\n", path)
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	changed := false

	if setPrinter != "" {
		normalized := printer.NormalizeEndpoint(setPrinter)
		cfg.PrinterURL = normalized
		changed = true
		fmt.Printf("%s %s\n", infoColor.Sprint("Set default printer:"), normalized)
	}

	if setTimeout > 0 {
		cfg.TimeoutSeconds = setTimeout
		changed = true
		fmt.Printf("%s %d\n", infoColor.Sprint("Set default timeout:"), setTimeout)
	}

	if !changed {
		fmt.Println("No configuration changes made. Use --help to see available options.")
		return nil
	}

	if err := cfg.Save(path); err != nil {
		return err
	}
	infoColor.Println("Configuration saved")
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&showConfig, "show", false, "Show current configuration")
	configCmd.Flags().StringVar(&setPrinter, "set-printer", "", "Set the default printer host/URL")
	configCmd.Flags().IntVar(&setTimeout, "set-timeout", 0, "Set the default timeout in seconds")
	configCmd.Flags().BoolVar(&resetConfig, "reset", false, "Reset configuration to defaults")
}
