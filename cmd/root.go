// cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inkmon/inkstat/internal/config"
	"github.com/inkmon/inkstat/internal/logging"
	"github.com/inkmon/inkstat/internal/printer"
)

var (
	printerHost    string
	outputFormat   string
	timeoutSeconds int
	verbose        bool
	noColor        bool
)

// rootCmd represents the base command when called without any subcommands.
// It fetches a reading from the printer and renders it.
var rootCmd = &cobra.Command{
	Use:   "inkstat",
	Short: "Query HP printer page usage and ink levels",
	Long: `inkstat queries an HP printer on the local network for page usage and
ink levels via its embedded status endpoint. No cloud account is involved;
the printer is asked directly over plain HTTP.`,
	Example: `  # Query a printer by IP
  inkstat --printer 192.168.1.13

  # JSON output for scripting
  inkstat --printer hp-printer.local --format json

  # Remember the printer for next time
  inkstat config --set-printer 192.168.1.13`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		if verbose {
			// Log the full command that was run
			fullCmd := "inkstat"
			if cmd.Name() != "inkstat" {
				fullCmd += " " + cmd.Name()
			}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if f.Value.Type() == "bool" {
					fullCmd += " --" + f.Name
				} else {
					fullCmd += " --" + f.Name + "=" + f.Value.String()
				}
			})
			if len(args) > 0 {
				fullCmd += " " + strings.Join(args, " ")
			}
			slog.Debug("command", "invocation", fullCmd)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if noColor {
			disableColor()
		}
		if outputFormat != formatTable && outputFormat != formatJSON {
			fmt.Fprintf(os.Stderr, "Unknown format %q (expected %s or %s)\n", outputFormat, formatTable, formatJSON)
			os.Exit(1)
		}

		cfgPath, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}

		var endpoint string
		switch {
		case printerHost != "":
			endpoint = printer.NormalizeEndpoint(printerHost)
		case cfg.PrinterURL != "":
			endpoint = cfg.PrinterURL
		default:
			fmt.Fprintln(os.Stderr, "No printer specified. Use --printer <host> or set a default with 'inkstat config --set-printer <host>'")
			fmt.Fprintln(os.Stderr, "Example: inkstat --printer 192.168.1.13")
			os.Exit(1)
		}

		timeout := cfg.TimeoutSeconds
		if cmd.Flags().Changed("timeout") {
			timeout = timeoutSeconds
		}

		slog.Debug("using printer", "endpoint", endpoint, "timeout_seconds", timeout, "format", outputFormat)

		client := printer.NewClient(printer.ClientConfig{
			URL:     endpoint,
			Timeout: time.Duration(timeout) * time.Second,
		})

		reading, err := client.FetchReading(context.Background())
		if err != nil {
			reportFetchError(endpoint, err)
			os.Exit(1)
		}

		output, err := renderReading(reading, outputFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not render reading: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
		printAlerts(reading)

		// Best-effort bookkeeping so 'config --show' reports when telemetry
		// was last retrieved.
		now := time.Now().UTC()
		cfg.LastUpdated = &now
		if err := cfg.Save(cfgPath); err != nil {
			slog.Warn("could not record last update time", "err", err)
		}
	},
}

// reportFetchError prints user-actionable guidance for the two failure
// kinds: connectivity problems vs device-compatibility problems.
func reportFetchError(endpoint string, err error) {
	var netErr *printer.NetworkError
	var parseErr *printer.ParseError

	switch {
	case errors.As(err, &netErr):
		fmt.Fprintf(os.Stderr, "Could not connect to printer at %s\n", endpoint)
		fmt.Fprintln(os.Stderr, "Please check that the printer is powered on and the URL is correct")
		fmt.Fprintf(os.Stderr, "Network error: %v\n", netErr.Err)
	case errors.As(err, &parseErr):
		fmt.Fprintln(os.Stderr, "Failed to parse the printer's status document")
		fmt.Fprintln(os.Stderr, "Your printer firmware may expose a different XML format than expected")
		fmt.Fprintf(os.Stderr, "Parsing error: %v\n", parseErr.Err)
	default:
		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colorized output")

	rootCmd.Flags().StringVarP(&printerHost, "printer", "p", "", "Printer URL/hostname/IP (the status-document path is added automatically)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", formatTable, "Output format (table|json)")
	rootCmd.Flags().IntVarP(&timeoutSeconds, "timeout", "t", config.DefaultTimeoutSeconds, "Request timeout in seconds")
}
