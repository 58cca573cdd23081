// cmd/output.go
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/inkmon/inkstat/internal/printer"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// lowInkThreshold is the remaining-percentage at or below which an ink
// channel triggers an alert.
const lowInkThreshold = 20

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	infoColor   = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	alertColor  = color.New(color.FgRed, color.Bold)
	labelColor  = color.New(color.Bold)
)

func disableColor() {
	color.NoColor = true
}

// renderReading renders a reading in the requested format.
func renderReading(r *printer.Reading, format string) (string, error) {
	if format == formatJSON {
		return renderJSON(r)
	}
	return renderTable(r), nil
}

// renderTable produces the human-facing metric/value table.
func renderTable(r *printer.Reading) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\n", labelColor.Sprint("Metric"), labelColor.Sprint("Value"))
	fmt.Fprintf(w, "Subscription Pages\t%d\n", r.SubscriptionImpressions)
	fmt.Fprintf(w, "Total Pages\t%d\n", r.PagesPrinted)
	fmt.Fprintf(w, "Colour Ink Remaining\t%d%%\n", r.ColourInkLevel)
	fmt.Fprintf(w, "Black Ink Remaining\t%d%%\n", r.BlackInkLevel)
	fmt.Fprintf(w, "Last Updated\t%s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05 MST"))
	w.Flush()

	return strings.TrimRight(sb.String(), "\n")
}

// renderJSON produces the pretty-printed machine-facing rendering.
func renderJSON(r *printer.Reading) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// lowInkAlerts returns one alert line per channel at or below the
// threshold.
func lowInkAlerts(r *printer.Reading) []string {
	var alerts []string
	if r.ColourInkLevel <= lowInkThreshold {
		alerts = append(alerts, fmt.Sprintf("LOW COLOUR INK: %d%% remaining", r.ColourInkLevel))
	}
	if r.BlackInkLevel <= lowInkThreshold {
		alerts = append(alerts, fmt.Sprintf("LOW BLACK INK: %d%% remaining", r.BlackInkLevel))
	}
	return alerts
}

// printAlerts writes low-ink alerts to stderr so they survive piping of the
// rendered output.
func printAlerts(r *printer.Reading) {
	alerts := lowInkAlerts(r)
	if len(alerts) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s\n", alertColor.Sprint("ALERTS:"))
	for _, alert := range alerts {
		fmt.Fprintf(os.Stderr, "  %s\n", warnColor.Sprint(alert))
	}
}
