// internal/printer/extract.go
package printer

import (
	"encoding/xml"
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The impression counters are matched against the raw document text instead
// of the schema model because observed firmware variants keep relocating
// them under different namespace prefixes and nesting. Both TotalImpressions
// patterns are needed: some firmware qualifies the element with a PEID
// attribute, others only expose it nested under pudyn:PrinterSubunit.
var (
	pagesWithPEIDRe = regexp.MustCompile(`<[^:>]*:?TotalImpressions[^>]*PEID="[^"]*"[^>]*>(\d+)</[^:>]*:?TotalImpressions>`)
	pagesSubunitRe  = regexp.MustCompile(`(?s)<pudyn:PrinterSubunit>.*?<[^:>]*:?TotalImpressions[^>]*>(\d+)</[^:>]*:?TotalImpressions>`)
	subscriptionRe  = regexp.MustCompile(`<[^:>]*:?SubscriptionImpressions[^>]*>(\d+)</[^:>]*:?SubscriptionImpressions>`)
)

// ExtractReading builds a Reading from the raw status-document text.
//
// Two independent paths run over the same document: the impression counters
// come from pattern search, the ink levels from structured decoding of the
// consumable subtree. Individual field misses degrade to 0 with a warning;
// only a structurally broken document returns a *ParseError, since that
// signals an incompatible device rather than a flaky field.
func ExtractReading(doc string) (*Reading, error) {
	pages := extractPagesPrinted(doc)
	subscription := extractSubscriptionImpressions(doc)

	var parsed productUsage
	if err := xml.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, &ParseError{Err: err}
	}
	if parsed.Consumables == nil {
		return nil, &ParseError{Err: errors.New("consumable subunit missing")}
	}

	if v, ok := parsed.Printer.TotalImpressions.Value(); ok && v != pages {
		slog.Debug("structured TotalImpressions disagrees with pattern match",
			"structured", v, "matched", pages)
	}

	var colourInk, blackInk int
	for _, c := range parsed.Consumables.Consumables {
		if c.PercentRemaining == "" {
			continue
		}
		switch c.MarkerColor {
		case markerColour:
			colourInk = parseInkPercent("colour", c.PercentRemaining)
		case markerBlack:
			blackInk = parseInkPercent("black", c.PercentRemaining)
		default:
			slog.Debug("skipping unrecognized consumable", "marker_color", c.MarkerColor)
		}
	}

	return &Reading{
		Timestamp:               time.Now().UTC(),
		PagesPrinted:            pages,
		SubscriptionImpressions: subscription,
		ColourInkLevel:          colourInk,
		BlackInkLevel:           blackInk,
	}, nil
}

// extractPagesPrinted pulls the total impression count out of the raw
// document, trying the PEID-attributed form first and the
// pudyn:PrinterSubunit-nested form second. Misses yield 0.
func extractPagesPrinted(doc string) int {
	if m := pagesWithPEIDRe.FindStringSubmatch(doc); m != nil {
		if pages, err := strconv.Atoi(m[1]); err == nil {
			slog.Debug("found TotalImpressions with PEID", "pages", pages)
			return pages
		}
	}

	if m := pagesSubunitRe.FindStringSubmatch(doc); m != nil {
		if pages, err := strconv.Atoi(m[1]); err == nil {
			slog.Debug("found TotalImpressions under pudyn:PrinterSubunit", "pages", pages)
			return pages
		}
	}

	slog.Warn("could not extract pages printed from status document")
	return 0
}

// extractSubscriptionImpressions pulls the plan-billed impression count out
// of the raw document. Misses yield 0.
func extractSubscriptionImpressions(doc string) int {
	if m := subscriptionRe.FindStringSubmatch(doc); m != nil {
		if impressions, err := strconv.Atoi(m[1]); err == nil {
			slog.Debug("found SubscriptionImpressions", "impressions", impressions)
			return impressions
		}
	}

	slog.Warn("could not extract subscription impressions from status document")
	return 0
}

// parseInkPercent parses a consumable's remaining-percentage string.
// Malformed or negative values clamp to 0 with a warning; values above 100
// pass through, the source is not strictly validated.
func parseInkPercent(channel, raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		slog.Warn("could not parse ink percentage", "channel", channel, "value", raw)
		return 0
	}
	return n
}
