// Package printer retrieves and decodes device-status telemetry from an
// HP printer's embedded /DevMgmt/ProductUsageDyn.xml endpoint.
//
// The extraction engine is deliberately layered: ink-consumable data has a
// stable structural shape across observed firmware and is decoded against a
// schema model, while the two impression counters are pulled out of the raw
// document text with pattern search because firmware updates keep moving
// them between namespace prefixes and nesting levels. The two paths fail
// independently so one vendor's quirky nesting cannot take down all
// telemetry.
package printer

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"
)

// Reading is a single snapshot of printer telemetry. It is always fully
// populated: fields whose extraction failed degrade to 0 rather than
// aborting the reading, so ink alerting keeps working when an unrelated
// counter goes missing.
type Reading struct {
	Timestamp               time.Time `json:"timestamp"`
	PagesPrinted            int       `json:"pages_printed"`
	SubscriptionImpressions int       `json:"subscription_impressions"`
	ColourInkLevel          int       `json:"colour_ink_level"`
	BlackInkLevel           int       `json:"black_ink_level"`
}

// Recognized MarkerColor tags. HP inkjets report the tri-colour cartridge
// as a single composite channel. Other tags (maintenance kits and the like)
// are skipped.
const (
	markerColour = "CyanMagentaYellow"
	markerBlack  = "Black"
)

// Schema model for the status document. Element names match on XML local
// name only, so any namespace prefix (pudyn:, ccdyn:, none) decodes the
// same way.
type productUsage struct {
	XMLName     xml.Name           `xml:"ProductUsageDyn"`
	Printer     printerSubunit     `xml:"PrinterSubunit"`
	Consumables *consumableSubunit `xml:"ConsumableSubunit"`
}

type printerSubunit struct {
	TotalImpressions        impressionCount `xml:"TotalImpressions"`
	SubscriptionImpressions impressionCount `xml:"SubscriptionImpressions"`
}

type consumableSubunit struct {
	Consumables []consumable `xml:"Consumable"`
}

type consumable struct {
	MarkerColor      string `xml:"MarkerColor"`
	LabelCode        string `xml:"ConsumableLabelCode"`
	PercentRemaining string `xml:"ConsumableRawPercentageLevelRemaining"`
}

// impressionCount normalizes the variant encodings of a numeric element
// observed across firmware revisions: plain text content, text content on
// an attribute-qualified element, or a value wrapped in a child element.
// Whichever shape matched, Value reports the numeric payload.
type impressionCount struct {
	value int
	ok    bool
}

func (c *impressionCount) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw struct {
		Text  string `xml:",chardata"`
		Inner string `xml:",innerxml"`
	}
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}

	text := strings.TrimSpace(raw.Text)
	if text == "" {
		text = firstDigitRun(raw.Inner)
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		// Not a count in any recognized shape; leave the value unset
		// rather than failing the whole document.
		return nil
	}
	c.value = n
	c.ok = true
	return nil
}

// Value returns the decoded count and whether any shape yielded one.
func (c impressionCount) Value() (int, bool) { return c.value, c.ok }

// firstDigitRun returns the first contiguous run of ASCII digits in s,
// or "" when s contains none.
func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
