// internal/printer/endpoint.go
package printer

import "strings"

// UsagePath is the status-document path exposed by HP LEDM firmware.
const UsagePath = "/DevMgmt/ProductUsageDyn.xml"

// NormalizeEndpoint turns a user-supplied host, IP, or URL fragment into the
// canonical status-document URL. Printer endpoints are almost always plain
// unauthenticated HTTP on a LAN, so a bare IP is enough:
//
//	192.168.1.13          -> http://192.168.1.13/DevMgmt/ProductUsageDyn.xml
//	https://printer.local -> https://printer.local/DevMgmt/ProductUsageDyn.xml
//
// Inputs already containing the status-document path pass through unchanged,
// which makes the function idempotent.
func NormalizeEndpoint(input string) string {
	if strings.Contains(input, UsagePath) {
		return input
	}
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return strings.TrimRight(input, "/") + UsagePath
	}
	return "http://" + input + UsagePath
}
