// Package urlutil holds small URL rewriting helpers for fetch targets.
package urlutil

import "strings"

const (
	googleSheetPrefix = "https://docs.google.com/spreadsheets/d/"
	sheetEditToken    = "edit#gid="
	sheetExportToken  = "export?format=csv&gid="
)

// GoogleSheetExportURL rewrites a Google Sheets edit link into the URL that
// downloads the sheet as CSV. Anything that is not a sheet edit link is
// returned unchanged.
func GoogleSheetExportURL(rawURL string) string {
	if !strings.HasPrefix(rawURL, googleSheetPrefix) || !strings.Contains(rawURL, sheetEditToken) {
		return rawURL
	}
	return strings.Replace(rawURL, sheetEditToken, sheetExportToken, 1)
}
