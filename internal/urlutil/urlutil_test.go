package urlutil

import "testing"

func TestGoogleSheetExportURL(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"edit link rewritten",
			"https://docs.google.com/spreadsheets/d/abc123/edit#gid=42",
			"https://docs.google.com/spreadsheets/d/abc123/export?format=csv&gid=42",
		},
		{
			"non-sheet url unchanged",
			"https://example.com/edit#gid=42",
			"https://example.com/edit#gid=42",
		},
		{
			"sheet link without edit token unchanged",
			"https://docs.google.com/spreadsheets/d/abc123/view",
			"https://docs.google.com/spreadsheets/d/abc123/view",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GoogleSheetExportURL(tc.in); got != tc.want {
				t.Errorf("GoogleSheetExportURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
