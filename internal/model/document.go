package model

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document parses Content into a queryable document.
func (r *FetchResult) Document() (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.Content))
	if err != nil {
		return nil, fmt.Errorf("parse content of %s: %w", r.URL, err)
	}
	return doc, nil
}

// Title returns the page title, or "" when the content has none.
func (r *FetchResult) Title() (string, error) {
	doc, err := r.Document()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}

// Links returns the href of every anchor in the content, as written. Anchors
// without an href are skipped; no resolution against the page URL happens.
func (r *FetchResult) Links() ([]string, error) {
	doc, err := r.Document()
	if err != nil {
		return nil, err
	}
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	return links, nil
}
