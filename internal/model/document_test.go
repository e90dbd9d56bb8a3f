package model

import "testing"

const samplePage = `<html><head><title> Example Page </title></head>
<body>
<a href="/one">one</a>
<a href="https://other.example.com/two">two</a>
<a>no href</a>
</body></html>`

func TestFetchResultTitle(t *testing.T) {
	t.Parallel()
	r := &FetchResult{Content: samplePage, URL: "https://example.com/"}
	title, err := r.Title()
	if err != nil {
		t.Fatalf("Title() error: %v", err)
	}
	if title != "Example Page" {
		t.Errorf("Title() = %q, want %q", title, "Example Page")
	}
}

func TestFetchResultLinks(t *testing.T) {
	t.Parallel()
	r := &FetchResult{Content: samplePage, URL: "https://example.com/"}
	links, err := r.Links()
	if err != nil {
		t.Fatalf("Links() error: %v", err)
	}
	want := []string{"/one", "https://other.example.com/two"}
	if len(links) != len(want) {
		t.Fatalf("Links() = %v, want %v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("Links()[%d] = %q, want %q", i, links[i], want[i])
		}
	}
}

func TestFetchResultTitleEmptyContent(t *testing.T) {
	t.Parallel()
	r := &FetchResult{}
	title, err := r.Title()
	if err != nil {
		t.Fatalf("Title() error: %v", err)
	}
	if title != "" {
		t.Errorf("Title() = %q, want empty", title)
	}
}
