package newsletter

import (
	"strings"
	"testing"

	"github.com/Ripley-h/newsgen/internal/news"
)

func sampleDoc(format Format) Document {
	return Document{
		Title:  "Tech Daily",
		Topic:  "AI",
		Format: format,
		Items: []Item{
			{Article: news.Article{Title: "A", URL: "https://a.com"}, Summary: "Summary of A."},
			{Article: news.Article{Title: "B", URL: "https://b.com"}, Summary: "Summary of B."},
		},
	}
}

func TestRenderEmptyList(t *testing.T) {
	for _, format := range []Format{FormatText, FormatHTML} {
		got, err := Render(Document{Title: "T", Topic: "x", Format: format})
		if err != nil {
			t.Fatalf("%s: render: %v", format, err)
		}
		if got != NoArticlesMessage {
			t.Errorf("%s: expected no-articles message, got %q", format, got)
		}
	}
}

func TestRenderTextScenario(t *testing.T) {
	got, err := Render(sampleDoc(FormatText))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.HasPrefix(got, "# Tech Daily\n") {
		t.Errorf("expected title header, got %q", got[:40])
	}
	if !strings.Contains(got, "Here's your daily update on AI:") {
		t.Error("expected topic intro line")
	}

	if n := strings.Count(got, "## "); n != 2 {
		t.Errorf("expected 2 article headings, got %d", n)
	}
	iA := strings.Index(got, "## A")
	iB := strings.Index(got, "## B")
	if iA < 0 || iB < 0 || iA > iB {
		t.Errorf("articles out of source order: A at %d, B at %d", iA, iB)
	}

	secA := got[iA:iB]
	if !strings.Contains(secA, "Summary of A.") {
		t.Error("section A missing its summary")
	}
	if !strings.Contains(secA, "[Read more](https://a.com)") {
		t.Error("section A missing read-more link")
	}
	if !strings.Contains(got[iB:], "[Read more](https://b.com)") {
		t.Error("section B missing read-more link")
	}
	if !strings.Contains(got, "We hope you enjoyed this update.") {
		t.Error("expected closing boilerplate")
	}
}

func TestRenderHTMLStructure(t *testing.T) {
	got, err := Render(sampleDoc(FormatHTML))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Error("expected a complete HTML document")
	}
	if !strings.Contains(got, "<h1>Tech Daily</h1>") {
		t.Error("expected title heading")
	}
	if !strings.Contains(got, "Here's your daily update on AI:") {
		t.Error("expected intro paragraph naming the topic")
	}

	// One block per article, n-1 separators for n articles.
	if n := strings.Count(got, `<div class="article">`); n != 2 {
		t.Errorf("expected 2 article blocks, got %d", n)
	}
	if n := strings.Count(got, `<hr class="divider">`); n != 1 {
		t.Errorf("expected 1 separator for 2 articles, got %d", n)
	}
	if !strings.Contains(got, `<a class="cta" href="https://a.com">Read more</a>`) {
		t.Error("expected call-to-action link")
	}
	if !strings.Contains(got, `<div class="footer">`) {
		t.Error("expected footer block")
	}
}

func TestRenderHTMLSeparatorCount(t *testing.T) {
	doc := sampleDoc(FormatHTML)
	for i := 3; i <= 5; i++ {
		doc.Items = append(doc.Items, Item{
			Article: news.Article{Title: "X", URL: "https://x.com"},
			Summary: "S.",
		})
		got, err := Render(doc)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if n := strings.Count(got, `<div class="article">`); n != i {
			t.Errorf("%d articles: expected %d blocks, got %d", i, i, n)
		}
		if n := strings.Count(got, `<hr class="divider">`); n != i-1 {
			t.Errorf("%d articles: expected %d separators, got %d", i, i-1, n)
		}
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	doc := Document{
		Title:  "T",
		Topic:  "x",
		Format: FormatHTML,
		Items: []Item{
			{Article: news.Article{Title: "<script>alert(1)</script>", URL: "https://a.com"}, Summary: "S & T."},
		},
	}
	got, err := Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<script>alert(1)</script>") {
		t.Error("article title not escaped")
	}
	if !strings.Contains(got, "S &amp; T.") {
		t.Error("summary not escaped")
	}
}

func TestRenderIdempotent(t *testing.T) {
	for _, format := range []Format{FormatText, FormatHTML} {
		first, err := Render(sampleDoc(format))
		if err != nil {
			t.Fatalf("%s: first render: %v", format, err)
		}
		second, err := Render(sampleDoc(format))
		if err != nil {
			t.Fatalf("%s: second render: %v", format, err)
		}
		if first != second {
			t.Errorf("%s: renders differ for identical input", format)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"html", FormatHTML, false},
		{"", FormatHTML, false},
		{"markdown", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
