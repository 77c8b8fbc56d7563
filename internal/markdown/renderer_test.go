package markdown

import (
	"strings"
	"testing"
)

func TestRender_BasicMarkdown(t *testing.T) {
	t.Parallel()

	r := New()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"heading", "# Groceries", "<h1>Groceries</h1>"},
		{"emphasis", "buy **milk** today", "<strong>milk</strong>"},
		{"list", "- eggs\n- bread", "<li>eggs</li>"},
		{"link", "[docs](https://example.com)", `<a href="https://example.com">docs</a>`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			html, err := r.Render(tc.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(html, tc.want) {
				t.Errorf("html: got %q, want it to contain %q", html, tc.want)
			}
		})
	}
}

func TestRender_RawHTMLEscaped(t *testing.T) {
	t.Parallel()

	r := New()

	html, err := r.Render("<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("raw script tag passed through: %q", html)
	}
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	r := New()

	if _, err := r.Render(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
