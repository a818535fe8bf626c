package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("**bold** and [link](https://example.com)")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("expected bold markup, got %q", out)
	}
	if !strings.Contains(out, `target="_blank"`) {
		t.Errorf("expected external links to open in a new tab, got %q", out)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := RenderMarkdown(`hello <script>alert("x")</script>`)
	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
}
