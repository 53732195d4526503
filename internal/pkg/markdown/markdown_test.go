package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render("**Nile view** apartments\n\n- gym\n- pool")
	for _, want := range []string{"<strong>Nile view</strong>", "<li>gym</li>", "<li>pool</li>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Render output %q missing %q", got, want)
		}
	}
}

func TestRenderDropsRawHTML(t *testing.T) {
	got := Render("hello <script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Fatalf("raw html leaked: %q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render("   "); got != "" {
		t.Fatalf("Render(blank) = %q", got)
	}
}
