package templates

import (
	"strings"
	"testing"
)

func TestRenderer_PlanDigest(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data := PlanDigestData{
		Week:    2,
		PlanURL: "https://mealsync.example",
		Lines: []DigestLine{
			{Label: "Current Week Total", Actual: "880.00", Target: "840.00", Delta: "-40.00", Over: true},
			{Label: "Sunday Total", Actual: "0.00", Target: "2140.00", Delta: "+2140.00"},
		},
	}

	html, text, err := r.Render("plan_digest", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// html/template escapes "+" as "&#43;".
	for _, want := range []string{"week 2", "Current Week Total", "-40.00", "&#43;2140.00", "#cf1124", "#0e7c3a", "https://mealsync.example"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected HTML to contain %q", want)
		}
	}
	for _, want := range []string{
		"Current Week Total: 880.00 of 840.00 (-40.00)",
		"Sunday Total: 0.00 of 2140.00 (+2140.00)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected text body to contain %q:\n%s", want, text)
		}
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := r.Render("missing", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}
