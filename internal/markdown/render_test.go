package markdown

import (
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
}

func TestRender_SeededIsDeterministic(t *testing.T) {
	opts := Options{Seed: "abc123", Now: fixedNow}

	first := Render("https://x.vercel.app", opts)
	for i := 0; i < 10; i++ {
		if got := Render("https://x.vercel.app", opts); got != first {
			t.Fatalf("render %d differs from first render:\n%s", i, got)
		}
	}
}

func TestRender_URLSeedsWhenNoSeedGiven(t *testing.T) {
	opts := Options{Now: fixedNow}

	first := Render("https://x.vercel.app", opts)
	second := Render("https://x.vercel.app", opts)
	if first != second {
		t.Fatal("same URL should produce identical renders")
	}
}

func TestRender_TimestampUsesHTTPDate(t *testing.T) {
	out := Render("https://x.vercel.app", Options{Seed: "s", Now: fixedNow})
	if !strings.Contains(out, "Sat, 14 Mar 2026 09:26:53 GMT") {
		t.Errorf("output missing HTTP-date timestamp:\n%s", out)
	}
}

func TestRender_StatusDefaultsToReady(t *testing.T) {
	out := Render("https://x.vercel.app", Options{Seed: "s", Now: fixedNow})
	if !strings.Contains(out, "✅ Ready") {
		t.Errorf("output missing default status:\n%s", out)
	}

	out = Render("https://x.vercel.app", Options{Seed: "s", Status: "Building", Now: fixedNow})
	if !strings.Contains(out, "✅ Building") {
		t.Errorf("output missing custom status:\n%s", out)
	}
}

func TestRender_PreviewTableRequiresURL(t *testing.T) {
	with := Render("https://x.vercel.app", Options{Seed: "s", Now: fixedNow})
	if !strings.Contains(with, "**Docs Preview**") {
		t.Error("expected preview table with a URL")
	}
	if !strings.Contains(with, "[Visit Preview](https://x.vercel.app)") {
		t.Error("preview table should link the URL")
	}

	without := Render("", Options{Seed: "s", Now: fixedNow})
	if strings.Contains(without, "**Docs Preview**") {
		t.Error("preview table should be omitted without a URL")
	}
}

func TestRender_ArtUsesBrailleBlanksAndLeftPad(t *testing.T) {
	out := Render("https://x.vercel.app", Options{Seed: "s", Now: fixedNow})

	if !strings.Contains(out, brailleBlank) {
		t.Error("art should substitute spaces with braille blanks")
	}

	inArt := false
	for _, line := range strings.Split(out, "\n") {
		switch {
		case line == "```":
			inArt = !inArt
		case inArt:
			if !strings.HasPrefix(line, artLeftPad) {
				t.Errorf("art line missing left pad: %q", line)
			}
			if strings.Contains(line[len(artLeftPad):], " ") {
				t.Errorf("art line still contains a plain space: %q", line)
			}
		}
	}
}

func TestRender_DebugShowsEveryChoice(t *testing.T) {
	pool := []AsciiChoice{
		{Art: "one", Weight: 1},
		{Art: "two", Weight: 0},
		{Art: "three", Weight: 2},
	}
	out := Render("https://x.vercel.app", Options{Debug: true, Pool: pool, Now: fixedNow})

	if got := strings.Count(out, "```"); got != 2*len(pool) {
		t.Errorf("debug render has %d fence markers, want %d", got, 2*len(pool))
	}
	for _, c := range pool {
		if !strings.Contains(out, artLeftPad+c.Art) {
			t.Errorf("debug render missing art %q", c.Art)
		}
	}
}

func TestRender_FirstContribution(t *testing.T) {
	pool := []AsciiChoice{{Art: "pool-art-marker", Weight: 1}}
	out := Render("https://x.vercel.app", Options{
		FirstContribution: true,
		Pool:              pool,
		Now:               fixedNow,
	})

	if strings.Contains(out, "pool-art-marker") {
		t.Error("first-contribution render should not use the pool art")
	}
	if !strings.Contains(out, "first") {
		t.Error("first-contribution banner art missing")
	}
	if !strings.Contains(out, "> ### 🎉 "+defaultFirstTitle) {
		t.Error("blockquote title missing or not defaulted")
	}
	if !strings.Contains(out, "> "+defaultFirstMessage) {
		t.Error("blockquote message missing or not defaulted")
	}
}

func TestRender_FirstContributionBrandingOverrides(t *testing.T) {
	out := Render("https://x.vercel.app", Options{
		FirstContribution: true,
		Now:               fixedNow,
		Branding: &Branding{
			Title:   "Welcome aboard",
			Message: "Thanks for the patch.",
			Author:  "The Docs Team",
		},
	})

	for _, want := range []string{"> ### 🎉 Welcome aboard", "> Thanks for the patch.", "> — The Docs Team"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_ShareSection(t *testing.T) {
	out := Render("https://x.vercel.app", Options{
		Seed: "s",
		Now:  fixedNow,
		Branding: &Branding{
			ShareText: "Check out the preview at {{url}}!",
		},
	})

	if !strings.Contains(out, "<summary>Share this preview</summary>") {
		t.Fatal("share section missing")
	}
	// {{url}} substituted, then percent-encoded.
	if !strings.Contains(out, "Check+out+the+preview+at+https%3A%2F%2Fx.vercel.app%21") {
		t.Errorf("share text not substituted/encoded:\n%s", out)
	}
	for _, link := range []string{"twitter.com/intent/tweet", "mastodon.social/share", "reddit.com/submit", "linkedin.com/sharing"} {
		if !strings.Contains(out, link) {
			t.Errorf("share section missing %s link", link)
		}
	}
}

func TestRender_ShareSectionOmittedWithoutTarget(t *testing.T) {
	out := Render("", Options{
		Seed: "s",
		Now:  fixedNow,
		Branding: &Branding{
			ShareText: "Check this out {{url}}",
		},
	})
	if strings.Contains(out, "Share this preview") {
		t.Error("share section should be omitted when no target URL exists")
	}
}

func TestRender_ShareFallsBackToShareURL(t *testing.T) {
	out := Render("", Options{
		Seed: "s",
		Now:  fixedNow,
		Branding: &Branding{
			ShareText: "Read the docs {{url}}",
			ShareURL:  "https://docs.example.com",
		},
	})
	if !strings.Contains(out, "url=https%3A%2F%2Fdocs.example.com") {
		t.Errorf("share target should fall back to branding share URL:\n%s", out)
	}
	// {{url}} is emptied when there is no preview URL.
	if strings.Contains(out, "{{url}}") {
		t.Error("unsubstituted {{url}} left in output")
	}
}

func TestRender_CommunitySection(t *testing.T) {
	out := Render("https://x.vercel.app", Options{
		Seed: "s",
		Now:  fixedNow,
		Branding: &Branding{
			DocsURL:      "https://docs.example.com",
			SocialHandle: "@exampledocs",
		},
	})

	if !strings.Contains(out, "<summary>Documentation and community</summary>") {
		t.Fatal("community section missing")
	}
	if !strings.Contains(out, "[Documentation](https://docs.example.com)") {
		t.Error("docs link missing")
	}
	if !strings.Contains(out, "[Follow us]("+profileBaseURL+"exampledocs)") {
		t.Error("social handle not normalized to a profile URL")
	}
	if strings.Contains(out, "[Community]") {
		t.Error("absent community URL should not render a link")
	}
}

func TestProfileURL(t *testing.T) {
	tests := []struct {
		handle string
		want   string
	}{
		{"@exampledocs", profileBaseURL + "exampledocs"},
		{"exampledocs", profileBaseURL + "exampledocs"},
		{"https://mastodon.social/@exampledocs", "https://mastodon.social/@exampledocs"},
	}
	for _, tt := range tests {
		if got := profileURL(tt.handle); got != tt.want {
			t.Errorf("profileURL(%q) = %q, want %q", tt.handle, got, tt.want)
		}
	}
}

func TestRender_Footer(t *testing.T) {
	out := Render("https://x.vercel.app", Options{
		Seed:     "s",
		Now:      fixedNow,
		Branding: &Branding{Footer: "Powered by the docs pipeline."},
	})
	if !strings.HasSuffix(out, "---\nPowered by the docs pipeline.") {
		t.Errorf("footer missing or misplaced:\n%s", out)
	}
}

func TestRender_NoBrandingLeavesNoArtifacts(t *testing.T) {
	out := Render("https://x.vercel.app", Options{Seed: "s", Now: fixedNow})

	if strings.Contains(out, "<details>") {
		t.Error("no branding should mean no collapsible sections")
	}
	if strings.Contains(out, "\n\n\n") {
		t.Error("omitted sections left stray blank lines")
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("output should not end with a trailing newline")
	}
}
