// Package markdown renders the branded status comment body for a preview
// deployment. Rendering is pure string work: no I/O, no failures. Degenerate
// input (missing branding fields, empty URL) degrades to smaller output.
package markdown

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Branding customizes the optional sections of the rendered comment. Every
// field may be empty; empty fields fall back to a built-in default or drop
// their section entirely.
type Branding struct {
	Title        string
	Message      string
	Author       string
	ShareText    string // may contain {{url}}, substituted with the preview URL
	ShareURL     string // fallback share target when no preview URL is given
	DocsURL      string
	CommunityURL string
	SocialHandle string // "@handle" or a full profile URL
	Footer       string
}

// Options controls a single render. Now and Rand are injectable for tests;
// nil values wire the wall clock and math/rand.
type Options struct {
	Debug             bool
	Seed              string
	FirstContribution bool
	Status            string
	Branding          *Branding

	Pool []AsciiChoice
	Now  func() time.Time
	Rand func() float64
}

const (
	defaultStatus = "Ready"

	// Markdown code blocks trim trailing spaces, which mangles ASCII art.
	// Braille blank (U+2800) renders as whitespace but survives untouched.
	brailleBlank = "⠀"
	artLeftPad   = "  "

	defaultFirstTitle   = "Thank you for your first contribution!"
	defaultFirstMessage = "The docs preview for this pull request is live at the link below. A maintainer will review your changes shortly."

	profileBaseURL = "https://x.com/"
)

// Render produces the full comment body for a preview URL. Deterministic for
// a given (url, options) pair whenever a seed or URL is available.
func Render(previewURL string, opts Options) string {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	pool := opts.Pool
	if pool == nil {
		pool = DefaultPool
	}

	updated := now().UTC().Format(http.TimeFormat)
	status := opts.Status
	if status == "" {
		status = defaultStatus
	}

	var sections []string

	sections = append(sections, renderArt(previewURL, opts, pool))

	if opts.FirstContribution {
		sections = append(sections, renderFirstContribution(opts.Branding))
	}

	if previewURL != "" && updated != "" {
		sections = append(sections, renderPreviewTable(previewURL, status, updated))
	}

	branding := opts.Branding
	if branding != nil {
		if s := renderShare(previewURL, branding); s != "" {
			sections = append(sections, s)
		}
		if s := renderCommunity(branding); s != "" {
			sections = append(sections, s)
		}
		if branding.Footer != "" {
			sections = append(sections, "---\n"+branding.Footer)
		}
	}

	return strings.Join(sections, "\n\n")
}

func renderArt(previewURL string, opts Options, pool []AsciiChoice) string {
	if opts.Debug {
		blocks := make([]string, 0, len(pool))
		for _, c := range pool {
			blocks = append(blocks, fenceArt(c.Art))
		}
		return strings.Join(blocks, "\n\n")
	}

	if opts.FirstContribution {
		return fenceArt(firstContributionArt)
	}

	seed := opts.Seed
	if seed == "" {
		seed = previewURL
	}
	return fenceArt(PickWeightedAscii(pool, seed, opts.Rand))
}

func fenceArt(art string) string {
	return "```\n" + padArt(art) + "\n```"
}

// padArt makes the art survive Markdown rendering: spaces become braille
// blanks and every line gets a fixed left pad for centering.
func padArt(art string) string {
	lines := strings.Split(strings.ReplaceAll(art, " ", brailleBlank), "\n")
	for i, line := range lines {
		lines[i] = artLeftPad + line
	}
	return strings.Join(lines, "\n")
}

func renderFirstContribution(branding *Branding) string {
	title := defaultFirstTitle
	message := defaultFirstMessage
	author := ""
	if branding != nil {
		if branding.Title != "" {
			title = branding.Title
		}
		if branding.Message != "" {
			message = branding.Message
		}
		author = branding.Author
	}

	lines := []string{
		"> ### 🎉 " + title,
		">",
		"> " + message,
	}
	if author != "" {
		lines = append(lines, ">", "> — "+author)
	}
	return strings.Join(lines, "\n")
}

func renderPreviewTable(previewURL, status, updated string) string {
	return strings.Join([]string{
		"**Docs Preview**",
		"",
		"| Preview | Status | Updated (UTC) |",
		"| :--- | :--- | :--- |",
		fmt.Sprintf("| [Visit Preview](%s) | ✅ %s | %s |", previewURL, status, updated),
	}, "\n")
}

func renderShare(previewURL string, branding *Branding) string {
	if branding.ShareText == "" && branding.ShareURL == "" {
		return ""
	}

	target := previewURL
	if target == "" {
		target = branding.ShareURL
	}
	encodedTarget := url.QueryEscape(target)
	if encodedTarget == "" {
		return ""
	}

	text := branding.ShareText
	if previewURL != "" {
		text = strings.ReplaceAll(text, "{{url}}", previewURL)
	} else {
		text = strings.ReplaceAll(text, "{{url}}", "")
	}
	encodedText := url.QueryEscape(text)

	return strings.Join([]string{
		"<details>",
		"<summary>Share this preview</summary>",
		"",
		fmt.Sprintf("- [X (Twitter)](https://twitter.com/intent/tweet?text=%s&url=%s)", encodedText, encodedTarget),
		fmt.Sprintf("- [Mastodon](https://mastodon.social/share?text=%s%%20%s)", encodedText, encodedTarget),
		fmt.Sprintf("- [Reddit](https://www.reddit.com/submit?url=%s&title=%s)", encodedTarget, encodedText),
		fmt.Sprintf("- [LinkedIn](https://www.linkedin.com/sharing/share-offsite/?url=%s)", encodedTarget),
		"",
		"</details>",
	}, "\n")
}

func renderCommunity(branding *Branding) string {
	var items []string
	if branding.DocsURL != "" {
		items = append(items, fmt.Sprintf("- 📘 [Documentation](%s)", branding.DocsURL))
	}
	if branding.CommunityURL != "" {
		items = append(items, fmt.Sprintf("- 💬 [Community](%s)", branding.CommunityURL))
	}
	if branding.SocialHandle != "" {
		items = append(items, fmt.Sprintf("- 🐦 [Follow us](%s)", profileURL(branding.SocialHandle)))
	}
	if len(items) == 0 {
		return ""
	}

	lines := []string{
		"<details>",
		"<summary>Documentation and community</summary>",
		"",
	}
	lines = append(lines, items...)
	lines = append(lines, "", "</details>")
	return strings.Join(lines, "\n")
}

// profileURL turns "@handle" or "handle" into a full profile URL; values that
// are already URLs pass through.
func profileURL(handle string) string {
	if strings.HasPrefix(handle, "http://") || strings.HasPrefix(handle, "https://") {
		return handle
	}
	return profileBaseURL + strings.TrimPrefix(handle, "@")
}
