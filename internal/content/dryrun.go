package content

import (
	"fmt"
	"strings"

	"github.com/ObiAU/contentagents/internal/models"
	"github.com/ObiAU/contentagents/internal/textutil"
)

const dryRunFooter = "---\n*Generated in dry-run mode*"

const dryRunCritique = `## Self-Critique

- [ ] Structure is clear and logical
- [ ] Content is engaging and informative
- [ ] SEO elements are present
- [ ] Grammar and style are polished

` + dryRunFooter

const dryRunSEO = `## SEO Checklist

- [ ] Title is compelling (50-60 chars)
- [ ] Meta description is descriptive (150-160 chars)
- [ ] Headings use proper hierarchy (H1, H2, H3)
- [ ] Keywords are naturally integrated
- [ ] Internal/external links are present
- [ ] Images have alt text (if applicable)
- [ ] Content length is appropriate (1000+ words)
- [ ] URL structure is clean

` + dryRunFooter

func dryRunOutline(topic string) string {
	return fmt.Sprintf(`# Outline: %s

## Introduction
- Hook and context
- Main thesis

## Main Points
1. [Point 1]
2. [Point 2]
3. [Point 3]

## Conclusion
- Summary
- Call to action

`, topic) + dryRunFooter
}

func dryRunDraft(outline string) string {
	return fmt.Sprintf(`# DRAFT: %s

%s

## Full Content Would Be Generated Here

This is a placeholder draft. Set OPENAI_API_KEY to enable full content generation.

`, outlineTitle(outline), outline) + dryRunFooter
}

// outlineTitle takes the title from the outline's leading heading, dropping
// the "Outline:" label that generated outlines carry.
func outlineTitle(outline string) string {
	if !strings.HasPrefix(strings.TrimSpace(outline), "#") {
		return "Untitled"
	}
	title := textutil.FirstHeading(outline)
	title = strings.TrimSpace(strings.TrimPrefix(title, "Outline:"))
	if title == "" {
		return "Untitled"
	}
	return title
}

func draftTitle(draft string) string {
	title := textutil.FirstHeading(draft)
	title = strings.TrimSpace(strings.TrimPrefix(title, "DRAFT:"))
	if title == "" {
		return "Untitled"
	}
	return title
}

// draftExcerpt is the first non-heading paragraph text of a draft.
func draftExcerpt(draft string) string {
	for _, line := range strings.Split(draft, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "---") {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
	}
	return ""
}

func dryRunSnippets(draft string) models.SnippetSet {
	title := draftTitle(draft)
	excerpt := textutil.Truncate(draftExcerpt(draft), 200)

	return models.SnippetSet{
		Kind: models.SnippetsStructured,
		Posts: map[string]string{
			models.PlatformTelegram: fmt.Sprintf("📝 %s\n\n%s...\n\nRead more: [URL]", title, excerpt),
			models.PlatformFacebook: fmt.Sprintf("%s\n\n%s...\n\nRead more: [URL]", title, excerpt),
			models.PlatformTwitter:  textutil.Truncate(fmt.Sprintf("%s\n\n%s #blog #tech", title, textutil.Truncate(excerpt, 120)), 280),
		},
	}
}
