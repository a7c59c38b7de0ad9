package ai

import (
	"fmt"
	"strings"
)

const ContentSystemPrompt = `You are a skilled tech blog editor specializing in AI, technology, and research topics. You:

1. Create compelling outlines from topics or research drafts
2. Expand outlines into full drafts with engaging content
3. Critique and improve content quality
4. Optimize posts for SEO with proper metadata and structure
5. Write social media snippets for promotion

Writing style: professional but accessible to technical audiences, clear and concise, with
examples, practical insights and actionable takeaways.

SEO guidelines: titles of 50-60 characters, meta descriptions of 150-160 characters, proper
H1/H2/H3 hierarchy, natural keyword use, internal and external links, 1000+ words.`

const ResearchSystemPrompt = `You are a research assistant specializing in technology and AI topics.
Analyze the topic, extract key insights from the provided sources and synthesize them into a
structured Markdown draft with headings, attributed quotes and links to sources. Keep a
professional but accessible tone with an introduction, main points and a conclusion.`

const DevSystemPrompt = `You are a senior maintainer triaging GitHub issues. Reply ONLY with valid JSON.`

func OutlinePrompt(topic string) string {
	return fmt.Sprintf(`Create a comprehensive outline for a blog post about: "%s"

Requirements:
1. Introduction - hook the reader and establish context
2. Main Content - 3-5 key sections with clear focus
3. Conclusion - summarize key points and provide takeaways
4. Call to Action - what should readers do next?

Use clear, descriptive Markdown headings, subheadings for complex sections and bullet points
for key ideas. The audience is technical professionals who value depth and practical analysis.
The outline should support a 1500-2000 word article.`, topic)
}

func DraftExpansionPrompt(outline, additionalContext string) string {
	if strings.TrimSpace(additionalContext) == "" {
		additionalContext = "None."
	}
	return fmt.Sprintf(`Expand the following outline into a complete blog post.

## Outline:
%s

## Requirements:
1. Introduction - engaging hook and clear thesis
2. Main Content - develop each section with examples and insights
3. Conclusion - summarize key points and provide actionable takeaways
4. SEO Elements - natural keyword integration and proper structure

Use proper Markdown formatting and target 1500-2000 words.

## Additional Context:
%s

Create a complete, publishable blog post.`, outline, additionalContext)
}

func SelfCritiquePrompt(draft string) string {
	return fmt.Sprintf(`Critically review the following blog post.

## Post:
%s

Evaluate structure and flow, clarity, technical accuracy, engagement, SEO optimization and
value to readers. Provide specific strengths and weaknesses, concrete suggestions for
improvement, and areas that need more detail. Be constructive and specific.`, draft)
}

func SEOChecklistPrompt(draft string) string {
	return fmt.Sprintf(`Analyze the following blog post for SEO optimization.

## Post:
%s

Return a Markdown checklist covering: title (50-60 chars), meta description (150-160 chars),
heading hierarchy, keywords, content length, internal links, external links, readability,
image alt text and URL structure. Give a recommendation for each item and an overall SEO
score (1-10).`, draft)
}

func SocialSnippetsPrompt(content string) string {
	return fmt.Sprintf(`Generate social media snippets for the following blog post.

## Post:
%s

## Requirements:
1. telegram - engaging summary (<=300 chars) with link
2. facebook - professional post (<=280 chars) with link
3. twitter - concise tweet (<=280 chars) with hashtags

Return ONLY JSON with "telegram", "facebook" and "twitter" keys.`, content)
}

func ResearchDraftPrompt(topic, sourcesText string) string {
	return fmt.Sprintf(`Create a research draft on "%s" based on these sources:

%s

Write a comprehensive, well-structured Markdown article.`, topic, sourcesText)
}

func IssueAnalysisPrompt(title, body string) string {
	return fmt.Sprintf(`Triage this GitHub issue.

Title: %s
Body:
%s

Respond with JSON: {"labels": ["..."], "checklist": ["..."], "suggestions": "..."}`, title, body)
}

func FixSuggestionPrompt(title, body string) string {
	return fmt.Sprintf(`Suggest code fixes for this GitHub issue.

Title: %s
Body:
%s

Respond with JSON: {"auto_fixable": true/false, "suggestions": "...", "code_changes": ["..."]}`, title, body)
}
