// File: internal/services/assistant/infographic.go
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docuchat/internal/domain"
	"docuchat/internal/services/ai"
	"docuchat/internal/services/extract"
)

// Infographic carries the three generated image references plus the
// document summary they were built from.
type Infographic struct {
	ImageURL            string `json:"imageUrl"`
	AlternativeImageURL string `json:"alternativeImageUrl"`
	DashboardImageURL   string `json:"dashboardImageUrl"`
	Summary             string `json:"summary"`
}

// infographicFields is the structured content the second prompt stage
// produces; empty strings mark fields the model could not fill.
type infographicFields struct {
	Title      string
	Stats      [5]string
	Processes  [3]string
	Findings   [3]string
	Impacts    [3]string
	Timeline   string
	Comparison string
}

// GenerateInfographic runs the full pipeline for a chat's latest document
// attachment: extract text, summarize, structure into labeled fields, then
// render three independent images. Any stage failure aborts the whole
// operation; partial results are never returned.
func (s *Service) GenerateInfographic(ctx context.Context, chatID uint) (*Infographic, error) {
	att, err := s.attachRepo.FindLatestByChatID(ctx, chatID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("no PDF file found in this chat")
	}
	if err != nil {
		return nil, err
	}

	if !extract.IsDocument(att.Mimetype) {
		return nil, domain.NewValidationError("only PDF files are supported for infographic generation")
	}

	data := s.attachmentBytes(att)
	if len(data) == 0 {
		return nil, domain.NewValidationError("no PDF file found in this chat")
	}

	text, err := s.extractor.Text(data)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.Warn("infographic text extraction failed", "chat_id", chatID, "attachment_id", att.ID, "error", err)
		}
		return nil, domain.NewValidationError("no text content found in the PDF")
	}

	summary, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Model: s.config.ChatModel,
		Messages: []ai.Message{
			{Role: domain.RoleSystem, Content: summarySystemPrompt},
			{Role: domain.RoleUser, Content: fmt.Sprintf(summaryUserPromptFormat, truncate(text, s.config.SummaryCharLimit))},
		},
		MaxTokens: s.config.SummaryMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Model: s.config.ContentModel,
		Messages: []ai.Message{
			{Role: domain.RoleSystem, Content: contentSystemPrompt},
			{Role: domain.RoleUser, Content: fmt.Sprintf(contentUserPromptFormat, summary)},
		},
		MaxTokens: s.config.ContentMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	fields := parseInfographicFields(content, summary)
	prompt := buildImagePrompt(fields)

	// Three independent renders of the same content; model variance
	// provides the alternative and dashboard takes.
	urls := make([]string, 3)
	for i := range urls {
		url, err := s.provider.GenerateImage(ctx, prompt)
		if err != nil {
			return nil, err
		}
		urls[i] = url
	}

	return &Infographic{
		ImageURL:            urls[0],
		AlternativeImageURL: urls[1],
		DashboardImageURL:   urls[2],
		Summary:             summary,
	}, nil
}

// parseInfographicFields pulls the labeled lines out of the structured
// content reply. Missing labels stay empty; a missing or generic title is
// replaced by one derived from the summary.
func parseInfographicFields(content, summary string) infographicFields {
	var f infographicFields
	lookup := func(label string) string {
		for _, line := range strings.Split(content, "\n") {
			if idx := strings.Index(line, label+":"); idx >= 0 {
				return strings.TrimSpace(line[idx+len(label)+1:])
			}
		}
		return ""
	}

	f.Title = lookup("TITLE")
	for i := range f.Stats {
		f.Stats[i] = lookup(fmt.Sprintf("STAT %d", i+1))
	}
	for i := range f.Processes {
		f.Processes[i] = lookup(fmt.Sprintf("PROCESS %d", i+1))
	}
	for i := range f.Findings {
		f.Findings[i] = lookup(fmt.Sprintf("FINDING %d", i+1))
	}
	for i := range f.Impacts {
		f.Impacts[i] = lookup(fmt.Sprintf("IMPACT %d", i+1))
	}
	f.Timeline = lookup("TIMELINE")
	f.Comparison = lookup("COMPARISON")

	lower := strings.ToLower(f.Title)
	if len(f.Title) < 3 || strings.Contains(lower, "research") || strings.Contains(lower, "study") {
		f.Title = titleFromSummary(summary)
	}
	return f
}

var titleStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"this": true, "that": true, "they": true, "have": true, "been": true,
	"will": true, "were": true,
}

// titleFromSummary derives a fallback title from the summary's first few
// significant words.
func titleFromSummary(summary string) string {
	words := make([]string, 0, 8)
	for _, w := range strings.Fields(summary) {
		if len(w) <= 3 || titleStopwords[strings.ToLower(w)] {
			continue
		}
		words = append(words, w)
		if len(words) == 8 {
			break
		}
	}

	title := strings.Join(words, " ")
	title = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == ' ' {
			return r
		}
		return -1
	}, title)
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return "Research Overview"
	}
	return strings.ToUpper(title[:1]) + title[1:]
}

// buildImagePrompt lays the structured fields out section by section and
// appends the fixed visual-styling instructions.
func buildImagePrompt(f infographicFields) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a professional, information-rich infographic titled:\n\n**%s**\n\n", f.Title)

	b.WriteString("SECTION: KEY STATISTICS\n")
	for _, stat := range f.Stats[:3] {
		fmt.Fprintf(&b, "- %s\n", stat)
	}
	for _, stat := range f.Stats[3:] {
		if stat != "" {
			fmt.Fprintf(&b, "- %s\n", stat)
		}
	}

	b.WriteString("\nSECTION: PROCESSES\nVisualize this process as a left-to-right flowchart:\n")
	fmt.Fprintf(&b, "%s -> %s", f.Processes[0], f.Processes[1])
	if f.Processes[2] != "" {
		fmt.Fprintf(&b, " -> %s", f.Processes[2])
	}
	b.WriteString("\n")

	b.WriteString("\nSECTION: FINDINGS\n")
	fmt.Fprintf(&b, "- %s\n- %s\n", f.Findings[0], f.Findings[1])
	if f.Findings[2] != "" {
		fmt.Fprintf(&b, "- %s\n", f.Findings[2])
	}

	b.WriteString("\nSECTION: IMPACTS\n")
	fmt.Fprintf(&b, "- %s\n- %s\n", f.Impacts[0], f.Impacts[1])
	if f.Impacts[2] != "" {
		fmt.Fprintf(&b, "- %s\n", f.Impacts[2])
	}

	if f.Timeline != "" {
		fmt.Fprintf(&b, "\nSECTION: TIMELINE\n- %s\n", f.Timeline)
	}
	if f.Comparison != "" {
		fmt.Fprintf(&b, "\nSECTION: COMPARISON\n- %s\n", f.Comparison)
	}

	b.WriteString("\n---\n\n")
	b.WriteString(imageStyleRequirements)
	return b.String()
}
