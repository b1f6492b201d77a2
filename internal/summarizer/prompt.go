package summarizer

import (
	"encoding/json"
	"strings"

	"github.com/meetscribe/scribe/internal/meeting"
)

const systemPrompt = "You are an assistant that summarises business meetings. " +
	"Return concise summaries and actionable bullet points."

// buildPrompt asks for JSON so the happy path parses deterministically; the
// heuristic parser below handles models that answer in prose anyway.
func buildPrompt(transcript string) string {
	return "Summarise the following meeting transcript and list clear action items. " +
		"Respond with JSON using the keys 'summary' and 'action_items'. " +
		"The 'action_items' value must be an array of strings.\n\n" +
		strings.TrimSpace(transcript)
}

type summaryPayload struct {
	Summary     string      `json:"summary"`
	ActionItems interface{} `json:"action_items"`
}

// parseResponse normalises a model reply into a Summary. Valid JSON is taken
// as-is; anything else is split heuristically. A reply without action items
// yields an empty list, never an error.
func parseResponse(reply string) meeting.Summary {
	trimmed := strings.TrimSpace(reply)
	trimmed = stripCodeFence(trimmed)

	var payload summaryPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
		return meeting.Summary{
			Summary:     strings.TrimSpace(payload.Summary),
			ActionItems: normalizeItems(payload.ActionItems),
		}
	}

	return parsePlainText(trimmed)
}

func normalizeItems(raw interface{}) []string {
	items := []string{}
	switch v := raw.(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				items = append(items, strings.TrimSpace(s))
			}
		}
	case string:
		// Models occasionally return one string containing bullet points.
		for _, line := range strings.Split(v, "\n") {
			if cleaned := trimBullet(line); cleaned != "" {
				items = append(items, cleaned)
			}
		}
	}
	return items
}

// parsePlainText treats bullet or numbered lines after an "action items"
// heading as items and everything before it as the summary. Without a
// heading, any bulleted tail lines count as items.
func parsePlainText(text string) meeting.Summary {
	var summaryLines []string
	items := []string{}
	inActions := false

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		lower := strings.ToLower(strings.Trim(stripped, "#*: "))
		if strings.HasPrefix(lower, "action item") || lower == "actions" {
			inActions = true
			continue
		}
		if bullet := trimBullet(stripped); bullet != "" && (inActions || isBulleted(stripped)) {
			items = append(items, bullet)
			continue
		}
		if !inActions {
			summaryLines = append(summaryLines, stripped)
		}
	}

	return meeting.Summary{
		Summary:     strings.Join(summaryLines, "\n"),
		ActionItems: items,
	}
}

func isBulleted(line string) bool {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
		return true
	}
	for i, r := range line {
		if r >= '0' && r <= '9' {
			continue
		}
		return i > 0 && (r == '.' || r == ')')
	}
	return false
}

func trimBullet(line string) string {
	s := strings.TrimSpace(line)
	if !isBulleted(s) {
		return ""
	}
	s = strings.TrimLeft(s, "-*•0123456789.) ")
	return strings.TrimSpace(s)
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
