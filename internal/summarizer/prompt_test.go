package summarizer

import (
	"reflect"
	"testing"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantSum   string
		wantItems []string
	}{
		{
			name:      "json reply",
			reply:     `{"summary": "The team agreed on the Q3 release date.", "action_items": ["Alice drafts the plan", "Bob reviews budget"]}`,
			wantSum:   "The team agreed on the Q3 release date.",
			wantItems: []string{"Alice drafts the plan", "Bob reviews budget"},
		},
		{
			name:      "json in code fence",
			reply:     "```json\n{\"summary\": \"Short sync.\", \"action_items\": []}\n```",
			wantSum:   "Short sync.",
			wantItems: []string{},
		},
		{
			name:      "json with string action items",
			reply:     `{"summary": "S", "action_items": "- one\n- two"}`,
			wantSum:   "S",
			wantItems: []string{"one", "two"},
		},
		{
			name:      "json missing action items",
			reply:     `{"summary": "Nothing to do."}`,
			wantSum:   "Nothing to do.",
			wantItems: []string{},
		},
		{
			name:      "plain text with heading",
			reply:     "The meeting covered hiring.\n\nAction Items:\n- Post the job ad\n* Schedule interviews",
			wantSum:   "The meeting covered hiring.",
			wantItems: []string{"Post the job ad", "Schedule interviews"},
		},
		{
			name:      "plain text with numbered items",
			reply:     "Summary of the call.\nAction items\n1. Send minutes\n2) Book room",
			wantSum:   "Summary of the call.",
			wantItems: []string{"Send minutes", "Book room"},
		},
		{
			name:      "plain text without items",
			reply:     "Just a quick chat, nothing actionable.",
			wantSum:   "Just a quick chat, nothing actionable.",
			wantItems: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseResponse(tt.reply)
			if got.Summary != tt.wantSum {
				t.Errorf("summary = %q, want %q", got.Summary, tt.wantSum)
			}
			if !reflect.DeepEqual(got.ActionItems, tt.wantItems) {
				t.Errorf("action items = %#v, want %#v", got.ActionItems, tt.wantItems)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt("  [00:00:01] Alice: hi  ")
	if p == "" {
		t.Fatal("empty prompt")
	}
	if want := "[00:00:01] Alice: hi"; p[len(p)-len(want):] != want {
		t.Errorf("prompt should end with the trimmed transcript, got %q", p)
	}
}
