package meeting

import (
	"fmt"
	"strings"
)

// Segment is one diarised span of the recording.
type Segment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

// SpeakerMap maps raw diarised speaker ids to user supplied display names.
type SpeakerMap map[string]string

// Summary is the normalized output of the summarisation step.
type Summary struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
}

// Record aggregates everything produced for one meeting cycle. It lives only
// for the duration of that cycle; only its rendered text form is persisted.
type Record struct {
	Segments     []Segment  `json:"segments"`
	Labels       SpeakerMap `json:"labels"`
	Summary      Summary    `json:"summary"`
	FileOverride string     `json:"file_override,omitempty"`
}

// DisplayName resolves a raw speaker id, falling back to the id itself.
func (m SpeakerMap) DisplayName(speaker string) string {
	if m == nil {
		return speaker
	}
	if label, ok := m[speaker]; ok && strings.TrimSpace(label) != "" {
		return label
	}
	return speaker
}

// RelabelSegments returns a copy of segments with display names applied.
// Unknown speaker ids map to themselves, so an empty map is the identity.
func RelabelSegments(segments []Segment, labels SpeakerMap) []Segment {
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		seg.Speaker = labels.DisplayName(seg.Speaker)
		out[i] = seg
	}
	return out
}

// SpeakersOf returns the distinct speaker ids in first-seen order.
func SpeakersOf(segments []Segment) []string {
	var speakers []string
	seen := make(map[string]bool)
	for _, seg := range segments {
		if !seen[seg.Speaker] {
			seen[seg.Speaker] = true
			speakers = append(speakers, seg.Speaker)
		}
	}
	return speakers
}

// Relabeled returns the record's segments with the speaker map applied.
func (r *Record) Relabeled() []Segment {
	return RelabelSegments(r.Segments, r.Labels)
}

// TranscriptText renders segments as "[HH:MM:SS] Speaker: text" lines. The
// same rendering feeds the summarisation prompt and the saved document.
func TranscriptText(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", FormatTimestamp(seg.Start), seg.Speaker, seg.Text))
	}
	return strings.Join(lines, "\n")
}

// FormatTimestamp renders a second offset as HH:MM:SS.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
