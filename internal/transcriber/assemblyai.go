package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
	"github.com/meetscribe/scribe/internal/meeting"
)

// implAssemblyAI drives the AssemblyAI v2 API: upload the audio, create a
// transcript job with diarisation enabled, then poll until it completes.
type implAssemblyAI struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	client       *http.Client
	logger       logger.Logger
}

func newAssemblyAI(cfg config.TranscriptionConfig, log logger.Logger) *implAssemblyAI {
	return &implAssemblyAI{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		pollInterval: cfg.PollInterval,
		client:       &http.Client{Timeout: 60 * time.Second},
		logger:       log,
	}
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL      string `json:"audio_url"`
	SpeakerLabels bool   `json:"speaker_labels"`
}

type transcriptResponse struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	Error      string      `json:"error"`
	Utterances []utterance `json:"utterances"`
	Text       string      `json:"text"`
}

type utterance struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

func (t *implAssemblyAI) Transcribe(ctx context.Context, audio []byte) ([]meeting.Segment, error) {
	if len(audio) == 0 {
		return nil, &meeting.InvalidInputError{Reason: "empty audio payload"}
	}

	uploadURL, err := t.upload(ctx, audio)
	if err != nil {
		return nil, &meeting.TranscriptionError{Err: fmt.Errorf("upload audio: %w", err)}
	}

	jobID, err := t.createJob(ctx, uploadURL)
	if err != nil {
		return nil, &meeting.TranscriptionError{Err: fmt.Errorf("create transcript job: %w", err)}
	}
	t.logger.Debug(ctx, "transcript job created: %s", jobID)

	payload, err := t.poll(ctx, jobID)
	if err != nil {
		return nil, &meeting.TranscriptionError{Err: err}
	}

	return segmentsFromPayload(payload), nil
}

func (t *implAssemblyAI) upload(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/upload", bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	req.Header.Set("authorization", t.apiKey)

	var resp uploadResponse
	if err := t.do(req, &resp); err != nil {
		return "", err
	}
	return resp.UploadURL, nil
}

func (t *implAssemblyAI) createJob(ctx context.Context, uploadURL string) (string, error) {
	body, err := json.Marshal(transcriptRequest{AudioURL: uploadURL, SpeakerLabels: true})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/transcript", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("authorization", t.apiKey)
	req.Header.Set("content-type", "application/json")

	var resp transcriptResponse
	if err := t.do(req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// poll blocks until the job completes or the context expires. A timeout is
// treated exactly like a provider failure by the caller.
func (t *implAssemblyAI) poll(ctx context.Context, jobID string) (*transcriptResponse, error) {
	url := fmt.Sprintf("%s/transcript/%s", t.baseURL, jobID)
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("authorization", t.apiKey)

		var resp transcriptResponse
		if err := t.do(req, &resp); err != nil {
			return nil, fmt.Errorf("poll transcript: %w", err)
		}

		switch resp.Status {
		case "completed":
			return &resp, nil
		case "error":
			return nil, fmt.Errorf("provider reported: %s", resp.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(t.pollInterval):
		}
	}
}

func (t *implAssemblyAI) do(req *http.Request, out interface{}) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, bytes.TrimSpace(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// segmentsFromPayload maps provider utterances to domain segments. Raw
// speaker ids ("A", "B", ...) become "Speaker A", "Speaker B"; millisecond
// offsets become seconds. When diarisation yields nothing, the flat text
// becomes a single segment so downstream steps still have a transcript.
func segmentsFromPayload(payload *transcriptResponse) []meeting.Segment {
	segments := make([]meeting.Segment, 0, len(payload.Utterances))
	for _, u := range payload.Utterances {
		if u.Text == "" {
			continue
		}
		segments = append(segments, meeting.Segment{
			Speaker: "Speaker " + u.Speaker,
			Start:   u.Start / 1000.0,
			End:     u.End / 1000.0,
			Text:    u.Text,
		})
	}
	if len(segments) == 0 && payload.Text != "" {
		segments = append(segments, meeting.Segment{
			Speaker: "Speaker A",
			Start:   0,
			End:     0,
			Text:    payload.Text,
		})
	}
	return segments
}
