package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
	"github.com/meetscribe/scribe/internal/notifier"
	"github.com/meetscribe/scribe/internal/orchestrator"
	"github.com/meetscribe/scribe/internal/storage"
	"github.com/meetscribe/scribe/internal/summarizer"
	"github.com/meetscribe/scribe/internal/transcriber"
)

func testServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	cfg := &config.Config{
		LLM: config.LLMConfig{SpeakerNames: config.SpeakerNamesDisplay},
		Timeouts: config.TimeoutConfig{
			Transcribe: 5 * time.Second,
			Summarize:  5 * time.Second,
			Email:      time.Second,
		},
	}
	log := logger.New("error")
	outDir := t.TempDir()
	manager := orchestrator.NewManager(orchestrator.Deps{
		Transcriber: transcriber.New(cfg, log),
		Summarizer:  summarizer.New(cfg, log),
		Store:       storage.New(outDir, false, log),
		Notifier:    notifier.New(cfg, log),
		Logger:      log,
		Config:      cfg,
	})

	ts := httptest.NewServer(New(cfg, manager, log).Handler())
	t.Cleanup(ts.Close)
	return ts, outDir
}

func doJSON(t *testing.T, method, url string, body []byte, out any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, url, err)
		}
	}
	return resp
}

func TestMeetingRoundTrip(t *testing.T) {
	ts, outDir := testServer(t)
	base := ts.URL + "/api/v1/meetings"

	var snap orchestrator.Snapshot
	resp := doJSON(t, http.MethodPost, base+"/", nil, &snap)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	if snap.ID == "" || snap.State != orchestrator.StateIdle {
		t.Fatalf("create snapshot = %+v", snap)
	}
	meeting := base + "/" + snap.ID

	for _, step := range []string{"/start", "/pause", "/resume"} {
		resp := doJSON(t, http.MethodPost, meeting+step, nil, &snap)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", step, resp.StatusCode)
		}
	}

	resp = doJSON(t, http.MethodPost, meeting+"/stop", []byte("captured audio"), &snap)
	if resp.StatusCode != http.StatusOK || snap.State != orchestrator.StateStopped {
		t.Fatalf("stop: status = %d, state = %s", resp.StatusCode, snap.State)
	}

	labels, _ := json.Marshal(map[string]string{"Speaker A": "Alice"})
	resp = doJSON(t, http.MethodPut, meeting+"/speakers", labels, &snap)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("speakers status = %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, meeting+"/process", nil, &snap)
	if resp.StatusCode != http.StatusOK || snap.State != orchestrator.StateCompleted {
		t.Fatalf("process: status = %d, state = %s, err = %s", resp.StatusCode, snap.State, snap.Error)
	}
	if snap.Record == nil || len(snap.Record.Segments) == 0 {
		t.Fatal("completed snapshot has no transcript")
	}

	var saved struct {
		Path      string `json:"path"`
		EmailSent bool   `json:"email_sent"`
	}
	body, _ := json.Marshal(map[string]any{"file_name": "roundtrip"})
	resp = doJSON(t, http.MethodPost, meeting+"/save", body, &saved)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d", resp.StatusCode)
	}
	if !strings.HasPrefix(saved.Path, outDir) {
		t.Errorf("saved path %q not under %q", saved.Path, outDir)
	}
	data, err := os.ReadFile(saved.Path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if !strings.Contains(string(data), "Alice:") {
		t.Errorf("saved document missing display names:\n%s", data)
	}
	if saved.EmailSent {
		t.Error("email_sent = true with email unconfigured")
	}

	resp = doJSON(t, http.MethodPost, meeting+"/reset", nil, &snap)
	if resp.StatusCode != http.StatusOK || snap.State != orchestrator.StateIdle {
		t.Fatalf("reset: status = %d, state = %s", resp.StatusCode, snap.State)
	}
}

func TestIllegalTransitionConflict(t *testing.T) {
	ts, _ := testServer(t)
	base := ts.URL + "/api/v1/meetings"

	var snap orchestrator.Snapshot
	doJSON(t, http.MethodPost, base+"/", nil, &snap)

	var errResp struct {
		Error string `json:"error"`
	}
	resp := doJSON(t, http.MethodPost, base+"/"+snap.ID+"/pause", nil, &errResp)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("pause while idle status = %d, want 409", resp.StatusCode)
	}
	if errResp.Error == "" {
		t.Error("conflict response has no error message")
	}
}

func TestEmptyAudioFailsProcessing(t *testing.T) {
	ts, _ := testServer(t)
	base := ts.URL + "/api/v1/meetings"

	var snap orchestrator.Snapshot
	doJSON(t, http.MethodPost, base+"/", nil, &snap)
	meeting := base + "/" + snap.ID

	doJSON(t, http.MethodPost, meeting+"/start", nil, nil)
	doJSON(t, http.MethodPost, meeting+"/stop", nil, nil)

	var errResp struct {
		Error string `json:"error"`
	}
	resp := doJSON(t, http.MethodPost, meeting+"/process", nil, &errResp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("process status = %d, want 400", resp.StatusCode)
	}

	doJSON(t, http.MethodGet, meeting+"/", nil, &snap)
	if snap.State != orchestrator.StateFailed {
		t.Errorf("state = %s, want failed", snap.State)
	}
}

func TestUnknownSession(t *testing.T) {
	ts, _ := testServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/meetings/nope/", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDeleteSession(t *testing.T) {
	ts, _ := testServer(t)
	base := ts.URL + "/api/v1/meetings"

	var snap orchestrator.Snapshot
	doJSON(t, http.MethodPost, base+"/", nil, &snap)

	resp := doJSON(t, http.MethodDelete, base+"/"+snap.ID+"/", nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, base+"/"+snap.ID+"/", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404", resp.StatusCode)
	}
}
