package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
	"github.com/meetscribe/scribe/internal/meeting"
	"github.com/meetscribe/scribe/internal/notifier"
	"github.com/meetscribe/scribe/internal/storage"
	"github.com/meetscribe/scribe/internal/summarizer"
	"github.com/meetscribe/scribe/internal/transcriber"
)

// State of one meeting cycle.
type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StatePaused     State = "paused"
	StateStopped    State = "stopped"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// StateError rejects an operation that is illegal in the current state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}

// Deps are the collaborators a session drives. They are built once from the
// resolved configuration; the session itself never inspects credentials.
type Deps struct {
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Store       *storage.Store
	Notifier    notifier.Notifier
	Logger      logger.Logger
	Config      *config.Config
}

// Session is the state machine for a single meeting cycle:
// Idle → Recording ⇄ Paused → Stopped → Processing → Completed | Failed.
// Each session is fully independent; the mutex only guards its own fields.
type Session struct {
	ID string

	mu      sync.Mutex
	state   State
	audio   []byte
	labels  meeting.SpeakerMap
	record  *meeting.Record
	failure error

	deps Deps
}

func NewSession(deps Deps) *Session {
	return &Session{
		ID:     uuid.NewString(),
		state:  StateIdle,
		labels: meeting.SpeakerMap{},
		deps:   deps,
	}
}

// Start begins a recording cycle. Only legal from Idle: a finished cycle must
// be acknowledged via Reset before a new one starts.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return &StateError{Op: "start recording", State: s.state}
	}
	s.state = StateRecording
	return nil
}

func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return &StateError{Op: "pause", State: s.state}
	}
	s.state = StatePaused
	return nil
}

func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePaused {
		return &StateError{Op: "resume", State: s.state}
	}
	s.state = StateRecording
	return nil
}

// Stop receives the final audio payload from the capture layer. Validation of
// the payload itself is the transcriber's job; an empty payload will fail the
// Processing step, not the Stop transition.
func (s *Session) Stop(audio []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording && s.state != StatePaused {
		return &StateError{Op: "stop", State: s.state}
	}
	s.audio = audio
	s.state = StateStopped
	return nil
}

// SetSpeakerLabels replaces the display-name mapping. Legal at any point
// outside Processing; before Process it also decides the names the
// summarisation prompt sees (depending on the configured policy).
func (s *Session) SetSpeakerLabels(labels meeting.SpeakerMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateProcessing {
		return &StateError{Op: "edit speaker labels", State: s.state}
	}
	merged := meeting.SpeakerMap{}
	for k, v := range labels {
		merged[k] = v
	}
	s.labels = merged
	if s.record != nil {
		s.record.Labels = merged
	}
	return nil
}

// Process runs the pipeline in strict sequence: transcribe, relabel,
// summarise. The first failing step moves the session to Failed with the
// originating error and later steps are skipped.
func (s *Session) Process(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateStopped {
		s.mu.Unlock()
		return &StateError{Op: "process", State: s.state}
	}
	s.state = StateProcessing
	audio := s.audio
	labels := s.labels
	s.mu.Unlock()

	record, err := s.runPipeline(ctx, audio, labels)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.failure = err
		s.deps.Logger.Error(ctx, "session %s failed: %v", s.ID, err)
		return err
	}
	s.record = record
	s.state = StateCompleted
	s.deps.Logger.Info(ctx, "session %s completed: %d segments", s.ID, len(record.Segments))
	return nil
}

func (s *Session) runPipeline(ctx context.Context, audio []byte, labels meeting.SpeakerMap) (*meeting.Record, error) {
	cfg := s.deps.Config

	tctx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Transcribe)
	defer cancel()
	segments, err := s.deps.Transcriber.Transcribe(tctx, audio)
	if err != nil {
		return nil, err
	}

	promptSegments := segments
	if cfg.LLM.SpeakerNames == config.SpeakerNamesDisplay {
		promptSegments = meeting.RelabelSegments(segments, labels)
	}

	sctx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Summarize)
	defer cancel()
	summary, err := s.deps.Summarizer.Summarize(sctx, meeting.TranscriptText(promptSegments))
	if err != nil {
		return nil, err
	}

	return &meeting.Record{
		Segments: segments,
		Labels:   labels,
		Summary:  summary,
	}, nil
}

// SaveRequest carries the caller's save options.
type SaveRequest struct {
	FileName  string
	SendEmail bool
	Recipient string
}

// SaveResult reports persistence and email delivery independently: a failed
// email never turns a successful save into a failure.
type SaveResult struct {
	Path      string
	EmailSent bool
	EmailErr  error
}

// Save persists the completed record and optionally emails it.
func (s *Session) Save(ctx context.Context, req SaveRequest) (SaveResult, error) {
	s.mu.Lock()
	if s.state != StateCompleted {
		s.mu.Unlock()
		return SaveResult{}, &StateError{Op: "save", State: s.state}
	}
	record := s.record
	s.mu.Unlock()

	path, err := s.deps.Store.Save(ctx, record, req.FileName)
	if err != nil {
		return SaveResult{}, err
	}
	result := SaveResult{Path: path}

	if req.SendEmail {
		ectx, cancel := context.WithTimeout(ctx, s.deps.Config.Timeouts.Email)
		defer cancel()
		document := storage.Render(record, s.deps.Store.Now())
		sent, err := s.deps.Notifier.Send(ectx, "Meeting summary", document, req.Recipient)
		result.EmailSent = sent
		result.EmailErr = err
		if err != nil {
			s.deps.Logger.Warn(ctx, "session %s saved to %s but email failed: %v", s.ID, path, err)
		}
	}

	return result, nil
}

// Reset acknowledges a finished (or aborted) cycle and returns to Idle.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateProcessing {
		return &StateError{Op: "reset", State: s.state}
	}
	s.state = StateIdle
	s.audio = nil
	s.labels = meeting.SpeakerMap{}
	s.record = nil
	s.failure = nil
	return nil
}

// Snapshot is a point-in-time view of a session for the API layer.
type Snapshot struct {
	ID       string          `json:"id"`
	State    State           `json:"state"`
	Error    string          `json:"error,omitempty"`
	Speakers []string        `json:"speakers,omitempty"`
	Record   *meeting.Record `json:"record,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{ID: s.ID, State: s.state}
	if s.failure != nil {
		snap.Error = s.failure.Error()
	}
	if s.record != nil {
		snap.Record = s.record
		snap.Speakers = meeting.SpeakersOf(s.record.Segments)
	}
	return snap
}
