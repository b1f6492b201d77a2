package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/meetscribe/scribe/internal/meeting"
)

// Manager owns the live sessions. Sessions are independent of each other, so
// the lock only covers the registry itself.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
}

func NewManager(deps Deps) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		deps:     deps,
	}
}

func (m *Manager) Create() *Session {
	s := NewSession(m.deps)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// IngestFile runs the full unattended cycle for a recording dropped into the
// inbox: one ephemeral session, stop with the file contents, process, save
// under the file's base name, email if configured. The session is removed
// afterwards regardless of outcome.
func (m *Manager) IngestFile(ctx context.Context, path string) error {
	audio, err := os.ReadFile(path)
	if err != nil {
		return &meeting.InvalidInputError{Reason: "read recording " + path + ": " + err.Error()}
	}

	s := m.Create()
	defer m.Delete(s.ID)

	if err := s.Start(); err != nil {
		return err
	}
	if err := s.Stop(audio); err != nil {
		return err
	}
	if err := s.Process(ctx); err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res, err := s.Save(ctx, SaveRequest{FileName: base, SendEmail: true})
	if err != nil {
		return err
	}
	m.deps.Logger.Info(ctx, "ingested %s -> %s (email sent: %t)", path, res.Path, res.EmailSent)
	return nil
}
