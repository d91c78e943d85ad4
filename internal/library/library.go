package library

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/progdeck/internal/model"
)

// RevisionPrefix marks revisions built from the fallback timestamp
const RevisionPrefix = "rev_"

// Library owns one Programs collection
type Library struct {
	mu       sync.RWMutex
	programs *model.Programs
	revision string
	logger   *zap.Logger
	onUpdate func(*model.Programs, string) // called after every mutation
}

// Option configures a Library
type Option func(*Library)

// WithLogger sets the logger used for mutation events
func WithLogger(logger *zap.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithPrograms seeds the library with a copy of ps
func WithPrograms(ps *model.Programs) Option {
	return func(l *Library) {
		if ps != nil {
			l.programs = ps.Clone()
		}
	}
}

// New creates a library. Without WithPrograms it starts empty with no selection.
func New(opts ...Option) *Library {
	l := &Library{
		programs: &model.Programs{Active: model.NoActive, Programs: []model.Program{}},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.revision = generateRevision()
	return l
}

// SetUpdateCallback sets the callback function for library updates
func (l *Library) SetUpdateCallback(callback func(*model.Programs, string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onUpdate = callback
}

// Snapshot returns a deep copy of the current collection
func (l *Library) Snapshot() *model.Programs {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.programs.Clone()
}

// Revision returns the identifier of the current state
func (l *Library) Revision() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

// Active resolves the selected program, see model.Programs.ActiveProgram
func (l *Library) Active() (model.Program, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.programs.ActiveProgram()
}

// Get returns a copy of the program called name
func (l *Library) Get(name string) (model.Program, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.programs.Find(name)
}

// Replace swaps in a validated copy of ps
func (l *Library) Replace(ps *model.Programs) error {
	if ps == nil {
		return fmt.Errorf("replace: nil programs")
	}
	if err := ps.Validate(); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return l.mutate("replace", func(cur *model.Programs) (*model.Programs, error) {
		return ps.Clone(), nil
	})
}

// Select marks the program called name active; model.NoActive clears it
func (l *Library) Select(name string) error {
	return l.mutate("select", func(cur *model.Programs) (*model.Programs, error) {
		if err := cur.SetActive(name); err != nil {
			return nil, err
		}
		return cur, nil
	}, zap.String("name", name))
}

// Upsert replaces the program with the same name in place or appends p
func (l *Library) Upsert(p model.Program) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return l.mutate("upsert", func(cur *model.Programs) (*model.Programs, error) {
		if i := cur.Index(p.Name); i >= 0 {
			cur.Programs[i] = p.Clone()
			return cur, nil
		}
		if err := cur.Add(p); err != nil {
			return nil, err
		}
		return cur, nil
	}, zap.String("name", p.Name))
}

// Remove deletes the program called name, clearing the selection if needed
func (l *Library) Remove(name string) error {
	return l.mutate("remove", func(cur *model.Programs) (*model.Programs, error) {
		if !cur.Remove(name) {
			return nil, &model.NotFoundError{Name: name}
		}
		return cur, nil
	}, zap.String("name", name))
}

// Move relocates the program called name to index
func (l *Library) Move(name string, index int) error {
	return l.mutate("move", func(cur *model.Programs) (*model.Programs, error) {
		if err := cur.Move(name, index); err != nil {
			return nil, err
		}
		return cur, nil
	}, zap.String("name", name), zap.Int("index", index))
}

// mutate applies fn to a working copy and commits it only on success.
// The callback runs outside the lock with its own snapshot.
func (l *Library) mutate(op string, fn func(*model.Programs) (*model.Programs, error), fields ...zap.Field) error {
	l.mu.Lock()
	next, err := fn(l.programs.Clone())
	if err != nil {
		l.mu.Unlock()
		l.logger.Debug("library mutation rejected",
			append(fields, zap.String("op", op), zap.Error(err))...)
		return fmt.Errorf("%s: %w", op, err)
	}
	l.programs = next
	l.revision = generateRevision()
	rev := l.revision
	callback := l.onUpdate
	var snapshot *model.Programs
	if callback != nil {
		snapshot = next.Clone()
	}
	l.mu.Unlock()

	l.logger.Info("library updated",
		append(fields, zap.String("op", op), zap.String("revision", rev))...)
	if callback != nil {
		callback(snapshot, rev)
	}
	return nil
}

// generateRevision generates a revision ID using UUID v7 so revisions sort by creation time
func generateRevision() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(RevisionPrefix+"%d", time.Now().UnixNano())
	}
	return id.String()
}
