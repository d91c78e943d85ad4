package library

import (
	"github.com/ytget/progdeck/internal/model"
)

// Store defines the interface for the program library.
type Store interface {
	SetUpdateCallback(func(*model.Programs, string))
	Snapshot() *model.Programs
	Revision() string
	Replace(ps *model.Programs) error
	Select(name string) error
	Active() (model.Program, error)
	Get(name string) (model.Program, bool)
	Upsert(p model.Program) error
	Remove(name string) error
	Move(name string, index int) error
}

var _ Store = (*Library)(nil)
