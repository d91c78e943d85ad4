package model

import (
	"fmt"
	"time"
)

// NoActive is the value of Programs.Active when nothing is selected
const NoActive = ""

// Programs is an ordered collection of programs with one marked active
type Programs struct {
	Active   string    `json:"active" yaml:"active" toml:"active"`
	Programs []Program `json:"programs" yaml:"programs" toml:"programs"`
}

// NewPrograms creates a validated collection. The list is deep copied.
// An active name that matches nothing is kept; ActiveProgram reports it.
func NewPrograms(active string, programs []Program) (*Programs, error) {
	ps := &Programs{
		Active:   active,
		Programs: make([]Program, 0, len(programs)),
	}
	for _, p := range programs {
		ps.Programs = append(ps.Programs, p.Clone())
	}
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// Validate checks every program and name uniqueness
func (ps *Programs) Validate() error {
	for i, p := range ps.Programs {
		if err := p.Validate(); err != nil {
			return atIndex(err, i)
		}
		for j := 0; j < i; j++ {
			if ps.Programs[j].HasName(p.Name) {
				return &ValidationError{
					Field:  FieldName,
					Reason: fmt.Sprintf("duplicate of programs[%d]", j),
					Index:  i,
				}
			}
		}
	}
	return nil
}

// ActiveProgram resolves Active to its program.
// It returns ErrNoActiveProgram when nothing is selected and a *NotFoundError
// when Active names a program that is not in the collection.
func (ps *Programs) ActiveProgram() (Program, error) {
	if ps.Active == NoActive {
		return Program{}, ErrNoActiveProgram
	}
	p, ok := ps.Find(ps.Active)
	if !ok {
		return Program{}, &NotFoundError{Name: ps.Active}
	}
	return p, nil
}

// HasActive reports whether Active resolves to a program
func (ps *Programs) HasActive() bool {
	_, err := ps.ActiveProgram()
	return err == nil
}

// Find returns a copy of the program called name
func (ps *Programs) Find(name string) (Program, bool) {
	if i := ps.Index(name); i >= 0 {
		return ps.Programs[i].Clone(), true
	}
	return Program{}, false
}

// Index returns the position of the program called name, or -1
func (ps *Programs) Index(name string) int {
	for i, p := range ps.Programs {
		if p.HasName(name) {
			return i
		}
	}
	return -1
}

// Names returns program names in list order
func (ps *Programs) Names() []string {
	names := make([]string, 0, len(ps.Programs))
	for _, p := range ps.Programs {
		names = append(names, p.Name)
	}
	return names
}

// Len returns the number of programs
func (ps *Programs) Len() int {
	return len(ps.Programs)
}

// SetActive selects the program called name. NoActive clears the selection.
func (ps *Programs) SetActive(name string) error {
	if name == NoActive {
		ps.Active = NoActive
		return nil
	}
	i := ps.Index(name)
	if i < 0 {
		return &NotFoundError{Name: name}
	}
	ps.Active = ps.Programs[i].Name
	return nil
}

// Add appends a program
func (ps *Programs) Add(p Program) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if j := ps.Index(p.Name); j >= 0 {
		return &ValidationError{
			Field:  FieldName,
			Reason: fmt.Sprintf("duplicate of programs[%d]", j),
			Index:  len(ps.Programs),
		}
	}
	ps.Programs = append(ps.Programs, p.Clone())
	return nil
}

// Remove deletes the program called name and clears Active if it pointed there
func (ps *Programs) Remove(name string) bool {
	i := ps.Index(name)
	if i < 0 {
		return false
	}
	if ps.Active != NoActive && ps.Programs[i].HasName(ps.Active) {
		ps.Active = NoActive
	}
	ps.Programs = append(ps.Programs[:i], ps.Programs[i+1:]...)
	return true
}

// Move relocates the program called name to index, shifting the others
func (ps *Programs) Move(name string, index int) error {
	from := ps.Index(name)
	if from < 0 {
		return &NotFoundError{Name: name}
	}
	if index < 0 || index >= len(ps.Programs) {
		return &ValidationError{
			Field:  "index",
			Reason: fmt.Sprintf("%d out of range [0,%d)", index, len(ps.Programs)),
			Index:  -1,
		}
	}
	p := ps.Programs[from]
	ps.Programs = append(ps.Programs[:from], ps.Programs[from+1:]...)
	ps.Programs = append(ps.Programs[:index], append([]Program{p}, ps.Programs[index:]...)...)
	return nil
}

// TotalDuration sums the display duration of every program
func (ps *Programs) TotalDuration(unit DurationUnit) time.Duration {
	var total time.Duration
	for _, p := range ps.Programs {
		d := p.DisplayDuration(unit)
		if d > 0 && total > MaxDisplayDuration-d {
			return MaxDisplayDuration
		}
		total += d
	}
	return total
}

// Clone returns a deep copy
func (ps *Programs) Clone() *Programs {
	cp := &Programs{
		Active:   ps.Active,
		Programs: make([]Program, len(ps.Programs)),
	}
	for i, p := range ps.Programs {
		cp.Programs[i] = p.Clone()
	}
	return cp
}
