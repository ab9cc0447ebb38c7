package form

import (
	"errors"
	"fmt"
	"maps"
	"time"
)

// State is the coarse position of a session in the form.
type State int

const (
	StateBranchSelect State = iota
	StateStep
	StateConfirm
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateBranchSelect:
		return "branch_select"
	case StateStep:
		return "step"
	case StateConfirm:
		return "confirm"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrUnknownField     = errors.New("field does not belong to the selected branch")
	ErrNoBranchSelected = errors.New("no branch selected")
	ErrNotOnConfirm     = errors.New("form can only be submitted from the confirmation step")
	ErrBranchLocked     = errors.New("branch can only be chosen from branch selection")
)

// Session walks one user through one branch of the form.
// A session is owned by a single client and is not safe for concurrent use.
type Session struct {
	catalog     *Catalog
	def         *Definition
	stepIndex   int // 0 before a branch is chosen, len(Steps)+1 on confirm
	submitted   bool
	fields      Values
	fieldErrors map[string]string
}

func NewSession(catalog *Catalog) *Session {
	return &Session{
		catalog:     catalog,
		fieldErrors: make(map[string]string),
	}
}

func (s *Session) State() State {
	switch {
	case s.submitted:
		return StateSubmitted
	case s.def == nil:
		return StateBranchSelect
	case s.stepIndex > len(s.def.Steps):
		return StateConfirm
	default:
		return StateStep
	}
}

// Branch returns the selected branch, or "" before selection.
func (s *Session) Branch() Branch {
	if s.def == nil {
		return ""
	}
	return s.def.Branch
}

func (s *Session) StepIndex() int { return s.stepIndex }

// StepCount is the number of content steps of the selected branch.
func (s *Session) StepCount() int {
	if s.def == nil {
		return 0
	}
	return len(s.def.Steps)
}

// CurrentStep returns the active content step.
func (s *Session) CurrentStep() (Step, bool) {
	if s.State() != StateStep {
		return Step{}, false
	}
	return s.def.Steps[s.stepIndex-1], true
}

// Value returns the current value of a field.
func (s *Session) Value(key string) any { return s.fields[key] }

// Fields returns a copy of all entered values.
func (s *Session) Fields() Values { return maps.Clone(s.fields) }

// FieldErrors returns a copy of the visible error messages.
func (s *Session) FieldErrors() map[string]string { return maps.Clone(s.fieldErrors) }

// SelectBranch leaves branch selection and opens the first step with empty fields.
// An unavailable branch leaves the session in branch selection.
func (s *Session) SelectBranch(branch Branch) error {
	if s.State() != StateBranchSelect {
		return fmt.Errorf("select branch in state %s: %w", s.State(), ErrBranchLocked)
	}
	def, err := s.catalog.Lookup(branch)
	if err != nil {
		return err
	}
	s.def = def
	s.stepIndex = 1
	s.fields = def.DefaultValues()
	clear(s.fieldErrors)
	return nil
}

// Next validates the current step. On success it advances one step and
// clears all errors; on failure it records the errors and stays.
func (s *Session) Next() bool {
	step, ok := s.CurrentStep()
	if !ok {
		return false
	}
	errs := step.Validate(s.fields)
	if len(errs) > 0 {
		s.fieldErrors = errs
		return false
	}
	clear(s.fieldErrors)
	s.stepIndex++
	return true
}

// Back moves one step back without validation. From the first step it
// returns to branch selection and discards everything entered.
func (s *Session) Back() {
	switch s.State() {
	case StateStep, StateConfirm:
	default:
		return
	}
	if s.stepIndex <= 1 {
		s.reset()
		return
	}
	s.stepIndex--
}

func (s *Session) reset() {
	s.def = nil
	s.stepIndex = 0
	s.fields = nil
	clear(s.fieldErrors)
}

// UpdateField stores a value and clears that field's error. Fields that
// depend on key are reset when its value changes.
func (s *Session) UpdateField(key string, value any) error {
	if s.def == nil {
		return ErrNoBranchSelected
	}
	if s.submitted {
		return fmt.Errorf("update %q: %w", key, ErrNotOnConfirm)
	}
	if _, ok := s.def.Field(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	previous := s.fields[key]
	s.fields[key] = value
	delete(s.fieldErrors, key)

	if AsString(previous) == AsString(value) {
		return nil
	}
	for _, f := range s.def.Fields() {
		for _, dep := range f.DependsOn {
			if dep == key {
				s.fields[f.Key] = f.zero()
				delete(s.fieldErrors, f.Key)
			}
		}
	}
	return nil
}

// SummaryLine is one row of the read-only confirmation view.
type SummaryLine struct {
	Key   string
	Label string
	Value string
}

// Summary lists every filled field of the selected branch in step order.
func (s *Session) Summary() []SummaryLine {
	if s.def == nil {
		return nil
	}
	var lines []SummaryLine
	for _, f := range s.def.Fields() {
		v := s.fields[f.Key]
		if IsEmpty(v) {
			continue
		}
		lines = append(lines, SummaryLine{Key: f.Key, Label: f.Label, Value: DisplayValue(v)})
	}
	return lines
}

// Submit builds the envelope from the confirmation step and closes the session.
func (s *Session) Submit(now time.Time) (Envelope, error) {
	if s.State() != StateConfirm {
		return Envelope{}, ErrNotOnConfirm
	}
	env := BuildEnvelope(s.def.Branch, s.fields, now)
	s.submitted = true
	return env, nil
}

// DisplayValue renders a value for people: booleans become Да/Нет.
func DisplayValue(value any) string {
	if b, ok := value.(bool); ok {
		if b {
			return "Да"
		}
		return "Нет"
	}
	return AsString(value)
}
