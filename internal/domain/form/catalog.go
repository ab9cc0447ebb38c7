package form

import (
	"errors"
	"fmt"
)

// Branch selects which step sequence a session follows.
type Branch string

const (
	BranchCompany     Branch = "company"
	BranchParticipant Branch = "participant"
)

var (
	ErrUnknownBranch     = errors.New("unknown application branch")
	ErrBranchUnavailable = errors.New("application branch is not available yet")
)

// Definition is the ordered step list of one branch.
type Definition struct {
	Branch    Branch
	Title     string
	Available bool
	Steps     []Step

	// Keys used when a record has to be summarised.
	NameKey  string
	EmailKey string
	PhoneKey string
}

// Fields returns every field of the branch in step order.
func (d *Definition) Fields() []Field {
	var fields []Field
	for _, s := range d.Steps {
		fields = append(fields, s.Fields...)
	}
	return fields
}

// Field looks up a field by key.
func (d *Definition) Field(key string) (Field, bool) {
	for _, s := range d.Steps {
		for _, f := range s.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return Field{}, false
}

// DefaultValues returns the empty value set for a fresh session.
func (d *Definition) DefaultValues() Values {
	values := make(Values)
	for _, f := range d.Fields() {
		values[f.Key] = f.zero()
	}
	return values
}

// Validate runs every step's rules over values and returns the combined errors.
func (d *Definition) Validate(values Values) map[string]string {
	errs := make(map[string]string)
	for _, s := range d.Steps {
		for k, v := range s.Validate(values) {
			errs[k] = v
		}
	}
	return errs
}

// Catalog holds the definitions of all known branches.
type Catalog struct {
	order       []Branch
	definitions map[Branch]*Definition
}

func NewCatalog(defs ...*Definition) *Catalog {
	c := &Catalog{definitions: make(map[Branch]*Definition, len(defs))}
	for _, d := range defs {
		c.order = append(c.order, d.Branch)
		c.definitions[d.Branch] = d
	}
	return c
}

// DefaultCatalog returns the company and participant forms.
func DefaultCatalog() *Catalog {
	return NewCatalog(CompanyDefinition(), ParticipantDefinition())
}

// Branches lists the known branches in registration order.
func (c *Catalog) Branches() []Branch {
	return append([]Branch(nil), c.order...)
}

// Lookup returns the definition of an available branch.
func (c *Catalog) Lookup(branch Branch) (*Definition, error) {
	d, ok := c.definitions[branch]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBranch, branch)
	}
	if !d.Available {
		return d, ErrBranchUnavailable
	}
	return d, nil
}
