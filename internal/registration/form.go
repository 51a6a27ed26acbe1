package registration

import (
	"errors"
	"fmt"

	"github.com/zjrosen/enrol/internal/log"
	"github.com/zjrosen/enrol/internal/registry"
)

// Draft is the transient set of values being edited.
type Draft struct {
	FirstName  string
	LastName   string
	Email      string
	University string
}

// Value returns the draft's value for f.
func (d Draft) Value(f Field) string {
	switch f {
	case FirstName:
		return d.FirstName
	case LastName:
		return d.LastName
	case Email:
		return d.Email
	case University:
		return d.University
	default:
		return ""
	}
}

func (d Draft) with(f Field, v string) Draft {
	switch f {
	case FirstName:
		d.FirstName = v
	case LastName:
		d.LastName = v
	case Email:
		d.Email = v
	case University:
		d.University = v
	}
	return d
}

// Record copies the draft into a registry record.
func (d Draft) Record() registry.UserRecord {
	return registry.UserRecord{
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Email:      d.Email,
		University: d.University,
	}
}

// Result holds the failures of every field.
type Result struct {
	failures [fieldCount][]Failure
}

// Of returns the failures for f in rule order.
func (r Result) Of(f Field) []Failure {
	if !f.valid() {
		return nil
	}
	return r.failures[f]
}

// Has reports whether f failed with failure.
func (r Result) Has(f Field, failure Failure) bool {
	for _, got := range r.Of(f) {
		if got == failure {
			return true
		}
	}
	return false
}

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	for _, fs := range r.failures {
		if len(fs) > 0 {
			return false
		}
	}
	return true
}

// Invalid returns the names of failing fields, in display order.
func (r Result) Invalid() []string {
	var names []string
	for _, f := range Fields {
		if len(r.failures[f]) > 0 {
			names = append(names, f.Name())
		}
	}
	return names
}

// Store is the subset of the registry the form needs to submit.
type Store interface {
	RowLookup
	Add(rec registry.UserRecord) (registry.UserRecord, error)
	Len() int
}

// Outcome describes the result of a submit.
type Outcome struct {
	Accepted     bool
	Record       registry.UserRecord // set when Accepted
	Result       Result
	DuplicateRow int // 1-based row of the clashing record, 0 if none
}

// Form is the value-typed form state. Methods return an updated copy.
type Form struct {
	draft     Draft
	touched   [fieldCount]bool
	duplicate bool
}

// NewForm returns an empty, untouched form.
func NewForm() Form {
	return Form{}
}

// Draft returns the current values.
func (f Form) Draft() Draft {
	return f.draft
}

// Value returns the current value of field.
func (f Form) Value(field Field) string {
	return f.draft.Value(field)
}

// Set updates field. Universities outside the fixed list are stored as "".
// Changing the email clears a pending duplicate tag.
func (f Form) Set(field Field, value string) Form {
	if !field.valid() {
		return f
	}
	if field == University && value != "" && !IsUniversity(value) {
		value = ""
	}
	if field == Email && value != f.draft.Email {
		f.duplicate = false
	}
	f.draft = f.draft.with(field, value)
	return f
}

// Touch marks field as touched.
func (f Form) Touch(field Field) Form {
	if field.valid() {
		f.touched[field] = true
	}
	return f
}

// TouchAll marks every field as touched.
func (f Form) TouchAll() Form {
	for _, field := range Fields {
		f.touched[field] = true
	}
	return f
}

// Touched reports whether field has been touched.
func (f Form) Touched(field Field) bool {
	return field.valid() && f.touched[field]
}

// Duplicate reports whether the email is tagged DuplicateEmail.
func (f Form) Duplicate() bool {
	return f.duplicate
}

// Validate runs every rule, including the duplicate tag on Email.
func (f Form) Validate() Result {
	var r Result
	for _, field := range Fields {
		r.failures[field] = Check(field, f.draft.Value(field))
	}
	if f.duplicate {
		r.failures[Email] = append(r.failures[Email], DuplicateEmail)
	}
	return r
}

// Valid reports whether the form passes every rule.
func (f Form) Valid() bool {
	return f.Validate().Valid()
}

// Failures returns the failures for a single field.
func (f Form) Failures(field Field) []Failure {
	return f.Validate().Of(field)
}

// Error returns the inline message for field, or "" when the field is
// untouched or valid.
func (f Form) Error(field Field, rows RowLookup) string {
	if !f.Touched(field) {
		return ""
	}
	return Message(f.Failures(field), f.draft.Email, rows)
}

// Reset returns an empty, untouched form.
func (f Form) Reset() Form {
	return NewForm()
}

// Submit attempts to register the draft in store.
//
// A valid draft whose email is not yet registered is appended and the form
// is reset. Otherwise the form stays as it is with every field touched, and
// a clashing email is tagged DuplicateEmail.
func (f Form) Submit(store Store) (Form, Outcome, error) {
	result := f.Validate()
	if !result.Valid() {
		log.Debug(log.CatForm, "submit rejected", "invalid", result.Invalid())
		return f.TouchAll(), Outcome{Result: result}, nil
	}

	if row, ok := store.RowOf(f.draft.Email); ok {
		return f.rejectDuplicate(row)
	}

	rec, err := store.Add(f.draft.Record())
	if errors.Is(err, registry.ErrDuplicateEmail) {
		row, _ := store.RowOf(f.draft.Email)
		return f.rejectDuplicate(row)
	}
	if err != nil {
		return f, Outcome{Result: result}, fmt.Errorf("registering %s: %w", f.draft.Email, err)
	}

	log.Info(log.CatForm, "user registered",
		"first", rec.FirstName,
		"last", rec.LastName,
		"email", rec.Email,
		"university", rec.University,
		"total", store.Len())
	return f.Reset(), Outcome{Accepted: true, Record: rec, Result: result}, nil
}

func (f Form) rejectDuplicate(row int) (Form, Outcome, error) {
	f.duplicate = true
	f = f.TouchAll()
	log.Debug(log.CatForm, "submit rejected", "invalid", Email.Name(), "duplicate_row", row)
	return f, Outcome{Result: f.Validate(), DuplicateRow: row}, nil
}
