package registration

import "slices"

// Field identifies one input of the form.
type Field int

const (
	FirstName Field = iota
	LastName
	Email
	University
)

// Fields lists every field in display order.
var Fields = []Field{FirstName, LastName, Email, University}

const fieldCount = 4

// Name returns the field's identifier.
func (f Field) Name() string {
	switch f {
	case FirstName:
		return "firstName"
	case LastName:
		return "lastName"
	case Email:
		return "email"
	case University:
		return "university"
	default:
		return "unknown"
	}
}

// Label returns the human-readable field label.
func (f Field) Label() string {
	switch f {
	case FirstName:
		return "First name"
	case LastName:
		return "Last name"
	case Email:
		return "Email"
	case University:
		return "University"
	default:
		return ""
	}
}

func (f Field) String() string { return f.Name() }

func (f Field) valid() bool {
	return f >= FirstName && f <= University
}

// MinNameLength is the minimum length of first and last names.
const MinNameLength = 2

// AcceptedDomains are the email domain fragments the form accepts.
var AcceptedDomains = []string{"@edu.com", "@university.edu", "@a.a", "@m.m"}

// Universities are the selectable institutions, in display order.
var Universities = []string{
	"Harvard University",
	"Stanford University",
	"MIT",
	"Oxford University",
	"Cambridge University",
	"Yale University",
	"Princeton University",
}

// IsUniversity reports whether name is one of Universities.
func IsUniversity(name string) bool {
	return slices.Contains(Universities, name)
}
