package registration

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

// Failure tags why a value was rejected.
type Failure int

const (
	MissingField Failure = iota + 1
	TooShort
	InvalidEmailSyntax
	DisallowedDomain
	DuplicateEmail
)

func (f Failure) String() string {
	switch f {
	case MissingField:
		return "MissingField"
	case TooShort:
		return "TooShort"
	case InvalidEmailSyntax:
		return "InvalidEmailSyntax"
	case DisallowedDomain:
		return "DisallowedDomain"
	case DuplicateEmail:
		return "DuplicateEmail"
	default:
		return "Unknown"
	}
}

// Rule is a predicate over a field value, tagged with the failure it reports.
type Rule struct {
	Failure Failure
	Check   func(value string) bool
}

// Required fails on the empty string.
func Required() Rule {
	return Rule{
		Failure: MissingField,
		Check:   func(v string) bool { return v != "" },
	}
}

// MinLength fails when value has fewer than n characters. Characters are
// grapheme clusters, so "é" typed as e + combining accent counts once.
// The empty string passes.
func MinLength(n int) Rule {
	return Rule{
		Failure: TooShort,
		Check: func(v string) bool {
			return v == "" || uniseg.GraphemeClusterCount(v) >= n
		},
	}
}

const (
	maxEmailLength     = 254
	maxEmailLocalLength = 64
)

var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
		"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

// EmailSyntax fails unless value is a syntactically valid address.
// The empty string passes.
func EmailSyntax() Rule {
	return Rule{
		Failure: InvalidEmailSyntax,
		Check:   validEmail,
	}
}

func validEmail(v string) bool {
	if v == "" {
		return true
	}
	if len(v) > maxEmailLength {
		return false
	}
	at := strings.IndexByte(v, '@')
	if at < 1 || at > maxEmailLocalLength {
		return false
	}
	return emailPattern.MatchString(v)
}

// DomainAllowlist fails unless value contains at least one of suffixes.
// Containment is deliberately a substring test.
func DomainAllowlist(suffixes ...string) Rule {
	return Rule{
		Failure: DisallowedDomain,
		Check: func(v string) bool {
			for _, s := range suffixes {
				if strings.Contains(v, s) {
					return true
				}
			}
			return false
		},
	}
}

// RulesFor returns the rules that apply to f, in evaluation order.
func RulesFor(f Field) []Rule {
	switch f {
	case FirstName, LastName:
		return []Rule{Required(), MinLength(MinNameLength)}
	case Email:
		return []Rule{Required(), EmailSyntax(), DomainAllowlist(AcceptedDomains...)}
	case University:
		return []Rule{Required()}
	default:
		return nil
	}
}

// Check evaluates every rule for f against value and returns the failures
// in rule order. A nil result means the value is valid.
func Check(f Field, value string) []Failure {
	var out []Failure
	for _, r := range RulesFor(f) {
		if !r.Check(value) {
			out = append(out, r.Failure)
		}
	}
	return out
}
