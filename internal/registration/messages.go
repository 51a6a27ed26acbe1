package registration

import (
	"fmt"
	"strings"
)

// RowLookup resolves an email to its 1-based registry row.
type RowLookup interface {
	RowOf(email string) (int, bool)
}

// message pairs a failure with the text shown for it.
type message struct {
	failure Failure
	text    func(email string, rows RowLookup) string
}

// messageChain is ordered by precedence. The first entry whose failure is
// present wins.
var messageChain = []message{
	{MissingField, constant("This field is required")},
	{TooShort, constant(fmt.Sprintf("Minimum length is %d characters", MinNameLength))},
	{InvalidEmailSyntax, constant("Please enter a valid email")},
	{DisallowedDomain, constant("Domain must be " + strings.Join(AcceptedDomains, ", "))},
	{DuplicateEmail, duplicateMessage},
}

func constant(s string) func(string, RowLookup) string {
	return func(string, RowLookup) string { return s }
}

func duplicateMessage(email string, rows RowLookup) string {
	if rows != nil {
		if row, ok := rows.RowOf(email); ok {
			return fmt.Sprintf("email is already added (row: %d)", row)
		}
	}
	return "email is already added"
}

// Message returns the text for the highest-precedence failure in failures,
// or "" when failures is empty. email and rows are only consulted for
// DuplicateEmail.
func Message(failures []Failure, email string, rows RowLookup) string {
	for _, m := range messageChain {
		for _, f := range failures {
			if f == m.failure {
				return m.text(email, rows)
			}
		}
	}
	return ""
}
