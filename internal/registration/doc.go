// Package registration implements the user-registration form: the four
// fields, their validation rules, the inline error messages and the submit
// transition that moves a valid draft into the registry.
//
// # Validation
//
// Each field carries an ordered list of rules. A rule is a predicate tagged
// with the Failure it reports. Rules are evaluated independently, so a value
// can fail several at once; the message shown for a field is chosen by a
// fixed precedence chain (MissingField, TooShort, InvalidEmailSyntax,
// DisallowedDomain, DuplicateEmail) and the first failure in that order
// wins.
//
// MinLength and EmailSyntax pass on the empty string so that an empty field
// reports only MissingField. DomainAllowlist checks substring containment,
// not a suffix match: "x@m.m.evil.com" is accepted.
//
// # Touched state
//
// A field's message is only shown once the field is touched. Touching is
// driven from outside (the UI marks a field on blur) and by a rejected
// submit, which touches every field.
//
// # Submission
//
//	Editing --submit(valid, unique email)--> record appended, form reset
//	Editing --submit(invalid)--------------> Editing, all fields touched
//	Editing --submit(duplicate email)------> Editing, all fields touched,
//	                                          email tagged DuplicateEmail
//
// The duplicate tag is cleared as soon as the email value changes.
package registration
