// Package registry holds the in-memory, ordered list of registered users.
//
// Insertion order is display order. Emails are unique: Add refuses a record
// whose email exactly matches an existing one (case-sensitive). Records are
// values and are never mutated after insertion; they leave the registry only
// through Remove.
//
// Every change is published on the registry's broker so that UI components
// can react (toasts, logs) without holding a reference to the registry.
package registry
