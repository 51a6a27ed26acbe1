package registry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zjrosen/enrol/internal/log"
	"github.com/zjrosen/enrol/internal/pubsub"
)

// Registry errors
var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrNotFound        = errors.New("user not found")
)

// UserRecord is an immutable snapshot of an accepted registration.
type UserRecord struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Email      string
	University string
}

// Registry is the ordered sequence of registered users.
type Registry struct {
	records []UserRecord
	broker  *pubsub.Broker[UserRecord]
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		records: make([]UserRecord, 0),
		broker:  pubsub.NewBroker[UserRecord](),
	}
}

// Add appends rec. A zero ID is replaced with a fresh UUID.
// Returns ErrDuplicateEmail if rec.Email is already present.
func (r *Registry) Add(rec UserRecord) (UserRecord, error) {
	if row, ok := r.RowOf(rec.Email); ok {
		return UserRecord{}, fmt.Errorf("adding %q (row %d): %w", rec.Email, row, ErrDuplicateEmail)
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	r.records = append(r.records, rec)
	log.Debug(log.CatRegistry, "record added", "id", rec.ID, "rows", len(r.records))
	r.broker.Publish(pubsub.AddedEvent, rec)
	return rec, nil
}

// IndexOf returns the 0-based index of the first record with email, or -1.
func (r *Registry) IndexOf(email string) int {
	for i, rec := range r.records {
		if rec.Email == email {
			return i
		}
	}
	return -1
}

// RowOf returns the 1-based display row of the first record with email.
func (r *Registry) RowOf(email string) (int, bool) {
	i := r.IndexOf(email)
	if i < 0 {
		return 0, false
	}
	return i + 1, true
}

// Contains reports whether email is registered.
func (r *Registry) Contains(email string) bool {
	return r.IndexOf(email) >= 0
}

// At returns the record at the 0-based display index.
func (r *Registry) At(index int) (UserRecord, error) {
	if index < 0 || index >= len(r.records) {
		return UserRecord{}, fmt.Errorf("row %d of %d: %w", index, len(r.records), ErrIndexOutOfRange)
	}
	return r.records[index], nil
}

// Get returns the record with the given ID.
func (r *Registry) Get(id uuid.UUID) (UserRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return UserRecord{}, fmt.Errorf("id %s: %w", id, ErrNotFound)
}

// Remove deletes the record at the 0-based display index. Later rows shift up.
func (r *Registry) Remove(index int) (UserRecord, error) {
	rec, err := r.At(index)
	if err != nil {
		return UserRecord{}, err
	}

	r.records = append(r.records[:index], r.records[index+1:]...)
	log.Debug(log.CatRegistry, "record removed", "id", rec.ID, "row", index+1, "rows", len(r.records))
	r.broker.Publish(pubsub.RemovedEvent, rec)
	return rec, nil
}

// RemoveByID deletes the record with the given ID.
func (r *Registry) RemoveByID(id uuid.UUID) (UserRecord, error) {
	for i, rec := range r.records {
		if rec.ID == id {
			return r.Remove(i)
		}
	}
	return UserRecord{}, fmt.Errorf("id %s: %w", id, ErrNotFound)
}

// List returns a copy of all records in display order.
func (r *Registry) List() []UserRecord {
	out := make([]UserRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Broker returns the change-event broker.
func (r *Registry) Broker() *pubsub.Broker[UserRecord] {
	return r.broker
}

// Close shuts down the broker and its subscribers.
func (r *Registry) Close() {
	r.broker.Close()
}
