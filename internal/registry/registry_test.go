package registry

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/enrol/internal/pubsub"
)

func user(email string) UserRecord {
	return UserRecord{FirstName: "Ada", LastName: "Lovelace", Email: email, University: "MIT"}
}

func TestNew(t *testing.T) {
	reg := New()
	require.NotNil(t, reg)
	require.Empty(t, reg.List())
	require.Equal(t, 0, reg.Len())
}

func TestRegistry_Add(t *testing.T) {
	reg := New()

	rec, err := reg.Add(user("a@edu.com"))

	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, rec.ID)
	require.Equal(t, []UserRecord{rec}, reg.List())
}

func TestRegistry_Add_KeepsExplicitID(t *testing.T) {
	reg := New()
	id := uuid.New()
	in := user("a@edu.com")
	in.ID = id

	rec, err := reg.Add(in)

	require.NoError(t, err)
	require.Equal(t, id, rec.ID)
}

func TestRegistry_Add_DuplicateEmail(t *testing.T) {
	reg := New()
	_, err := reg.Add(user("a@edu.com"))
	require.NoError(t, err)

	_, err = reg.Add(user("a@edu.com"))

	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.Equal(t, 1, reg.Len())
}

func TestRegistry_Add_EmailIsCaseSensitive(t *testing.T) {
	reg := New()
	_, err := reg.Add(user("a@edu.com"))
	require.NoError(t, err)

	_, err = reg.Add(user("A@edu.com"))

	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())
}

func TestRegistry_RowOf(t *testing.T) {
	reg := New()
	for _, e := range []string{"a@edu.com", "b@edu.com", "c@edu.com"} {
		_, err := reg.Add(user(e))
		require.NoError(t, err)
	}

	row, ok := reg.RowOf("b@edu.com")
	require.True(t, ok)
	require.Equal(t, 2, row)

	_, ok = reg.RowOf("missing@edu.com")
	require.False(t, ok)
	require.Equal(t, -1, reg.IndexOf("missing@edu.com"))
	require.True(t, reg.Contains("c@edu.com"))
}

func TestRegistry_At_OutOfRange(t *testing.T) {
	reg := New()

	_, err := reg.At(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = reg.At(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRegistry_Remove_ShiftsRows(t *testing.T) {
	reg := New()
	for _, e := range []string{"a@edu.com", "b@edu.com", "c@edu.com"} {
		_, err := reg.Add(user(e))
		require.NoError(t, err)
	}

	removed, err := reg.Remove(1)

	require.NoError(t, err)
	require.Equal(t, "b@edu.com", removed.Email)
	require.Equal(t, 2, reg.Len())

	second, err := reg.At(1)
	require.NoError(t, err)
	require.Equal(t, "c@edu.com", second.Email)
}

func TestRegistry_Remove_OutOfRange(t *testing.T) {
	reg := New()
	_, err := reg.Add(user("a@edu.com"))
	require.NoError(t, err)

	_, err = reg.Remove(5)

	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.Equal(t, 1, reg.Len())
}

func TestRegistry_GetAndRemoveByID(t *testing.T) {
	reg := New()
	rec, err := reg.Add(user("a@edu.com"))
	require.NoError(t, err)

	got, err := reg.Get(rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec, got)

	_, err = reg.RemoveByID(uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = reg.RemoveByID(rec.ID)
	require.NoError(t, err)
	require.Equal(t, 0, reg.Len())

	_, err = reg.Get(rec.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_ListReturnsCopy(t *testing.T) {
	reg := New()
	_, err := reg.Add(user("a@edu.com"))
	require.NoError(t, err)

	list := reg.List()
	list[0].Email = "mutated@edu.com"

	rec, err := reg.At(0)
	require.NoError(t, err)
	require.Equal(t, "a@edu.com", rec.Email)
}

func TestRegistry_PublishesChanges(t *testing.T) {
	reg := New()
	t.Cleanup(reg.Close)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := reg.Broker().Subscribe(ctx)

	rec, err := reg.Add(user("a@edu.com"))
	require.NoError(t, err)
	_, err = reg.Remove(0)
	require.NoError(t, err)

	added := <-ch
	require.Equal(t, pubsub.AddedEvent, added.Type)
	require.Equal(t, rec, added.Payload)

	removed := <-ch
	require.Equal(t, pubsub.RemovedEvent, removed.Type)
	require.Equal(t, rec.Email, removed.Payload.Email)
}

func TestRegistry_EmailsStayUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := New()
		emails := rapid.SliceOf(rapid.SampledFrom([]string{
			"a@edu.com", "b@edu.com", "c@m.m", "d@a.a", "e@university.edu",
		})).Draw(t, "emails")

		for _, e := range emails {
			_, _ = reg.Add(user(e))
		}

		seen := make(map[string]bool)
		for _, rec := range reg.List() {
			if seen[rec.Email] {
				t.Fatalf("duplicate email %q in registry", rec.Email)
			}
			seen[rec.Email] = true
		}
	})
}

func TestRegistry_RemoveExactlyOneRow(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := New()
		n := rapid.IntRange(1, 12).Draw(t, "n")
		for i := range n {
			if _, err := reg.Add(user(fmt.Sprintf("u%d@edu.com", i))); err != nil {
				t.Fatalf("add: %v", err)
			}
		}
		before := reg.List()
		idx := rapid.IntRange(0, n-1).Draw(t, "idx")

		removed, err := reg.Remove(idx)
		if err != nil {
			t.Fatalf("remove: %v", err)
		}

		after := reg.List()
		want := append(append([]UserRecord{}, before[:idx]...), before[idx+1:]...)
		if removed != before[idx] {
			t.Fatalf("removed %v, want %v", removed, before[idx])
		}
		if len(after) != len(want) {
			t.Fatalf("len %d, want %d", len(after), len(want))
		}
		for i := range want {
			if after[i] != want[i] {
				t.Fatalf("row %d = %v, want %v", i, after[i], want[i])
			}
		}
	})
}
