// Package storetest holds the behavioural contract every types.Store backing
// must satisfy. Backing packages call Run from their own tests.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Opener opens a store at location. An empty location requests an
// in-memory store.
type Opener func(location string) (types.Store, error)

// Run exercises open against the store contract. newLocation returns a fresh
// location per subtest; returning "" runs the in-memory variant and skips
// the reopen checks.
func Run(t *testing.T, open Opener, newLocation func(t *testing.T) string) {
	t.Helper()

	openStore := func(t *testing.T, location string) types.Store {
		t.Helper()
		s, err := open(location)
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	}

	arnold := types.Entry{Mobile: "9027590", Work: "3795780357"}
	jack := types.Entry{Mobile: "02875902", Work: "98270987"}

	t.Run("fresh location reads empty", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		pb, err := s.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, pb)

		_, ok, err := s.ReadOne("Arnold")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("write one then read one", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		require.NoError(t, s.WriteOne("Arnold", arnold))

		got, ok, err := s.ReadOne("Arnold")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, arnold, got)
	})

	t.Run("two entries listed by name", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		require.NoError(t, s.WriteOne("Jack", jack))
		require.NoError(t, s.WriteOne("Arnold", arnold))

		pb, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, types.PhoneBook{"Arnold": arnold, "Jack": jack}, pb)
		assert.Equal(t, []string{"Arnold", "Jack"}, pb.Names())
	})

	t.Run("write one is idempotent", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		require.NoError(t, s.WriteOne("Arnold", arnold))
		once, err := s.ReadAll()
		require.NoError(t, err)

		require.NoError(t, s.WriteOne("Arnold", arnold))
		twice, err := s.ReadAll()
		require.NoError(t, err)

		assert.Equal(t, once, twice)
		assert.Len(t, twice, 1)
	})

	t.Run("last write wins", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		replacement := types.Entry{Mobile: "111", Work: ""}
		require.NoError(t, s.WriteOne("Arnold", arnold))
		require.NoError(t, s.WriteOne("Arnold", replacement))

		got, ok, err := s.ReadOne("Arnold")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, replacement, got)

		pb, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, types.PhoneBook{"Arnold": replacement}, pb)
	})

	t.Run("names are case sensitive", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		require.NoError(t, s.WriteOne("arnold", jack))
		require.NoError(t, s.WriteOne("Arnold", arnold))

		pb, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, types.PhoneBook{"Arnold": arnold, "arnold": jack}, pb)
	})

	t.Run("remove absent name is a no-op", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		require.NoError(t, s.RemoveOne("Arnold"))
		pb, err := s.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, pb)

		require.NoError(t, s.WriteOne("Jack", jack))
		require.NoError(t, s.RemoveOne("Arnold"))
		pb, err = s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, types.PhoneBook{"Jack": jack}, pb)
	})

	t.Run("remove present name", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		require.NoError(t, s.WriteOne("Arnold", arnold))
		require.NoError(t, s.WriteOne("Jack", jack))
		require.NoError(t, s.RemoveOne("Arnold"))

		_, ok, err := s.ReadOne("Arnold")
		require.NoError(t, err)
		assert.False(t, ok)

		pb, err := s.ReadAll()
		require.NoError(t, err)
		assert.NotContains(t, pb, "Arnold")
		assert.Equal(t, types.PhoneBook{"Jack": jack}, pb)
	})

	t.Run("write all round trip", func(t *testing.T) {
		books := []types.PhoneBook{
			{},
			{"cat": {Mobile: "0", Work: "1"}},
			{"Arnold": arnold, "Jack": jack},
			{"empty fields": {}, "Zoë": {Mobile: "+46 70 123", Work: "ext. 4"}},
		}
		for _, want := range books {
			s := openStore(t, newLocation(t))

			require.NoError(t, s.WriteAll(want))
			got, err := s.ReadAll()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("write all replaces previous contents", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		require.NoError(t, s.WriteOne("Arnold", arnold))
		require.NoError(t, s.WriteOne("Jack", jack))

		want := types.PhoneBook{"cat": {Mobile: "0", Work: "1"}}
		require.NoError(t, s.WriteAll(want))

		got, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, want, got)

		require.NoError(t, s.WriteAll(types.PhoneBook{}))
		got, err = s.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("read all result is detached from the store", func(t *testing.T) {
		s := openStore(t, newLocation(t))

		require.NoError(t, s.WriteOne("Arnold", arnold))
		pb, err := s.ReadAll()
		require.NoError(t, err)
		pb["Jack"] = jack

		again, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, types.PhoneBook{"Arnold": arnold}, again)
	})

	t.Run("operations after close fail", func(t *testing.T) {
		s, err := open(newLocation(t))
		require.NoError(t, err)
		require.NoError(t, s.Close())
		require.NoError(t, s.Close(), "Close must be idempotent")

		_, err = s.ReadAll()
		assert.ErrorIs(t, err, types.ErrStorageUnavailable)
		assert.ErrorIs(t, err, types.ErrStoreClosed)

		_, _, err = s.ReadOne("Arnold")
		assert.ErrorIs(t, err, types.ErrStorageUnavailable)

		assert.ErrorIs(t, s.WriteOne("Arnold", arnold), types.ErrStorageUnavailable)
		assert.ErrorIs(t, s.RemoveOne("Arnold"), types.ErrStorageUnavailable)
		assert.ErrorIs(t, s.WriteAll(types.PhoneBook{}), types.ErrStorageUnavailable)
	})

	t.Run("writes survive reopen", func(t *testing.T) {
		location := newLocation(t)
		if location == "" {
			t.Skip("in-memory store has no durable location")
		}

		s, err := open(location)
		require.NoError(t, err)
		require.NoError(t, s.WriteOne("Arnold", arnold))
		require.NoError(t, s.WriteOne("Jack", jack))
		require.NoError(t, s.RemoveOne("Jack"))
		require.NoError(t, s.Close())

		reopened := openStore(t, location)
		pb, err := reopened.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, types.PhoneBook{"Arnold": arnold}, pb)
	})

	t.Run("write all survives reopen", func(t *testing.T) {
		location := newLocation(t)
		if location == "" {
			t.Skip("in-memory store has no durable location")
		}

		want := types.PhoneBook{"Arnold": arnold, "Jack": jack}
		s, err := open(location)
		require.NoError(t, err)
		require.NoError(t, s.WriteAll(want))
		require.NoError(t, s.Close())

		reopened := openStore(t, location)
		pb, err := reopened.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, want, pb)
	})
}
