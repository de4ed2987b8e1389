package types

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreErrorKinds(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		kind     ErrorKind
		sentinel error
	}{
		{"unavailable", Unavailable("open", "/x/phonebook.db", cause), KindStorageUnavailable, ErrStorageUnavailable},
		{"malformed", Malformed("read_all", "/x/phonebook.txt", 3, cause), KindMalformedRecord, ErrMalformedRecord},
		{"io failure", IOFailure("write_one", "", cause), KindStorageIO, ErrStorageIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.ErrorIs(t, tt.err, cause)

			wrapped := fmt.Errorf("command: %w", tt.err)
			assert.Equal(t, tt.kind, KindOf(wrapped))
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestStoreErrorDoesNotMatchOtherKinds(t *testing.T) {
	err := Malformed("read_all", "", 1, nil)
	assert.NotErrorIs(t, err, ErrStorageIO)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
}

func TestStoreErrorMessage(t *testing.T) {
	err := Malformed("read_all", "/data/phonebook.txt", 2, errors.New(`expected 3 fields, got 1`))
	assert.Equal(t, "read_all /data/phonebook.txt line 2: malformed record: expected 3 fields, got 1", err.Error())

	err = IOFailure("write_all", "", nil)
	assert.Equal(t, "write_all: storage I/O failure", err.Error())
}

func TestStoreErrorAs(t *testing.T) {
	err := IOFailure("read_all", "/data/phonebook.txt", fs.ErrPermission)

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "read_all", se.Op)
	assert.Equal(t, "/data/phonebook.txt", se.Location)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestKindOfNonStoreError(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindNone, KindOf(errors.New("plain")))
	assert.Equal(t, "None", KindNone.String())
	assert.Equal(t, "StorageIoFailure", KindStorageIO.String())
}
