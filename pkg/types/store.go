package types

// Store provides durable CRUD over a PhoneBook keyed by name. Every backing
// (flat file, SQLite) satisfies the same contract; each call round-trips
// through durable storage and nothing is cached between calls.
type Store interface {
	// ReadAll returns every entry. A backing that has never been written
	// returns an empty PhoneBook, not an error.
	ReadAll() (PhoneBook, error)

	// ReadOne returns the entry for name. The boolean is false when the
	// name is absent; absence is not an error.
	ReadOne(name string) (Entry, bool, error)

	// WriteOne inserts or fully replaces the entry for name.
	WriteOne(name string, e Entry) error

	// RemoveOne deletes the entry for name. Removing an absent name is a
	// no-op.
	RemoveOne(name string) error

	// WriteAll replaces the stored contents with exactly pb. The replace
	// is atomic: a crash leaves either the old or the new contents.
	WriteAll(pb PhoneBook) error

	// Close releases the handle. Close is idempotent; other operations
	// fail with ErrStoreClosed afterwards.
	Close() error
}
