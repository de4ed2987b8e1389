package types

import "errors"

// Config selects a backing and its location for phonebook.Open.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	Location string `json:"location" yaml:"location"` // empty: in-memory
}

// Supported backend names.
const (
	BackendSQLite   = "sqlite"
	BackendFlatFile = "flatfile"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendFlatFile: true,
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
