package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a Store can return. The set is closed:
// callers may switch on it exhaustively.
type ErrorKind int

const (
	// KindNone is returned by KindOf for nil and non-store errors.
	KindNone ErrorKind = iota
	// KindStorageUnavailable means the backing target could not be opened
	// or created, or the handle is closed.
	KindStorageUnavailable
	// KindMalformedRecord means persisted content could not be parsed.
	KindMalformedRecord
	// KindStorageIO means a read or write failed after a successful open.
	KindStorageIO
)

// Sentinels matched by errors.Is against any *StoreError of the same kind.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrStorageIO          = errors.New("storage I/O failure")
)

// ErrStoreClosed is the cause carried by operations on a closed store.
var ErrStoreClosed = errors.New("store is closed")

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindStorageUnavailable:
		return "StorageUnavailable"
	case KindMalformedRecord:
		return "MalformedRecord"
	case KindStorageIO:
		return "StorageIoFailure"
	default:
		return "None"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindStorageUnavailable:
		return ErrStorageUnavailable
	case KindMalformedRecord:
		return ErrMalformedRecord
	case KindStorageIO:
		return ErrStorageIO
	default:
		return nil
	}
}

// StoreError is the only error type a Store returns.
type StoreError struct {
	Kind     ErrorKind
	Op       string // store operation, e.g. "read_all"
	Location string // file or database path; empty for in-memory stores
	Line     int    // 1-based line number for MalformedRecord, else 0
	Err      error  // underlying cause
}

func (e *StoreError) Error() string {
	msg := e.Op
	if e.Location != "" {
		msg += " " + e.Location
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d", e.Line)
	}
	if sentinel := e.Kind.sentinel(); sentinel != nil {
		msg += ": " + sentinel.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *StoreError) Unwrap() []error {
	var errs []error
	if sentinel := e.Kind.sentinel(); sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Unavailable builds a KindStorageUnavailable error.
func Unavailable(op, location string, err error) error {
	return &StoreError{Kind: KindStorageUnavailable, Op: op, Location: location, Err: err}
}

// Malformed builds a KindMalformedRecord error for the given line.
func Malformed(op, location string, line int, err error) error {
	return &StoreError{Kind: KindMalformedRecord, Op: op, Location: location, Line: line, Err: err}
}

// IOFailure builds a KindStorageIO error.
func IOFailure(op, location string, err error) error {
	return &StoreError{Kind: KindStorageIO, Op: op, Location: location, Err: err}
}

// KindOf reports the ErrorKind of err, or KindNone if err is nil or is not
// a *StoreError.
func KindOf(err error) ErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindNone
}
