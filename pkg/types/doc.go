// Package types defines the Store interface, the phone book value types, the
// store Config, and the closed error taxonomy shared by every backing.
package types
