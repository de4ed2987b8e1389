// Package flatfile implements the line-delimited text backing for the phone
// book. This file holds the record codec.
package flatfile

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// FieldSeparator joins name, mobile, and work on one line. Values are not
// escaped, so a value containing the separator does not round-trip.
const FieldSeparator = ": "

// ParseError reports a line that could not be decoded.
type ParseError struct {
	Line int // 1-based
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Decode parses data as `name: mobile: work` records, one per line. Blank
// lines are skipped and a trailing carriage return is dropped. A later line
// for the same name replaces an earlier one.
func Decode(data []byte) (types.PhoneBook, error) {
	if !utf8.Valid(data) {
		return nil, &ParseError{Line: invalidUTF8Line(data), Msg: "content is not valid UTF-8"}
	}

	pb := make(types.PhoneBook)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, FieldSeparator, 3)
		if len(fields) < 3 {
			return nil, &ParseError{
				Line: i + 1,
				Msg:  fmt.Sprintf("expected 3 %q-delimited fields, got %d", FieldSeparator, len(fields)),
			}
		}
		pb[fields[0]] = types.Entry{Mobile: fields[1], Work: fields[2]}
	}
	return pb, nil
}

// Encode renders pb one record per line, ordered by name.
func Encode(pb types.PhoneBook) []byte {
	var buf bytes.Buffer
	for _, rec := range pb.Records() {
		buf.WriteString(rec.Name)
		buf.WriteString(FieldSeparator)
		buf.WriteString(rec.Mobile)
		buf.WriteString(FieldSeparator)
		buf.WriteString(rec.Work)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// invalidUTF8Line returns the 1-based line holding the first invalid byte.
func invalidUTF8Line(data []byte) int {
	line := 1
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		data = data[size:]
	}
	return line
}
