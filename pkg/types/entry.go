package types

import "sort"

// Entry holds the two numbers recorded for a name. Contents are not
// validated; empty strings are accepted. An update replaces the whole Entry.
type Entry struct {
	Mobile string `json:"mobile" yaml:"mobile"`
	Work   string `json:"work" yaml:"work"`
}

// Record pairs a name with its Entry for ordered listings.
type Record struct {
	Name string `json:"name" yaml:"name"`
	Entry
}

// PhoneBook maps a name to its Entry. Names are case-sensitive and are
// stored exactly as given.
type PhoneBook map[string]Entry

// Names returns the names in ascending lexicographic order.
func (pb PhoneBook) Names() []string {
	names := make([]string, 0, len(pb))
	for name := range pb {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns every entry ordered by name. Listing paths use this so
// display order does not depend on storage order.
func (pb PhoneBook) Records() []Record {
	records := make([]Record, 0, len(pb))
	for _, name := range pb.Names() {
		records = append(records, Record{Name: name, Entry: pb[name]})
	}
	return records
}

// Clone returns a copy that shares no state with pb.
func (pb PhoneBook) Clone() PhoneBook {
	out := make(PhoneBook, len(pb))
	for name, e := range pb {
		out[name] = e
	}
	return out
}
