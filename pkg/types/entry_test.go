package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneBookNames(t *testing.T) {
	pb := PhoneBook{
		"Jack":   {Mobile: "02875902", Work: "98270987"},
		"Arnold": {Mobile: "9027590", Work: "3795780357"},
		"arnold": {Mobile: "1", Work: "2"},
		"Zoe":    {},
	}

	assert.Equal(t, []string{"Arnold", "Jack", "Zoe", "arnold"}, pb.Names())
}

func TestPhoneBookNamesEmpty(t *testing.T) {
	assert.Empty(t, PhoneBook{}.Names())
	assert.Empty(t, PhoneBook(nil).Records())
}

func TestPhoneBookRecords(t *testing.T) {
	pb := PhoneBook{
		"Jack":   {Mobile: "02875902", Work: "98270987"},
		"Arnold": {Mobile: "9027590", Work: "3795780357"},
	}

	got := pb.Records()
	assert.Equal(t, []Record{
		{Name: "Arnold", Entry: Entry{Mobile: "9027590", Work: "3795780357"}},
		{Name: "Jack", Entry: Entry{Mobile: "02875902", Work: "98270987"}},
	}, got)
}

func TestPhoneBookClone(t *testing.T) {
	pb := PhoneBook{"Arnold": {Mobile: "1", Work: "2"}}
	cp := pb.Clone()
	cp["Arnold"] = Entry{Mobile: "3", Work: "4"}
	cp["Jack"] = Entry{}

	assert.Equal(t, Entry{Mobile: "1", Work: "2"}, pb["Arnold"])
	assert.Len(t, pb, 1)
}
