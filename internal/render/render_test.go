package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func init() {
	DisableColor()
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, types.PhoneBook{}))
	assert.Equal(t, EmptyMessage+"\n", buf.String())
}

func TestTable_OrderedRows(t *testing.T) {
	var buf bytes.Buffer
	pb := types.PhoneBook{
		"Jack":   {Mobile: "02875902", Work: "98270987"},
		"Arnold": {Mobile: "9027590", Work: "3795780357"},
	}
	require.NoError(t, Table(&buf, pb))

	out := buf.String()
	for _, want := range []string{"Name", "Mobile number", "Work number", "Arnold", "9027590", "3795780357", "Jack", "02875902", "98270987"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Name"), strings.Index(out, "Arnold"))
	assert.Less(t, strings.Index(out, "Arnold"), strings.Index(out, "Jack"))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	pb := types.PhoneBook{
		"Jack":   {Mobile: "02875902", Work: "98270987"},
		"Arnold": {Mobile: "9027590", Work: "3795780357"},
	}
	require.NoError(t, JSON(&buf, pb))

	var got []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]string{
		{"name": "Arnold", "mobile": "9027590", "work": "3795780357"},
		{"name": "Jack", "mobile": "02875902", "work": "98270987"},
	}, got)
}

func TestJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, types.PhoneBook{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestEntryJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EntryJSON(&buf, "Arnold", types.Entry{Mobile: "1", Work: "2"}))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]string{"name": "Arnold", "mobile": "1", "work": "2"}, got)
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "added %s", "Arnold")
	Notice(&buf, "%s not found", "Jack")
	Failure(&buf, "boom")
	Prompt(&buf, "Please enter a name")

	assert.Equal(t, "added Arnold\nJack not found\nboom\nPlease enter a name\n", buf.String())
}
