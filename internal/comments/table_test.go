package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAppendAndHas(t *testing.T) {
	table := NewTable()
	require.False(t, table.Has("ABC-2020-0001-0002"))

	require.NoError(t, table.Append(Record{DocID: "ABC-2020-0001-0002", Title: "first"}))
	require.True(t, table.Has("ABC-2020-0001-0002"))
	require.Equal(t, 1, table.Len())

	err := table.Append(Record{DocID: "ABC-2020-0001-0002", Title: "again"})
	require.Error(t, err, "a docid already present must never be overwritten")
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "first", table.Rows()[0].Title)
}

func TestTableRejectsEmptyDocID(t *testing.T) {
	table := NewTable()
	require.Error(t, table.Append(Record{Title: "no id"}))
}

func TestTableReplace(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Append(Record{DocID: "old"}))

	rows := []Record{
		{DocID: "a", Title: "one"},
		{DocID: "b", Title: "two"},
	}
	require.NoError(t, table.Replace(rows))
	require.Equal(t, 2, table.Len())
	require.True(t, table.Has("a"))
	require.True(t, table.Has("b"))
	require.False(t, table.Has("old"))
}

func TestTableReplaceRejectsDuplicates(t *testing.T) {
	table := NewTable()
	err := table.Replace([]Record{{DocID: "a"}, {DocID: "a"}})
	require.Error(t, err)
}

func TestRecordValuesMatchColumnOrder(t *testing.T) {
	r := Record{
		DocID:          "id",
		TrackingNumber: "trk",
		RIN:            "rin",
		Title:          "title",
		DatePosted:     "01/02/21",
		DateReceived:   "01/01/21",
		CommentText:    "text",
		Attachments:    "a b",
	}
	require.Len(t, Columns(), 8)
	assert.Equal(t, []string{"id", "trk", "rin", "title", "01/02/21", "01/01/21", "text", "a b"}, r.Values())
	assert.Equal(t, "docid", Columns()[0])
}
