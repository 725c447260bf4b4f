package csvfile

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openregs/docketsync/internal/comments"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.csv")
	rows := []comments.Record{
		{
			DocID:       "D-1",
			Title:       "has, comma",
			DatePosted:  "01/02/21",
			CommentText: "multi\nline",
			Attachments: "a.pdf b.pdf",
		},
		{DocID: "D-2"},
	}
	require.NoError(t, Write(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, comments.Columns(), records[0])
	assert.Equal(t, rows[0].Values(), records[1])
	assert.Equal(t, rows[1].Values(), records[2])
}

func TestWriteEmptyTableStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, Write(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, comments.Columns(), records[0])
}
