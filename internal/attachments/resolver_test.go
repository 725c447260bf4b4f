package attachments

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openregs/docketsync/internal/regsapi"
)

type fakeDownloader struct {
	urls []string
	err  error
}

func (d *fakeDownloader) Download(_ context.Context, rawURL string, dest string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.urls = append(d.urls, rawURL)
	if err := os.WriteFile(dest, []byte("content"), 0o600); err != nil {
		return "", err
	}
	return rawURL, nil
}

func mustAttachment(t *testing.T, raw string) regsapi.Attachment {
	t.Helper()
	var att regsapi.Attachment
	require.NoError(t, json.Unmarshal([]byte(raw), &att))
	return att
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "attachments")
	_, err := New(&fakeDownloader{}, dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewRequiresDirectory(t *testing.T) {
	_, err := New(&fakeDownloader{}, "", nil)
	require.Error(t, err)
}

func TestResolveRestrictedWritesMetadata(t *testing.T) {
	dir := t.TempDir()
	resolver, err := New(&fakeDownloader{}, dir, nil)
	require.NoError(t, err)

	att := mustAttachment(t, `{"title":"sealed exhibit","restrictReason":"copyright"}`)
	require.True(t, att.Restricted())

	paths, err := resolver.Resolve(context.Background(), "ABC-2020-0001-0002", 1, att)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "ABC-2020-0001-0002_1.json")}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "copyright", decoded["restrictReason"])
	assert.Contains(t, string(data), "\n  \"", "metadata should be indented")
}

func TestResolveDownloadsEachURIInOrder(t *testing.T) {
	dir := t.TempDir()
	dl := &fakeDownloader{}
	resolver, err := New(dl, dir, nil)
	require.NoError(t, err)

	att := mustAttachment(t, `{"fileFormats":[
		"https://api.example.gov/download?documentId=D-1&attachmentNumber=1&contentType=pdf",
		"https://api.example.gov/download?documentId=D-1&attachmentNumber=1&contentType=msw12"
	]}`)
	require.False(t, att.Restricted())

	paths, err := resolver.Resolve(context.Background(), "D-1", 1, att)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "D-1_1.pdf"),
		filepath.Join(dir, "D-1_1.msw12"),
	}, paths)
	require.Len(t, dl.urls, 2)

	for _, p := range paths {
		_, err := os.Stat(p)
		require.NoError(t, err)
	}
}

func TestResolveFailsOnMissingQueryParams(t *testing.T) {
	resolver, err := New(&fakeDownloader{}, t.TempDir(), nil)
	require.NoError(t, err)

	att := mustAttachment(t, `{"fileFormats":["https://api.example.gov/download?documentId=D-1"]}`)
	_, err = resolver.Resolve(context.Background(), "D-1", 1, att)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attachmentNumber")
}
