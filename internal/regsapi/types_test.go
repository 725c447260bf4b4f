package regsapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentsPageMissingResultsKey(t *testing.T) {
	page, err := parseDocumentsPage([]byte(`{"totalNumRecords": 0}`))
	require.NoError(t, err)
	assert.False(t, page.HasResults())
	assert.Empty(t, page.Results())
}

func TestDocumentsPageEmptyResults(t *testing.T) {
	page, err := parseDocumentsPage([]byte(`{"documents": [], "totalNumRecords": 0}`))
	require.NoError(t, err)
	assert.True(t, page.HasResults(), "an empty list is still a results collection")
	assert.Empty(t, page.Results())
}

func TestParseDocumentsPageFailsFastOnMissingID(t *testing.T) {
	_, err := parseDocumentsPage([]byte(`{"documents": [{"title": "no id"}], "totalNumRecords": 1}`))
	require.Error(t, err)
}

func TestParseDocumentDetail(t *testing.T) {
	raw := `{
		"documentId": "ABC-2020-0001-0002",
		"trackingNumber": "1k4-9abc",
		"rin": "2060-AT55",
		"title": "Comment",
		"postedDate": "01/02/21",
		"receivedDate": "01/01/21",
		"comment": "body text",
		"attachmentCount": "1",
		"attachments": [{"fileFormats": ["https://x/download?documentId=D&attachmentNumber=1&contentType=pdf"]}]
	}`
	detail, err := parseDocumentDetail([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "ABC-2020-0001-0002", detail.DocumentID)
	assert.Equal(t, "01/02/21", detail.PostedDate)
	assert.True(t, detail.HasAttachments())
	require.Len(t, detail.Attachments, 1)
	assert.False(t, detail.Attachments[0].Restricted())
}

func TestParseDocumentDetailFailsFastOnMissingID(t *testing.T) {
	_, err := parseDocumentDetail([]byte(`{"title": "no id"}`))
	require.Error(t, err)
}

func TestHasAttachments(t *testing.T) {
	cases := []struct {
		name  string
		count string
		want  bool
	}{
		{"Zero", "0", false},
		{"Missing", "", false},
		{"NonNumeric", "n/a", false},
		{"One", "1", true},
		{"Many", "12", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := DocumentDetail{AttachmentCount: tc.count}
			assert.Equal(t, tc.want, d.HasAttachments())
		})
	}
}

func TestAttachmentDescriptorKeepsRawJSON(t *testing.T) {
	raw := `{"title":"sealed","restrictReason":"copyright","someUpstreamField":42}`
	var att Attachment
	require.NoError(t, json.Unmarshal([]byte(raw), &att))
	require.True(t, att.Restricted())

	descriptor, err := att.Descriptor()
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(descriptor), "fields outside the schema must survive for the metadata dump")
}

func TestAttachmentDescriptorFallsBackToStruct(t *testing.T) {
	att := Attachment{Title: "built in code"}
	descriptor, err := att.Descriptor()
	require.NoError(t, err)
	assert.Contains(t, string(descriptor), "built in code")
}
