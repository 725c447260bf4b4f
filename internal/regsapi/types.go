// Package regsapi implements the client for the regulatory docket API,
// including request pacing, bounded retry, and the boundary schema for the
// upstream's loosely-typed JSON.
package regsapi

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DocumentsQuery narrows a documents listing request.
type DocumentsQuery struct {
	DocketID   string
	PostedDate string
	PerPage    int
	PageOffset int
}

// DocumentsPage is one page of a documents listing. Documents stays nil when
// the response has no "documents" key at all; callers treat that as end of
// data rather than an error.
type DocumentsPage struct {
	Documents       *[]DocumentSummary `json:"documents"`
	TotalNumRecords int                `json:"totalNumRecords"`
}

// HasResults reports whether the page carried a documents collection.
func (p DocumentsPage) HasResults() bool {
	return p.Documents != nil
}

// Results returns the page's document summaries, empty when absent.
func (p DocumentsPage) Results() []DocumentSummary {
	if p.Documents == nil {
		return nil
	}
	return *p.Documents
}

// DocumentSummary is one listing entry; only the id is needed to decide
// whether the full detail must be fetched.
type DocumentSummary struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	PostedDate string `json:"postedDate"`
}

// DocumentDetail is the full comment document as returned by the detail
// endpoint. Date strings are kept verbatim in the upstream format.
type DocumentDetail struct {
	DocumentID      string       `json:"documentId"`
	TrackingNumber  string       `json:"trackingNumber"`
	RIN             string       `json:"rin"`
	Title           string       `json:"title"`
	PostedDate      string       `json:"postedDate"`
	ReceivedDate    string       `json:"receivedDate"`
	Comment         string       `json:"comment"`
	AttachmentCount string       `json:"attachmentCount"`
	Attachments     []Attachment `json:"attachments"`
}

// HasAttachments reads the upstream's ad hoc numeric-string attachment count.
// A missing or non-numeric count means no attachments.
func (d DocumentDetail) HasAttachments() bool {
	n, err := strconv.Atoi(d.AttachmentCount)
	return err == nil && n > 0
}

// Attachment is one attachment descriptor. The raw JSON is retained so
// restricted attachments can be dumped exactly as the upstream sent them.
type Attachment struct {
	AttachmentOrderNumber int      `json:"attachmentOrderNumber"`
	Title                 string   `json:"title"`
	FileFormats           []string `json:"fileFormats"`

	raw json.RawMessage
}

// UnmarshalJSON keeps a verbatim copy of the descriptor alongside the parsed
// fields.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	type alias Attachment
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*a = Attachment(aux)
	a.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Restricted reports whether the attachment has no downloadable file list.
func (a Attachment) Restricted() bool {
	return a.FileFormats == nil
}

// Descriptor returns the attachment exactly as received. For descriptors
// built in code rather than decoded from a response it falls back to
// marshaling the struct.
func (a Attachment) Descriptor() (json.RawMessage, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal attachment descriptor: %w", err)
	}
	return data, nil
}

// parseDocumentsPage decodes one listing page, failing fast on entries with
// no document id.
func parseDocumentsPage(data []byte) (DocumentsPage, error) {
	var page DocumentsPage
	if err := json.Unmarshal(data, &page); err != nil {
		return DocumentsPage{}, fmt.Errorf("decode documents page: %w", err)
	}
	for i, doc := range page.Results() {
		if doc.DocumentID == "" {
			return DocumentsPage{}, fmt.Errorf("documents page entry %d has no documentId", i)
		}
	}
	return page, nil
}

// parseDocumentDetail decodes a document detail response.
func parseDocumentDetail(data []byte) (DocumentDetail, error) {
	var detail DocumentDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return DocumentDetail{}, fmt.Errorf("decode document detail: %w", err)
	}
	if detail.DocumentID == "" {
		return DocumentDetail{}, fmt.Errorf("document detail has no documentId")
	}
	return detail, nil
}
