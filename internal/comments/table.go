// Package comments defines the comment record and the in-memory table
// accumulated during a sync run.
package comments

import "fmt"

// Record is one retrieved public comment. All fields are stored and
// persisted as text; date strings keep the upstream format verbatim.
type Record struct {
	DocID          string `db:"docid"`
	TrackingNumber string `db:"tracking_number"`
	RIN            string `db:"rin"`
	Title          string `db:"title"`
	DatePosted     string `db:"date_posted"`
	DateReceived   string `db:"date_received"`
	CommentText    string `db:"comment_text"`
	// Attachments is a space-joined list of local file paths, empty when the
	// comment has none.
	Attachments string `db:"attachments"`
}

// Columns is the fixed persistence column order.
func Columns() []string {
	return []string{
		"docid",
		"tracking_number",
		"rin",
		"title",
		"date_posted",
		"date_received",
		"comment_text",
		"attachments",
	}
}

// Values returns the record's fields in Columns order.
func (r Record) Values() []string {
	return []string{
		r.DocID,
		r.TrackingNumber,
		r.RIN,
		r.Title,
		r.DatePosted,
		r.DateReceived,
		r.CommentText,
		r.Attachments,
	}
}

// Table holds records in retrieval order with a docid index for O(1)
// membership checks. A record present by docid is never overwritten.
type Table struct {
	rows  []Record
	index map[string]struct{}
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]struct{})}
}

// Replace swaps the table contents for rows, rebuilding the index.
func (t *Table) Replace(rows []Record) error {
	t.rows = nil
	t.index = make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if err := t.Append(r); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether a record with this docid was already retrieved.
func (t *Table) Has(docID string) bool {
	_, ok := t.index[docID]
	return ok
}

// Append adds a record at the end of the table. Records without a docid or
// with a docid already present are rejected.
func (t *Table) Append(r Record) error {
	if r.DocID == "" {
		return fmt.Errorf("record has no docid")
	}
	if t.Has(r.DocID) {
		return fmt.Errorf("duplicate docid %s", r.DocID)
	}
	t.rows = append(t.rows, r)
	t.index[r.DocID] = struct{}{}
	return nil
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the records in insertion order. Callers must not mutate the
// returned slice.
func (t *Table) Rows() []Record {
	return t.rows
}
