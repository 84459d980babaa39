// =============================================================================
// Excel to DTE Converter - Row Ledger
// =============================================================================
//
// The row ledger is the audit trail of one processing run: one SUCCESS entry
// per grouped document identifier and one Error entry per failure, in the
// exact chronological order they were recorded. It is flushed to a CSV
// companion file at the end of the run.
//
// =============================================================================

package engine

import "time"

// Status is the outcome recorded on a ledger entry.
type Status string

const (
	// StatusSuccess marks an identifier that produced a record.
	StatusSuccess Status = "SUCCESS"

	// StatusError marks a run-, sheet-, row- or merge-level failure.
	StatusError Status = "Error"
)

// timestampLayout is the error-entry timestamp format.
const timestampLayout = "2006-01-02 15:04:05"

// Entry is one immutable ledger row. Every serialized entry has exactly four
// fields; Timestamp is empty on success entries.
type Entry struct {
	// ID is the document identifier, or empty for run- and sheet-level
	// entries that have no single identifier.
	ID string

	// Message is the error description, empty on success entries.
	Message string

	// Timestamp is the error time in "YYYY-MM-DD HH:MM:SS" form, empty on
	// success entries.
	Timestamp string

	// Status is SUCCESS or Error.
	Status Status
}

// Ledger accumulates entries in recording order. Entries are append-only.
type Ledger struct {
	entries []Entry
	now     func() time.Time
}

// NewLedger creates an empty ledger stamping error entries with wall-clock
// time.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// NewLedgerWithClock creates a ledger with an injected clock, for tests.
func NewLedgerWithClock(now func() time.Time) *Ledger {
	return &Ledger{now: now}
}

// Error appends an error entry for the given identifier (which may be empty
// for run- and sheet-level failures).
func (l *Ledger) Error(id, message string) {
	l.entries = append(l.entries, Entry{
		ID:        id,
		Message:   message,
		Timestamp: l.now().Format(timestampLayout),
		Status:    StatusError,
	})
}

// Success appends a success entry for the given identifier.
func (l *Ledger) Success(id string) {
	l.entries = append(l.entries, Entry{ID: id, Status: StatusSuccess})
}

// Entries returns the recorded entries in chronological order.
func (l *Ledger) Entries() []Entry {
	return l.entries
}

// ErrorCount returns the number of error entries.
func (l *Ledger) ErrorCount() int {
	n := 0
	for _, e := range l.entries {
		if e.Status == StatusError {
			n++
		}
	}
	return n
}

// SuccessCount returns the number of success entries.
func (l *Ledger) SuccessCount() int {
	return len(l.entries) - l.ErrorCount()
}
