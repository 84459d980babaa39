package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_RecordingOrder(t *testing.T) {
	clock := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)
	ledger := NewLedgerWithClock(func() time.Time { return clock })

	ledger.Error("", "la hoja 'Detalles' está vacía")
	ledger.Success("100")
	ledger.Error("200", "error en la hoja 'Receptor'")

	entries := ledger.Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{
		ID:        "",
		Message:   "la hoja 'Detalles' está vacía",
		Timestamp: "2024-01-15 14:30:22",
		Status:    StatusError,
	}, entries[0])

	assert.Equal(t, Entry{ID: "100", Status: StatusSuccess}, entries[1])
	assert.Empty(t, entries[1].Timestamp, "success entries carry no timestamp")

	assert.Equal(t, "200", entries[2].ID)
	assert.Equal(t, StatusError, entries[2].Status)

	assert.Equal(t, 2, ledger.ErrorCount())
	assert.Equal(t, 1, ledger.SuccessCount())
}

func TestLedger_Empty(t *testing.T) {
	ledger := NewLedger()
	assert.Empty(t, ledger.Entries())
	assert.Equal(t, 0, ledger.ErrorCount())
	assert.Equal(t, 0, ledger.SuccessCount())
}
