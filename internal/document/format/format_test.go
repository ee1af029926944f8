package format

import (
	"testing"
	"time"

	"github.com/quickbill/quickbill/internal/document/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_USD(t *testing.T) {
	assert.Equal(t, "$1,234.50", Money(1234.5, "USD"))
}

func TestMoney_JPYHasNoDecimals(t *testing.T) {
	assert.Equal(t, "¥1,234", Money(1234, "JPY"))
}

func TestMoney_Symbols(t *testing.T) {
	assert.Equal(t, "€99.00", Money(99, "EUR"))
	assert.Equal(t, "£0.50", Money(0.5, "GBP"))
	assert.Equal(t, "C$10.00", Money(10, "CAD"))
	// US grouping applies regardless of currency.
	assert.Equal(t, "₹100,000.00", Money(100000, "INR"))
}

func TestMoney_UnknownCodeFallsBackToDollar(t *testing.T) {
	assert.Equal(t, "$42.00", Money(42, "XYZ"))
	assert.Equal(t, "$42.00", Money(42, ""))
}

func TestMoney_LargeAmountsGrouped(t *testing.T) {
	assert.Equal(t, "$1,234,567.89", Money(1234567.89, "USD"))
	assert.Equal(t, "$123.00", Money(123, "USD"))
	assert.Equal(t, "$1,000.00", Money(1000, "USD"))
}

func TestMoney_Negative(t *testing.T) {
	assert.Equal(t, "$-1,234.50", Money(-1234.5, "USD"))
}

func TestDate_LongForm(t *testing.T) {
	assert.Equal(t, "February 7, 2026", Date("2026-02-07"))
	assert.Equal(t, "January 1, 2025", Date("2025-01-01T00:00:00Z"))
}

func TestDate_UnparseableRendersDash(t *testing.T) {
	assert.Equal(t, "-", Date("not-a-date"))
	assert.Equal(t, "-", Date(""))
}

func TestDocumentNumber_PrefixPerType(t *testing.T) {
	at := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	cases := map[domain.DocumentType]string{
		domain.TypeInvoice:       "INV-2026-001",
		domain.TypeQuote:         "QUO-2026-001",
		domain.TypeEstimate:      "EST-2026-001",
		domain.TypeReceipt:       "REC-2026-001",
		domain.TypeProforma:      "PRO-2026-001",
		domain.TypePurchaseOrder: "PO-2026-001",
		domain.TypeCreditNote:    "CN-2026-001",
		domain.TypeTimesheet:     "TS-2026-001",
	}
	for docType, want := range cases {
		assert.Equal(t, want, DocumentNumber(docType, at, 1))
	}
}

func TestDocumentNumber_UnknownTypeAndDefaultSequence(t *testing.T) {
	at := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "DOC-2026-001", DocumentNumber("postcard", at, 0))
	assert.Equal(t, "INV-2026-042", DocumentNumber(domain.TypeInvoice, at, 42))
	assert.Equal(t, "INV-2026-1042", DocumentNumber(domain.TypeInvoice, at, 1042))
}

func TestFormatNumber_Tokens(t *testing.T) {
	at := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)

	out, err := FormatNumber("INV-{YY}{MM}{DD}-{SEQ6}", at, 12)
	require.NoError(t, err)
	assert.Equal(t, "INV-260207-000012", out)

	out, err = FormatNumber("{SEQ}", at, 7)
	require.NoError(t, err)
	assert.Equal(t, "7", out)
}

func TestFormatNumber_Rejections(t *testing.T) {
	at := time.Now()

	_, err := FormatNumber("", at, 1)
	assert.Error(t, err)

	_, err = FormatNumber("INV-{SEQ}", at, 0)
	assert.Error(t, err)

	_, err = FormatNumber("INV-{NOPE}", at, 1)
	assert.Error(t, err)
}

func TestDueDatePresets(t *testing.T) {
	days, ok := DueDaysFor("due-on-receipt")
	require.True(t, ok)
	assert.Equal(t, 0, days)

	days, ok = DueDaysFor("net-30")
	require.True(t, ok)
	assert.Equal(t, 30, days)

	// Custom has no fixed offset; the client supplies a date.
	_, ok = DueDaysFor("custom")
	assert.False(t, ok)

	_, ok = DueDaysFor("net-90")
	assert.False(t, ok)

	assert.Len(t, DueDatePresets, 6)
}

func TestSequenceFromNumber(t *testing.T) {
	seq, ok := SequenceFromNumber("INV-2026-012")
	require.True(t, ok)
	assert.Equal(t, int64(12), seq)

	seq, ok = SequenceFromNumber("QUO-2026-001")
	require.True(t, ok)
	assert.Equal(t, int64(1), seq)

	for _, bad := range []string{"", "INV", "INV-", "INV-2026-abc", "INV-2026-0"} {
		_, ok := SequenceFromNumber(bad)
		assert.False(t, ok, "expected no sequence in %q", bad)
	}
}

func TestNewItemID_UniqueAndOpaque(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewItemID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
