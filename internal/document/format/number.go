package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/quickbill/quickbill/internal/document/domain"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// prefixes maps each document type to its human-readable number prefix.
var prefixes = map[domain.DocumentType]string{
	domain.TypeInvoice:       "INV",
	domain.TypeQuote:         "QUO",
	domain.TypeEstimate:      "EST",
	domain.TypeReceipt:       "REC",
	domain.TypeProforma:      "PRO",
	domain.TypePurchaseOrder: "PO",
	domain.TypeCreditNote:    "CN",
	domain.TypeTimesheet:     "TS",
}

// NumberTemplate returns the number template for a document type, e.g.
// "INV-{YYYY}-{SEQ3}". Unknown types get the generic "DOC" prefix.
func NumberTemplate(docType domain.DocumentType) string {
	prefix, ok := prefixes[docType]
	if !ok {
		prefix = "DOC"
	}
	return prefix + "-{YYYY}-{SEQ3}"
}

// FormatNumber expands a number template against an issue time and a
// monotonic sequence. Supported tokens: {YYYY} {YY} {MM} {DD} {SEQ} {SEQn}.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic
func FormatNumber(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("document number template is empty")
	}

	if seq <= 0 {
		return "", fmt.Errorf("invalid document sequence: %d", seq)
	}

	out := template

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	// Simple sequence
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	// Padded sequence
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m // should never happen
		}

		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}

		return fmt.Sprintf("%0*d", width, seq)
	})

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in number format: %s", out)
	}

	return out, nil
}

// DocumentNumber builds the default number for a document type, e.g.
// "INV-2026-001". A non-positive sequence defaults to 1.
func DocumentNumber(docType domain.DocumentType, issuedAt time.Time, seq int64) string {
	if seq <= 0 {
		seq = 1
	}
	out, _ := FormatNumber(NumberTemplate(docType), issuedAt, seq)
	return out
}

// SequenceFromNumber extracts the trailing sequence from a generated document
// number ("INV-2026-012" yields 12). Numbers without a positive numeric tail
// report false; deleted rows leave gaps, so allocation must look at the
// largest surviving sequence rather than the row count.
func SequenceFromNumber(number string) (int64, bool) {
	i := strings.LastIndexByte(number, '-')
	if i < 0 || i == len(number)-1 {
		return 0, false
	}

	seq, err := strconv.ParseInt(number[i+1:], 10, 64)
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}
