package toll

import (
	"errors"
	"testing"
)

func TestParseTransactionEntry(t *testing.T) {
	tx, err := ParseTransaction("ENTRY,ABC123,3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tx.Kind != KindEntry || tx.Plate != "ABC123" || tx.Point != 3 {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestParseTransactionTypeIsCaseInsensitive(t *testing.T) {
	for _, raw := range []string{"exit,ABC123,10", "Exit,ABC123,10", "EXIT,ABC123,10"} {
		tx, err := ParseTransaction(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if tx.Kind != KindExit {
			t.Fatalf("parse %q: unexpected kind %q", raw, tx.Kind)
		}
	}
}

func TestParseTransactionFieldCount(t *testing.T) {
	for _, raw := range []string{"ENTRY,ABC123", "ENTRY", "", "ENTRY,ABC123,3,extra"} {
		if _, err := ParseTransaction(raw); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("parse %q: expected invalid format, got %v", raw, err)
		}
	}
}

func TestParseTransactionBadTollPoint(t *testing.T) {
	if _, err := ParseTransaction("ENTRY,ABC123,notanumber"); !errors.Is(err, ErrInvalidTollPoint) {
		t.Fatalf("expected invalid toll point, got %v", err)
	}
}

func TestParseTransactionUnknownType(t *testing.T) {
	if _, err := ParseTransaction("HONK,ABC123,3"); !errors.Is(err, ErrUnknownTransactionType) {
		t.Fatalf("expected unknown transaction type, got %v", err)
	}
}

func TestParseTransactionNegativePointAllowed(t *testing.T) {
	// Toll point parse only requires a base-10 integer; range policy lives
	// with the caller.
	tx, err := ParseTransaction("ENTRY,ABC123,-4")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tx.Point != -4 {
		t.Fatalf("unexpected point: %d", tx.Point)
	}
}

func TestFormatFee(t *testing.T) {
	if got := FormatFee(7.0); got != "7.0" {
		t.Fatalf("unexpected fee format: %q", got)
	}
	if got := FormatFee(0); got != "0.0" {
		t.Fatalf("unexpected fee format: %q", got)
	}
}
