package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLineItemKind(t *testing.T) {
	for _, in := range []string{"labor", " Part ", "FEE", "discount", "mileage", "callout"} {
		if _, err := ParseLineItemKind(in); err != nil {
			t.Fatalf("expected %q to parse, got %v", in, err)
		}
	}

	_, err := ParseLineItemKind("tyres")
	if !errors.Is(err, ErrInvalidLineItemKind) {
		t.Fatalf("expected ErrInvalidLineItemKind, got %v", err)
	}
	_, err = ParseLineItemKind("")
	if !errors.Is(err, ErrInvalidLineItemKind) {
		t.Fatalf("expected ErrInvalidLineItemKind for empty kind, got %v", err)
	}
}

func TestLineItem_LineTotal(t *testing.T) {
	labor := LineItem{Kind: LineItemKindLabor, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)}
	if got := labor.LineTotal(); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected 100, got %s", got)
	}

	discount := LineItem{Kind: LineItemKindDiscount, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)}
	if got := discount.LineTotal(); !got.Equal(decimal.NewFromInt(-10)) {
		t.Fatalf("expected -10, got %s", got)
	}

	fractional := LineItem{Kind: LineItemKindPart, Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.RequireFromString("3.333")}
	if got := fractional.LineTotal(); !got.Equal(decimal.RequireFromString("4.9995")) {
		t.Fatalf("expected unrounded 4.9995, got %s", got)
	}
}

func TestEstimate_LineItemsAndClearApproval(t *testing.T) {
	e := Estimate{
		Jobs: []Job{
			{Name: "Brakes", Items: []LineItem{{Kind: LineItemKindLabor}, {Kind: LineItemKindPart}}},
			{Name: "Oil", Items: []LineItem{{Kind: LineItemKindFee}}},
		},
		SignatureID: "sig-1",
	}
	items := e.LineItems()
	if len(items) != 3 || items[2].Kind != LineItemKindFee {
		t.Fatalf("unexpected flattened items: %+v", items)
	}

	e.ClearApproval()
	if e.ApprovedAt != nil || e.SignatureID != "" {
		t.Fatalf("expected approval metadata cleared: %+v", e)
	}
	if !EstimateStatusNeedsReapproval.Valid() || EstimateStatus("paid").Valid() {
		t.Fatalf("unexpected status validity")
	}
}
