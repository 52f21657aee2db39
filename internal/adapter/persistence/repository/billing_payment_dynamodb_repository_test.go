package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"autoshop_billing/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestBillingPaymentDynamoRepository(t *testing.T) {
	p := entities.BillingPayment{
		ID:                 "pay-1",
		EstimateID:         "est-1",
		Amount:             "155.40",
		Date:               time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: json.RawMessage(`{"id":"pay-1"}`),
		ProviderPayload:    map[string]any{"id": "pay-1"},
	}

	fake := &fakeDynamoDB{}
	repo := NewBillingPaymentDynamoRepository(fake, "payments")
	if _, err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.puts) != 1 {
		t.Fatalf("expected one put, got %d", len(fake.puts))
	}

	stored := fake.puts[0].Item
	fake.queryOut = []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{stored}}}
	list, err := repo.ListByEstimateID(context.Background(), "est-1")
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list: %+v %v", list, err)
	}
	got := list[0]
	if got.Amount != "155.40" || got.Status != entities.PaymentStatusApproved || !got.Date.Equal(p.Date) {
		t.Fatalf("unexpected payment: %+v", got)
	}
	if string(got.ProviderPayloadRaw) != `{"id":"pay-1"}` || got.ProviderPayload["id"] != "pay-1" {
		t.Fatalf("unexpected payload: %+v", got)
	}

	var it billingPaymentItem
	if err := attributevalue.UnmarshalMap(stored, &it); err != nil || it.MPPayloadRaw == "" {
		t.Fatalf("expected raw payload stored, got %+v %v", it, err)
	}
}

func TestFromBillingPaymentItem_Corrupt(t *testing.T) {
	for name, it := range map[string]billingPaymentItem{
		"date":   {ID: "pay-1", Amount: "155.40", Date: "05/01/2026"},
		"amount": {ID: "pay-1", Amount: "R$155", Date: "2026-05-01T10:00:00Z"},
	} {
		if _, err := fromBillingPaymentItem(it); !errors.Is(err, ErrCorruptItem) {
			t.Fatalf("%s: expected ErrCorruptItem, got %v", name, err)
		}
	}
}
