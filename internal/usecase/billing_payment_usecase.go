package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/domain/pricing"
	"autoshop_billing/internal/usecase/interfaces"
)

var (
	ErrBillingPaymentNotFound     = errors.New("billing payment not found")
	ErrInvalidPaymentID           = errors.New("invalid payment id")
	ErrInvalidPaymentEstimateID   = errors.New("invalid estimate_id")
	ErrInvalidPaymentPayload      = errors.New("invalid payment payload")
	ErrEstimateNotApproved        = errors.New("estimate not approved")
	ErrEstimateAlreadyPaid        = errors.New("estimate already paid")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayNotSet       = errors.New("payment gateway not configured")
)

// IBillingPaymentUseCase charges the customer for an approved estimate.
//
// The amount always comes from the stored estimate total, never from the
// caller; an estimate waiting for re-approval cannot be paid, and an estimate
// with an approved payment is never charged again.
type IBillingPaymentUseCase interface {
	CreateAndApprove(ctx context.Context, estimateID string, payload json.RawMessage) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BillingPayment, error)
	GetLatestByEstimateID(ctx context.Context, estimateID string) (entities.BillingPayment, error)
}

type BillingPaymentUseCase struct {
	repo         interfaces.IBillingPaymentRepository
	estimateRepo interfaces.IEstimateRepository
	gateway      interfaces.IPaymentGateway
	now          func() time.Time
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(repo interfaces.IBillingPaymentRepository, estimateRepo interfaces.IEstimateRepository, gateway interfaces.IPaymentGateway) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{repo: repo, estimateRepo: estimateRepo, gateway: gateway, now: time.Now}
}

func (u *BillingPaymentUseCase) CreateAndApprove(ctx context.Context, estimateID string, payload json.RawMessage) (entities.BillingPayment, error) {
	estimateID = strings.TrimSpace(estimateID)
	log.Printf("[payment][usecase] create-and-approve start estimate_id=%q payload_len=%d", estimateID, len(payload))
	if estimateID == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentEstimateID
	}
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	var req map[string]any
	if err := json.Unmarshal(payload, &req); err != nil || req == nil {
		log.Printf("[payment][usecase] invalid payload (not a json object) estimate_id=%s", estimateID)
		return entities.BillingPayment{}, ErrInvalidPaymentPayload
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured estimate_id=%s", estimateID)
		return entities.BillingPayment{}, ErrPaymentGatewayNotSet
	}

	est, err := u.estimateRepo.GetByID(ctx, estimateID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading estimate estimate_id=%s err=%v", estimateID, err)
		return entities.BillingPayment{}, err
	}
	if est.ID == "" {
		return entities.BillingPayment{}, ErrEstimateNotFound
	}
	if est.Status != entities.EstimateStatusApproved {
		log.Printf("[payment][usecase] estimate not approved estimate_id=%s status=%s", estimateID, est.Status)
		return entities.BillingPayment{}, ErrEstimateNotApproved
	}

	previous, err := u.repo.ListByEstimateID(ctx, estimateID)
	if err != nil {
		log.Printf("[payment][usecase] failed listing payments estimate_id=%s err=%v", estimateID, err)
		return entities.BillingPayment{}, err
	}
	for _, p := range previous {
		if p.Status == entities.PaymentStatusApproved {
			log.Printf("[payment][usecase] estimate already paid estimate_id=%s payment_id=%s", estimateID, p.ID)
			return entities.BillingPayment{}, ErrEstimateAlreadyPaid
		}
	}

	amount := est.Total.StringFixed(pricing.MoneyPlaces)
	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = estimateID
	}
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Estimate %s (repair order %s)", estimateID, est.RepairOrderID)
	}
	req["transaction_amount"] = est.Total.InexactFloat64()

	body, err := json.Marshal(req)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, body)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed estimate_id=%s err=%v", estimateID, err)
		switch {
		case isGatewayUnauthorized(err):
			return entities.BillingPayment{}, ErrPaymentGatewayUnauthorized
		case isGatewayBadRequest(err):
			return entities.BillingPayment{}, ErrPaymentGatewayBadRequest
		}
		return entities.BillingPayment{}, err
	}
	log.Printf("[payment][usecase] payment gateway success estimate_id=%s provider_payment_id=%s provider_status=%s", estimateID, providerPaymentID, providerStatus)

	var parsed map[string]any
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed estimate_id=%s err=%v", estimateID, err)
	}

	p := entities.BillingPayment{
		ID:                 providerPaymentID,
		EstimateID:         estimateID,
		Amount:             amount,
		Date:               u.now().UTC(),
		Status:             paymentStatus(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed estimate_id=%s payment_id=%s err=%v", estimateID, p.ID, err)
		return entities.BillingPayment{}, err
	}
	log.Printf("[payment][usecase] create-and-approve success estimate_id=%s payment_id=%s status=%s amount=%s", estimateID, created.ID, created.Status, amount)
	return created, nil
}

func (u *BillingPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BillingPayment, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return nil, ErrInvalidPaymentEstimateID
	}
	return u.repo.ListByEstimateID(ctx, estimateID)
}

// GetLatestByEstimateID returns the most recent payment attempt of an estimate.
func (u *BillingPaymentUseCase) GetLatestByEstimateID(ctx context.Context, estimateID string) (entities.BillingPayment, error) {
	payments, err := u.ListByEstimateID(ctx, estimateID)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if len(payments) == 0 {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	return latest, nil
}

func paymentStatus(providerStatus string) entities.PaymentStatus {
	switch strings.ToLower(providerStatus) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	}
	return entities.PaymentStatusPending
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
