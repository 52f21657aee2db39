package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/domain/pricing"
	"autoshop_billing/internal/infrastructure/metrics"
	"autoshop_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEstimateNotFound            = errors.New("estimate not found")
	ErrEstimateAlreadyExists       = errors.New("estimate already exists")
	ErrEstimateConflict            = errors.New("estimate was changed by another request")
	ErrInvalidRepairOrderID        = errors.New("invalid repair_order_id")
	ErrInvalidEstimateID           = errors.New("invalid estimate id")
	ErrMissingCustomer             = errors.New("missing customer")
	ErrInvalidMonetaryValue        = errors.New("invalid monetary value")
	ErrInvalidTechnicianAssignment = errors.New("invalid technician assignment")

	ErrInvalidLineItemKind     = entities.ErrInvalidLineItemKind
	ErrInvalidStatusTransition = pricing.ErrInvalidStatusTransition
)

// JobInput is one job of an estimate save request. Items are already typed;
// kinds are still checked because callers may build them by hand.
type JobInput struct {
	ID           string
	Name         string
	TechnicianID string
	Items        []entities.LineItem
}

// EstimateInput is the full content of an estimate save. Every save replaces
// the jobs and lines wholesale.
type EstimateInput struct {
	RepairOrderID string
	CustomerID    string
	VehicleID     string
	TaxRate       decimal.Decimal
	CalloutFee    decimal.Decimal
	MileageMiles  decimal.Decimal
	MileageRate   decimal.Decimal
	Jobs          []JobInput
}

func (in EstimateInput) lineItems() []entities.LineItem {
	var items []entities.LineItem
	for _, j := range in.Jobs {
		items = append(items, j.Items...)
	}
	return items
}

// IEstimateUseCase exposes estimate operations for the admin screens:
//   - Preview / CreateEstimate / UpdateEstimate recompute totals on every call
//   - UpdateEstimate demotes approved estimates whose totals changed
//   - Send / Approve / Decline / Expire are the explicit status actions
type IEstimateUseCase interface {
	Preview(ctx context.Context, in EstimateInput) (pricing.Totals, error)
	CreateEstimate(ctx context.Context, in EstimateInput) (entities.Estimate, error)
	UpdateEstimate(ctx context.Context, id string, in EstimateInput) (entities.Estimate, error)
	Send(ctx context.Context, id string) (entities.Estimate, error)
	Approve(ctx context.Context, id string, signatureID string) (entities.Estimate, error)
	Decline(ctx context.Context, id string) (entities.Estimate, error)
	Expire(ctx context.Context, id string) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	GetByRepairOrderID(ctx context.Context, repairOrderID string) (entities.Estimate, error)
	ListAuditEvents(ctx context.Context, id string) ([]entities.AuditEvent, error)
}

type EstimateUseCase struct {
	repo        interfaces.IEstimateRepository
	audit       interfaces.IAuditRepository
	taxPolicies interfaces.ITaxPolicyProvider
	technicians interfaces.ITechnicianDirectory
	publisher   interfaces.IEventPublisher

	now   func() time.Time
	newID func() string
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(
	repo interfaces.IEstimateRepository,
	audit interfaces.IAuditRepository,
	taxPolicies interfaces.ITaxPolicyProvider,
	technicians interfaces.ITechnicianDirectory,
	publisher interfaces.IEventPublisher,
) *EstimateUseCase {
	return &EstimateUseCase{
		repo:        repo,
		audit:       audit,
		taxPolicies: taxPolicies,
		technicians: technicians,
		publisher:   publisher,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (u *EstimateUseCase) Preview(ctx context.Context, in EstimateInput) (pricing.Totals, error) {
	if err := u.validate(ctx, in, false); err != nil {
		return pricing.Totals{}, err
	}
	return u.computeTotals(ctx, in)
}

func (u *EstimateUseCase) CreateEstimate(ctx context.Context, in EstimateInput) (entities.Estimate, error) {
	if err := u.validate(ctx, in, true); err != nil {
		return entities.Estimate{}, err
	}
	repairOrderID := strings.TrimSpace(in.RepairOrderID)

	// Enforce: 1 estimate per repair order.
	if existing, err := u.repo.GetByRepairOrderID(ctx, repairOrderID); err != nil {
		return entities.Estimate{}, err
	} else if existing.ID != "" {
		return entities.Estimate{}, ErrEstimateAlreadyExists
	}

	totals, err := u.computeTotals(ctx, in)
	if err != nil {
		return entities.Estimate{}, err
	}

	now := u.now().UTC()
	e := entities.Estimate{
		ID:            u.newID(),
		RepairOrderID: repairOrderID,
		Status:        entities.EstimateStatusDraft,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	u.applyInput(&e, in, totals)

	events := []entities.AuditEvent{
		u.newEvent(e.ID, entities.AuditActionCreated, map[string]any{"total": e.Total.StringFixed(pricing.MoneyPlaces)}, now),
	}
	created, err := u.repo.Create(ctx, e, events)
	if err != nil {
		if errors.Is(err, interfaces.ErrConcurrentModification) {
			return entities.Estimate{}, ErrEstimateAlreadyExists
		}
		log.Printf("[estimate][usecase] create failed repair_order_id=%s err=%v", repairOrderID, err)
		return entities.Estimate{}, err
	}
	log.Printf("[estimate][usecase] created estimate_id=%s repair_order_id=%s total=%s", created.ID, repairOrderID, created.Total.StringFixed(2))

	metrics.EstimateSaves.WithLabelValues("create").Inc()
	metrics.EstimateTotalAmount.Observe(created.Total.InexactFloat64())
	u.publish(ctx, events)
	return created, nil
}

// UpdateEstimate recomputes an estimate from scratch. If the estimate was
// approved and any of subtotal, tax or total moved, it is demoted to
// needs_reapproval and an approval_revoked event is stored with the change.
func (u *EstimateUseCase) UpdateEstimate(ctx context.Context, id string, in EstimateInput) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	if err := u.validate(ctx, in, false); err != nil {
		return entities.Estimate{}, err
	}

	prev, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if prev.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}

	totals, err := u.computeTotals(ctx, in)
	if err != nil {
		return entities.Estimate{}, err
	}
	decision := pricing.EvaluateApproval(pricing.SnapshotOf(prev), totals)

	now := u.now().UTC()
	next := prev
	u.applyInput(&next, in, totals)
	decision.Apply(&next)
	next.UpdatedAt = now

	events := []entities.AuditEvent{
		u.newEvent(id, entities.AuditActionUpdated, map[string]any{
			"prevTotal": prev.Total.StringFixed(pricing.MoneyPlaces),
			"total":     next.Total.StringFixed(pricing.MoneyPlaces),
		}, now),
	}
	if decision.Kind == pricing.DecisionDemote {
		revoked := *decision.Event
		revoked.ID = u.newID()
		revoked.EntityID = id
		revoked.CreatedAt = now
		events = append(events, revoked)
	}

	saved, err := u.repo.Save(ctx, next, prev.UpdatedAt, events)
	if err != nil {
		if errors.Is(err, interfaces.ErrConcurrentModification) {
			log.Printf("[estimate][usecase] update lost race estimate_id=%s", id)
			return entities.Estimate{}, ErrEstimateConflict
		}
		log.Printf("[estimate][usecase] update failed estimate_id=%s err=%v", id, err)
		return entities.Estimate{}, err
	}
	if saved.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}

	metrics.EstimateSaves.WithLabelValues("update").Inc()
	metrics.EstimateTotalAmount.Observe(saved.Total.InexactFloat64())
	if decision.Kind == pricing.DecisionDemote {
		metrics.EstimateApprovalsRevoked.Inc()
		log.Printf("[estimate][usecase] approval revoked estimate_id=%s version=%d total=%s prev_total=%s",
			id, saved.Version, saved.Total.StringFixed(2), prev.Total.StringFixed(2))
	}
	log.Printf("[estimate][usecase] updated estimate_id=%s status=%s decision=%s", id, saved.Status, decision.Kind)

	u.publish(ctx, events)
	return saved, nil
}

func (u *EstimateUseCase) Send(ctx context.Context, id string) (entities.Estimate, error) {
	return u.transition(ctx, id, entities.EstimateStatusSent, nil)
}

func (u *EstimateUseCase) Approve(ctx context.Context, id string, signatureID string) (entities.Estimate, error) {
	return u.transition(ctx, id, entities.EstimateStatusApproved, func(e *entities.Estimate, now time.Time) {
		e.ApprovedAt = &now
		e.SignatureID = strings.TrimSpace(signatureID)
	})
}

func (u *EstimateUseCase) Decline(ctx context.Context, id string) (entities.Estimate, error) {
	return u.transition(ctx, id, entities.EstimateStatusDeclined, nil)
}

func (u *EstimateUseCase) Expire(ctx context.Context, id string) (entities.Estimate, error) {
	return u.transition(ctx, id, entities.EstimateStatusExpired, nil)
}

func (u *EstimateUseCase) transition(
	ctx context.Context,
	id string,
	to entities.EstimateStatus,
	mutate func(e *entities.Estimate, now time.Time),
) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	prev, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if prev.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	if err := pricing.ValidateTransition(prev.Status, to); err != nil {
		return entities.Estimate{}, err
	}

	now := u.now().UTC()
	next := prev
	next.Status = to
	if to != entities.EstimateStatusApproved {
		next.ClearApproval()
	}
	if mutate != nil {
		mutate(&next, now)
	}
	next.UpdatedAt = now

	events := []entities.AuditEvent{
		u.newEvent(id, entities.AuditActionStatusChanged, map[string]any{
			"from": string(prev.Status),
			"to":   string(to),
		}, now),
	}
	saved, err := u.repo.Save(ctx, next, prev.UpdatedAt, events)
	if err != nil {
		if errors.Is(err, interfaces.ErrConcurrentModification) {
			return entities.Estimate{}, ErrEstimateConflict
		}
		return entities.Estimate{}, err
	}
	if saved.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	log.Printf("[estimate][usecase] status changed estimate_id=%s from=%s to=%s", id, prev.Status, to)

	metrics.EstimateSaves.WithLabelValues("status").Inc()
	metrics.EstimateStatusTransitions.WithLabelValues(string(prev.Status), string(to)).Inc()
	u.publish(ctx, events)
	return saved, nil
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateUseCase) GetByRepairOrderID(ctx context.Context, repairOrderID string) (entities.Estimate, error) {
	repairOrderID = strings.TrimSpace(repairOrderID)
	if repairOrderID == "" {
		return entities.Estimate{}, ErrInvalidRepairOrderID
	}

	e, err := u.repo.GetByRepairOrderID(ctx, repairOrderID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateUseCase) ListAuditEvents(ctx context.Context, id string) ([]entities.AuditEvent, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.audit.ListByEntityID(ctx, e.ID)
}

// validate rejects input the calculator must never see. Pure checks run
// before any technician lookup.
func (u *EstimateUseCase) validate(ctx context.Context, in EstimateInput, requireRepairOrder bool) error {
	if requireRepairOrder && strings.TrimSpace(in.RepairOrderID) == "" {
		return ErrInvalidRepairOrderID
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		return ErrMissingCustomer
	}

	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"tax_rate", in.TaxRate},
		{"callout_fee", in.CalloutFee},
		{"mileage_miles", in.MileageMiles},
		{"mileage_rate", in.MileageRate},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidMonetaryValue, f.name)
		}
	}

	for j, job := range in.Jobs {
		for i, item := range job.Items {
			if !item.Kind.Valid() {
				return fmt.Errorf("%w: job %d item %d: %q", ErrInvalidLineItemKind, j, i, item.Kind)
			}
			if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
				return fmt.Errorf("%w: job %d item %d: quantity and unit price must not be negative", ErrInvalidMonetaryValue, j, i)
			}
		}
	}

	for j, job := range in.Jobs {
		technicianID := strings.TrimSpace(job.TechnicianID)
		if technicianID == "" {
			continue
		}
		if u.technicians == nil {
			return fmt.Errorf("%w: job %d: no technician directory configured", ErrInvalidTechnicianAssignment, j)
		}
		ok, err := u.technicians.Exists(ctx, technicianID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: job %d: unknown technician %q", ErrInvalidTechnicianAssignment, j, technicianID)
		}
	}
	return nil
}

func (u *EstimateUseCase) computeTotals(ctx context.Context, in EstimateInput) (pricing.Totals, error) {
	policy, err := u.taxPolicies.TaxPolicy(ctx)
	if err != nil {
		log.Printf("[estimate][usecase] tax policy lookup failed err=%v", err)
		return pricing.Totals{}, err
	}

	return pricing.Compute(pricing.TotalsInput{
		Items:          in.lineItems(),
		Policy:         policy,
		TaxRatePercent: in.TaxRate,
		CalloutFee:     in.CalloutFee,
		MileageMiles:   in.MileageMiles,
		MileageRate:    in.MileageRate,
	}), nil
}

func (u *EstimateUseCase) applyInput(e *entities.Estimate, in EstimateInput, totals pricing.Totals) {
	e.CustomerID = strings.TrimSpace(in.CustomerID)
	e.VehicleID = strings.TrimSpace(in.VehicleID)

	jobs := make([]entities.Job, 0, len(in.Jobs))
	for _, j := range in.Jobs {
		jobID := strings.TrimSpace(j.ID)
		if jobID == "" {
			jobID = u.newID()
		}
		jobs = append(jobs, entities.Job{
			ID:           jobID,
			Name:         strings.TrimSpace(j.Name),
			TechnicianID: strings.TrimSpace(j.TechnicianID),
			Items:        append([]entities.LineItem(nil), j.Items...),
		})
	}
	e.Jobs = jobs

	e.TaxRate = in.TaxRate
	e.CalloutFee = in.CalloutFee
	e.MileageMiles = in.MileageMiles
	e.MileageRate = in.MileageRate
	e.MileageTotal = totals.MileageTotal
	e.Subtotal = totals.Subtotal
	e.TaxAmount = totals.TaxAmount
	e.Total = totals.Total
}

func (u *EstimateUseCase) newEvent(estimateID, action string, meta map[string]any, at time.Time) entities.AuditEvent {
	return entities.AuditEvent{
		ID:        u.newID(),
		Entity:    entities.AuditEntityEstimate,
		EntityID:  estimateID,
		Action:    action,
		Actor:     entities.AuditActorAdmin,
		Meta:      meta,
		CreatedAt: at,
	}
}

// publish is best effort: the change is already committed.
func (u *EstimateUseCase) publish(ctx context.Context, events []entities.AuditEvent) {
	if u.publisher == nil || len(events) == 0 {
		return
	}
	if err := u.publisher.Publish(ctx, events...); err != nil {
		metrics.EventPublishFailures.Inc()
		log.Printf("[estimate][usecase] event publish failed estimate_id=%s count=%d err=%v", events[0].EntityID, len(events), err)
	}
}
