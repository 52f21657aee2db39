package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	estimatesRepairOrderIDIndex = "repair_order_id-index"
	repairOrderLockPrefix       = "repair_order#"
)

type lineItemItem struct {
	Kind        string `dynamodbav:"kind"`
	Description string `dynamodbav:"description,omitempty"`
	Quantity    string `dynamodbav:"quantity"`
	UnitPrice   string `dynamodbav:"unit_price"`
	Taxable     bool   `dynamodbav:"taxable"`
}

type jobItem struct {
	ID           string         `dynamodbav:"id"`
	Name         string         `dynamodbav:"name,omitempty"`
	TechnicianID string         `dynamodbav:"technician_id,omitempty"`
	Items        []lineItemItem `dynamodbav:"items"`
}

type estimateItem struct {
	ID            string    `dynamodbav:"id"`
	RepairOrderID string    `dynamodbav:"repair_order_id"`
	CustomerID    string    `dynamodbav:"customer_id"`
	VehicleID     string    `dynamodbav:"vehicle_id,omitempty"`
	Jobs          []jobItem `dynamodbav:"jobs"`

	TaxRate      string `dynamodbav:"tax_rate"`
	CalloutFee   string `dynamodbav:"callout_fee"`
	MileageMiles string `dynamodbav:"mileage_miles"`
	MileageRate  string `dynamodbav:"mileage_rate"`
	MileageTotal string `dynamodbav:"mileage_total"`
	Subtotal     string `dynamodbav:"subtotal"`
	TaxAmount    string `dynamodbav:"tax_amount"`
	Total        string `dynamodbav:"total"`

	Status      string `dynamodbav:"status"`
	Version     int    `dynamodbav:"version"`
	ApprovedAt  string `dynamodbav:"approved_at,omitempty"`
	SignatureID string `dynamodbav:"signature_id,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// repairOrderLockItem reserves a repair order for a single estimate. It has no
// repair_order_id attribute, so it never shows up in the GSI.
type repairOrderLockItem struct {
	ID         string `dynamodbav:"id"`
	EstimateID string `dynamodbav:"estimate_id"`
}

// EstimateDynamoRepository persists Estimate entities in DynamoDB.
//
// Table requirements:
//   - estimates: PK id (string), GSI repair_order_id-index (PK: repair_order_id)
//   - audit events table: PK id (string)
//
// Jobs and their lines are embedded in the estimate item and replaced on every
// write. Audit events are written in the same transaction as the estimate.
type EstimateDynamoRepository struct {
	ddb        DynamoDBAPI
	tableName  string
	auditTable string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb DynamoDBAPI, tableName, auditTable string) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:        ddb,
		tableName:  tableName,
		auditTable: auditTable,
	}
}

// Create stores a new estimate together with a repair order reservation.
// A lost race on either item yields ErrConcurrentModification.
func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate, events []entities.AuditEvent) (entities.Estimate, error) {
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, err
	}
	lock, err := attributevalue.MarshalMap(repairOrderLockItem{
		ID:         repairOrderLockPrefix + e.RepairOrderID,
		EstimateID: e.ID,
	})
	if err != nil {
		return entities.Estimate{}, err
	}

	notExists := aws.String("attribute_not_exists(#id)")
	idName := map[string]string{"#id": "id"}
	writes := []types.TransactWriteItem{
		{Put: &types.Put{TableName: aws.String(r.tableName), Item: av, ConditionExpression: notExists, ExpressionAttributeNames: idName}},
		{Put: &types.Put{TableName: aws.String(r.tableName), Item: lock, ConditionExpression: notExists, ExpressionAttributeNames: idName}},
	}
	auditWrites, err := r.auditPuts(events)
	if err != nil {
		return entities.Estimate{}, err
	}

	if err := r.transact(ctx, append(writes, auditWrites...)); err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

// Save replaces the estimate when its stored updated_at still equals
// prevUpdatedAt, and appends events in the same transaction.
func (r *EstimateDynamoRepository) Save(ctx context.Context, e entities.Estimate, prevUpdatedAt time.Time, events []entities.AuditEvent) (entities.Estimate, error) {
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, err
	}

	writes := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_exists(#id) AND #updated_at = :prev_updated_at"),
			ExpressionAttributeNames: map[string]string{
				"#id":         "id",
				"#updated_at": "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":prev_updated_at": &types.AttributeValueMemberS{Value: formatTime(prevUpdatedAt)},
			},
		},
	}}
	auditWrites, err := r.auditPuts(events)
	if err != nil {
		return entities.Estimate{}, err
	}

	if err := r.transact(ctx, append(writes, auditWrites...)); err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	if it.RepairOrderID == "" {
		// repair order reservation, not an estimate
		return entities.Estimate{}, nil
	}
	return r.decodeEstimate(it)
}

func (r *EstimateDynamoRepository) GetByRepairOrderID(ctx context.Context, repairOrderID string) (entities.Estimate, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(estimatesRepairOrderIDIndex),
		KeyConditionExpression: aws.String("repair_order_id = :roid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":roid": &types.AttributeValueMemberS{Value: repairOrderID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Items) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Estimate{}, err
	}
	return r.decodeEstimate(it)
}

func (r *EstimateDynamoRepository) decodeEstimate(it estimateItem) (entities.Estimate, error) {
	e, err := fromEstimateItem(it)
	if err != nil {
		log.Printf("[estimate][repository] unreadable item estimate_id=%s err=%v", it.ID, err)
		return entities.Estimate{}, err
	}
	return e, nil
}

// auditPuts numbers the events in write order; events of one save share a
// timestamp and the sequence keeps them ordered in the trail.
func (r *EstimateDynamoRepository) auditPuts(events []entities.AuditEvent) ([]types.TransactWriteItem, error) {
	writes := make([]types.TransactWriteItem, 0, len(events))
	for seq, ev := range events {
		av, err := attributevalue.MarshalMap(toAuditEventItem(ev, seq))
		if err != nil {
			return nil, err
		}
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName:                aws.String(r.auditTable),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			},
		})
	}
	return writes, nil
}

func (r *EstimateDynamoRepository) transact(ctx context.Context, writes []types.TransactWriteItem) error {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		err = mapTransactionError(err)
		log.Printf("[estimate][repository] transaction failed items=%d err=%v", len(writes), err)
		return err
	}
	return nil
}

func toEstimateItem(e entities.Estimate) estimateItem {
	jobs := make([]jobItem, 0, len(e.Jobs))
	for _, j := range e.Jobs {
		items := make([]lineItemItem, 0, len(j.Items))
		for _, li := range j.Items {
			items = append(items, lineItemItem{
				Kind:        string(li.Kind),
				Description: li.Description,
				Quantity:    formatDecimal(li.Quantity),
				UnitPrice:   formatDecimal(li.UnitPrice),
				Taxable:     li.Taxable,
			})
		}
		jobs = append(jobs, jobItem{
			ID:           j.ID,
			Name:         j.Name,
			TechnicianID: j.TechnicianID,
			Items:        items,
		})
	}

	var approvedAt string
	if e.ApprovedAt != nil {
		approvedAt = formatTime(*e.ApprovedAt)
	}

	return estimateItem{
		ID:            e.ID,
		RepairOrderID: e.RepairOrderID,
		CustomerID:    e.CustomerID,
		VehicleID:     e.VehicleID,
		Jobs:          jobs,
		TaxRate:       formatDecimal(e.TaxRate),
		CalloutFee:    formatDecimal(e.CalloutFee),
		MileageMiles:  formatDecimal(e.MileageMiles),
		MileageRate:   formatDecimal(e.MileageRate),
		MileageTotal:  formatDecimal(e.MileageTotal),
		Subtotal:      formatDecimal(e.Subtotal),
		TaxAmount:     formatDecimal(e.TaxAmount),
		Total:         formatDecimal(e.Total),
		Status:        string(e.Status),
		Version:       e.Version,
		ApprovedAt:    approvedAt,
		SignatureID:   e.SignatureID,
		CreatedAt:     formatTime(e.CreatedAt),
		UpdatedAt:     formatTime(e.UpdatedAt),
	}
}

func fromEstimateItem(it estimateItem) (entities.Estimate, error) {
	rd := itemReader{table: "estimate", id: it.ID}

	jobs := make([]entities.Job, 0, len(it.Jobs))
	for j, job := range it.Jobs {
		items := make([]entities.LineItem, 0, len(job.Items))
		for i, li := range job.Items {
			field := fmt.Sprintf("jobs[%d].items[%d]", j, i)
			items = append(items, entities.LineItem{
				Kind:        entities.LineItemKind(li.Kind),
				Description: li.Description,
				Quantity:    rd.decimalAttr(field+".quantity", li.Quantity),
				UnitPrice:   rd.decimalAttr(field+".unit_price", li.UnitPrice),
				Taxable:     li.Taxable,
			})
		}
		jobs = append(jobs, entities.Job{
			ID:           job.ID,
			Name:         job.Name,
			TechnicianID: job.TechnicianID,
			Items:        items,
		})
	}

	var approvedAt *time.Time
	if it.ApprovedAt != "" {
		t := rd.timeAttr("approved_at", it.ApprovedAt)
		approvedAt = &t
	}

	e := entities.Estimate{
		ID:            it.ID,
		RepairOrderID: it.RepairOrderID,
		CustomerID:    it.CustomerID,
		VehicleID:     it.VehicleID,
		Jobs:          jobs,
		TaxRate:       rd.decimalAttr("tax_rate", it.TaxRate),
		CalloutFee:    rd.decimalAttr("callout_fee", it.CalloutFee),
		MileageMiles:  rd.decimalAttr("mileage_miles", it.MileageMiles),
		MileageRate:   rd.decimalAttr("mileage_rate", it.MileageRate),
		MileageTotal:  rd.decimalAttr("mileage_total", it.MileageTotal),
		Subtotal:      rd.decimalAttr("subtotal", it.Subtotal),
		TaxAmount:     rd.decimalAttr("tax_amount", it.TaxAmount),
		Total:         rd.decimalAttr("total", it.Total),
		Status:        entities.EstimateStatus(it.Status),
		Version:       it.Version,
		ApprovedAt:    approvedAt,
		SignatureID:   it.SignatureID,
		CreatedAt:     rd.timeAttr("created_at", it.CreatedAt),
		UpdatedAt:     rd.timeAttr("updated_at", it.UpdatedAt),
	}
	if rd.err != nil {
		return entities.Estimate{}, rd.err
	}
	return e, nil
}
