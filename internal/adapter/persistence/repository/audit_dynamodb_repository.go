package repository

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const auditEntityIDIndex = "entity_id-index"

type auditEventItem struct {
	ID        string         `dynamodbav:"id"`
	Entity    string         `dynamodbav:"entity"`
	EntityID  string         `dynamodbav:"entity_id"`
	Action    string         `dynamodbav:"action"`
	Actor     string         `dynamodbav:"actor"`
	Meta      map[string]any `dynamodbav:"meta,omitempty"`
	CreatedAt string         `dynamodbav:"created_at"`
	Seq       int            `dynamodbav:"seq"`
	SortKey   string         `dynamodbav:"created_seq"`
}

// auditSortKeyLayout is fixed width so that keys compare as strings.
const auditSortKeyLayout = "2006-01-02T15:04:05.000000000Z"

func auditSortKey(at time.Time, seq int) string {
	return fmt.Sprintf("%s#%04d", at.UTC().Format(auditSortKeyLayout), seq)
}

// AuditDynamoRepository reads the audit trail.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: entity_id-index (PK: entity_id, SK: created_seq)
//
// created_seq is the event time followed by its position in the save that
// wrote it, so events sharing a timestamp keep their write order.
type AuditDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IAuditRepository = (*AuditDynamoRepository)(nil)

func NewAuditDynamoRepository(ddb DynamoDBAPI, tableName string) *AuditDynamoRepository {
	return &AuditDynamoRepository{ddb: ddb, tableName: tableName}
}

// ListByEntityID returns every event of an entity, oldest first.
func (r *AuditDynamoRepository) ListByEntityID(ctx context.Context, entityID string) ([]entities.AuditEvent, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(auditEntityIDIndex),
		KeyConditionExpression: aws.String("entity_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: entityID},
		},
		ScanIndexForward: aws.Bool(true),
	})

	var items []auditEventItem
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it auditEventItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, it)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortKey < items[j].SortKey
	})

	events := make([]entities.AuditEvent, 0, len(items))
	for _, it := range items {
		ev, err := fromAuditEventItem(it)
		if err != nil {
			log.Printf("[audit][repository] unreadable item event_id=%s err=%v", it.ID, err)
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func toAuditEventItem(e entities.AuditEvent, seq int) auditEventItem {
	return auditEventItem{
		ID:        e.ID,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Action:    e.Action,
		Actor:     e.Actor,
		Meta:      e.Meta,
		CreatedAt: formatTime(e.CreatedAt),
		Seq:       seq,
		SortKey:   auditSortKey(e.CreatedAt, seq),
	}
}

func fromAuditEventItem(it auditEventItem) (entities.AuditEvent, error) {
	rd := itemReader{table: "audit_event", id: it.ID}
	ev := entities.AuditEvent{
		ID:        it.ID,
		Entity:    it.Entity,
		EntityID:  it.EntityID,
		Action:    it.Action,
		Actor:     it.Actor,
		Meta:      it.Meta,
		CreatedAt: rd.timeAttr("created_at", it.CreatedAt),
	}
	if rd.err != nil {
		return entities.AuditEvent{}, rd.err
	}
	return ev, nil
}
