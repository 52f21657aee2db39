package repository

import (
	"context"

	"autoshop_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type technicianItem struct {
	ID     string `dynamodbav:"id"`
	Active *bool  `dynamodbav:"active,omitempty"`
}

// TechnicianDynamoDirectory checks job assignments against the technicians
// table (PK: id). A technician with active=false cannot take new jobs.
type TechnicianDynamoDirectory struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.ITechnicianDirectory = (*TechnicianDynamoDirectory)(nil)

func NewTechnicianDynamoDirectory(ddb DynamoDBAPI, tableName string) *TechnicianDynamoDirectory {
	return &TechnicianDynamoDirectory{ddb: ddb, tableName: tableName}
}

func (d *TechnicianDynamoDirectory) Exists(ctx context.Context, technicianID string) (bool, error) {
	out, err := d.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(d.tableName),
		Key:                  stringKey("id", technicianID),
		ProjectionExpression: aws.String("#id, #active"),
		ExpressionAttributeNames: map[string]string{
			"#id":     "id",
			"#active": "active",
		},
	})
	if err != nil {
		return false, err
	}
	if len(out.Item) == 0 {
		return false, nil
	}

	var it technicianItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return false, err
	}
	return it.Active == nil || *it.Active, nil
}
