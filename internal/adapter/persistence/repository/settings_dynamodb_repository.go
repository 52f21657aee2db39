package repository

import (
	"context"
	"fmt"
	"log"

	"autoshop_billing/internal/domain/pricing"
	"autoshop_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const taxAppliesToSettingKey = "tax_applies_to"

type settingItem struct {
	Key   string `dynamodbav:"key"`
	Value string `dynamodbav:"value"`
}

// SettingsTaxPolicyProvider reads the "tax applies to" shop setting.
//
// Table requirements:
//   - PK: key (string)
//
// The setting is read on every call so an admin change applies to the next
// computation. When no entry exists the configured default is used.
type SettingsTaxPolicyProvider struct {
	ddb       DynamoDBAPI
	tableName string
	fallback  pricing.TaxPolicy
}

var _ interfaces.ITaxPolicyProvider = (*SettingsTaxPolicyProvider)(nil)

func NewSettingsTaxPolicyProvider(ddb DynamoDBAPI, tableName, defaultPolicy string) (*SettingsTaxPolicyProvider, error) {
	fallback, err := pricing.ParseTaxPolicy(defaultPolicy)
	if err != nil {
		return nil, fmt.Errorf("default tax policy %q: %w", defaultPolicy, err)
	}
	return &SettingsTaxPolicyProvider{ddb: ddb, tableName: tableName, fallback: fallback}, nil
}

func (p *SettingsTaxPolicyProvider) TaxPolicy(ctx context.Context) (pricing.TaxPolicy, error) {
	out, err := p.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(p.tableName),
		Key:            stringKey("key", taxAppliesToSettingKey),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if len(out.Item) == 0 {
		return p.fallback, nil
	}

	var it settingItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return "", err
	}
	policy, err := pricing.ParseTaxPolicy(it.Value)
	if err != nil {
		log.Printf("[settings][repository] stored tax policy is invalid value=%q", it.Value)
		return "", fmt.Errorf("setting %s: %w", taxAppliesToSettingKey, err)
	}
	return policy, nil
}
