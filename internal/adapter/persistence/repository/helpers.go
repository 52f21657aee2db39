package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoshop_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by the repositories.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

// ErrCorruptItem is returned when a stored attribute cannot be parsed.
var ErrCorruptItem = errors.New("corrupt dynamodb item")

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func formatDecimal(d decimal.Decimal) string {
	return d.String()
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// itemReader converts stored string attributes back into typed values and
// keeps the first failure, so a corrupt item is rejected instead of being read
// as zero.
type itemReader struct {
	table string
	id    string
	err   error
}

func (r *itemReader) decimalAttr(field, s string) decimal.Decimal {
	d, err := parseDecimal(s)
	if err != nil {
		r.fail(field, s, err)
	}
	return d
}

func (r *itemReader) timeAttr(field, s string) time.Time {
	t, err := parseTime(s)
	if err != nil {
		r.fail(field, s, err)
	}
	return t
}

func (r *itemReader) fail(field, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s %s: %s=%q: %v", ErrCorruptItem, r.table, r.id, field, value, err)
	}
}

// mapTransactionError turns a cancelled transaction caused by a failed
// condition into ErrConcurrentModification.
func mapTransactionError(err error) error {
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
				return interfaces.ErrConcurrentModification
			}
		}
	}
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return interfaces.ErrConcurrentModification
	}
	return err
}
