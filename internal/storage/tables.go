package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

type tableSpec struct {
	name         string
	partitionKey string
	rangeKey     string
}

// CreateTablesIfNotExist bootstraps the records and roster tables for local
// development. Both are tenant-partitioned; the records table ranges on the
// composite sort key so date-bounded queries stay single-partition.
func CreateTablesIfNotExist(ctx context.Context, client *dynamodb.Client, config DynamoConfig, logger zerolog.Logger) error {
	specs := []tableSpec{
		{name: config.RecordsTable, partitionKey: "TenantID", rangeKey: "SortKey"},
		{name: config.AgentsTable, partitionKey: "TenantID", rangeKey: "AgentID"},
	}

	for _, spec := range specs {
		if err := ensureTable(ctx, client, spec, logger); err != nil {
			return err
		}
	}
	return nil
}

func ensureTable(ctx context.Context, client *dynamodb.Client, spec tableSpec, logger zerolog.Logger) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(spec.name),
	})
	if err == nil {
		logger.Debug().Str("table", spec.name).Msg("table already exists")
		return nil
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(spec.name),
		KeySchema: []dbtypes.KeySchemaElement{
			{AttributeName: aws.String(spec.partitionKey), KeyType: dbtypes.KeyTypeHash},
			{AttributeName: aws.String(spec.rangeKey), KeyType: dbtypes.KeyTypeRange},
		},
		AttributeDefinitions: []dbtypes.AttributeDefinition{
			{AttributeName: aws.String(spec.partitionKey), AttributeType: dbtypes.ScalarAttributeTypeS},
			{AttributeName: aws.String(spec.rangeKey), AttributeType: dbtypes.ScalarAttributeTypeS},
		},
		BillingMode: dbtypes.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", spec.name, err)
	}

	logger.Info().Str("table", spec.name).Msg("table created")
	return nil
}
