package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dispatchly/agentreport/internal/types"
	"github.com/rs/zerolog"
)

// DynamoDBStore implements Store using AWS DynamoDB
type DynamoDBStore struct {
	client *dynamodb.Client
	config DynamoConfig
	logger zerolog.Logger
}

// NewDynamoDBStore creates a new DynamoDB store
func NewDynamoDBStore(ctx context.Context, cfg DynamoConfig, logger zerolog.Logger) (*DynamoDBStore, error) {
	var client *dynamodb.Client

	if cfg.Mode == DynamoModeLocal {
		// For local mode, build the client directly without LoadDefaultConfig.
		// LoadDefaultConfig probes the EC2 IMDS endpoint which hangs on EC2
		// instances when static credentials are intended.
		client = dynamodb.New(dynamodb.Options{
			Region:       cfg.Region,
			BaseEndpoint: aws.String(cfg.Endpoint),
			Credentials:  credentials.NewStaticCredentialsProvider("local", "local", ""),
		})
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client = dynamodb.NewFromConfig(awsCfg)
	}

	store := &DynamoDBStore{
		client: client,
		config: cfg,
		logger: logger,
	}

	// Create tables in local mode
	if cfg.Mode == DynamoModeLocal {
		if err := CreateTablesIfNotExist(ctx, client, cfg, logger); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("mode", string(cfg.Mode)).
		Str("region", cfg.Region).
		Msg("DynamoDB store initialized")

	return store, nil
}

// sortKey builds the range key for the records table. The date prefix makes
// a lexicographic between-query equivalent to an inclusive date-range query.
func sortKey(date, agentID, recordID string) string {
	return date + "#" + agentID + "#" + recordID
}

// FetchRecords queries one tenant's rows with inclusive date bounds.
// "$" sorts directly after "#", so between(from+"#", to+"$") covers every
// sort key whose date component falls inside the range.
func (s *DynamoDBStore) FetchRecords(ctx context.Context, tenantID, agentID, dateFrom, dateTo string) ([]types.RawRecord, error) {
	keyCond := expression.Key("TenantID").Equal(expression.Value(tenantID)).
		And(expression.Key("SortKey").Between(expression.Value(dateFrom+"#"), expression.Value(dateTo+"$")))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	filtered := agentID != "" && agentID != types.AgentIDAll
	if filtered {
		builder = builder.WithFilter(expression.Name("AgentID").Equal(expression.Value(agentID)))
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.config.RecordsTable),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false), // date-descending, most recent first
	}
	if filtered {
		input.FilterExpression = expr.Filter()
	}

	var records []types.RawRecord
	for {
		result, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query records: %w", err)
		}

		var page []types.RawRecord
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal records: %w", err)
		}
		records = append(records, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
	return records, nil
}

// FetchSessions returns one agent's rows for a single date, most recent
// login first. The login-time ordering is part of the store contract;
// consumers display it verbatim.
func (s *DynamoDBStore) FetchSessions(ctx context.Context, tenantID, agentID, date string) ([]types.RawRecord, error) {
	records, err := s.FetchRecords(ctx, tenantID, agentID, date, date)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LoginTime > records[j].LoginTime
	})
	return records, nil
}

// ListAgents returns the tenant's agent roster
func (s *DynamoDBStore) ListAgents(ctx context.Context, tenantID string) ([]types.AgentEntry, error) {
	keyCond := expression.Key("TenantID").Equal(expression.Value(tenantID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.config.AgentsTable),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}

	var agents []types.AgentEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &agents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agents: %w", err)
	}
	return agents, nil
}

// PutRecord writes one attendance row. The sort key is derived here so
// writers never have to assemble it themselves.
func (s *DynamoDBStore) PutRecord(ctx context.Context, record types.RawRecord) error {
	if record.TenantID == "" || record.AgentID == "" || record.Date == "" || record.RecordID == "" {
		return fmt.Errorf("record is missing identity fields")
	}
	record.SortKey = sortKey(record.Date, record.AgentID, record.RecordID)

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.RecordsTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// PutAgent writes one roster row
func (s *DynamoDBStore) PutAgent(ctx context.Context, agent types.AgentEntry) error {
	if agent.TenantID == "" || agent.AgentID == "" {
		return fmt.Errorf("agent is missing identity fields")
	}

	item, err := attributevalue.MarshalMap(agent)
	if err != nil {
		return fmt.Errorf("failed to marshal agent: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.AgentsTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to save agent: %w", err)
	}
	return nil
}

// NewStore creates the appropriate store based on configuration
func NewStore(ctx context.Context, logger zerolog.Logger) (Store, error) {
	cfg := LoadDynamoConfig()

	switch cfg.Mode {
	case DynamoModeLocal, DynamoModeAWS:
		return NewDynamoDBStore(ctx, cfg, logger)
	default:
		logger.Info().Msg("DynamoDB disabled (DYNAMO_MODE=none)")
		return NewNoopStore(), nil
	}
}
