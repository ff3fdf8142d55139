package infrastructure

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"greenroute-backend/dal"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tidwall/gjson"
)

const (
	JobsTable       = "jobs"
	SettingsTable   = "settings"
	SystemLogsTable = "system_logs"

	// OrgIndex is the GSI on orgID carried by jobs and system_logs
	OrgIndex = "orgID-index"
)

type TableSchema struct {
	TableName              string                 `json:"TableName"`
	AttributeDefinitions   []AttributeDefinition  `json:"AttributeDefinitions"`
	KeySchema              []KeySchemaElement     `json:"KeySchema"`
	ProvisionedThroughput  Throughput             `json:"ProvisionedThroughput"`
	GlobalSecondaryIndexes []GlobalSecondaryIndex `json:"GlobalSecondaryIndexes,omitempty"`
}

type AttributeDefinition struct {
	AttributeName string `json:"AttributeName"`
	AttributeType string `json:"AttributeType"`
}

type KeySchemaElement struct {
	AttributeName string `json:"AttributeName"`
	KeyType       string `json:"KeyType"`
}

type Throughput struct {
	ReadCapacityUnits  int64 `json:"ReadCapacityUnits"`
	WriteCapacityUnits int64 `json:"WriteCapacityUnits"`
}

type GlobalSecondaryIndex struct {
	IndexName             string             `json:"IndexName"`
	KeySchema             []KeySchemaElement `json:"KeySchema"`
	Projection            Projection         `json:"Projection"`
	ProvisionedThroughput Throughput         `json:"ProvisionedThroughput"`
}

type Projection struct {
	ProjectionType string `json:"ProjectionType"`
}

//go:embed table_schema.json
var tablesSchema []byte

// GetTable returns the create input for base table schemaKey, renamed to tableName
func GetTable(schemaKey, tableName string) (*dynamodb.CreateTableInput, error) {
	tableJSON := gjson.GetBytes(tablesSchema, schemaKey)
	if !tableJSON.Exists() {
		return nil, fmt.Errorf("table schema not found for key: %s", schemaKey)
	}

	var schema TableSchema
	if err := json.Unmarshal([]byte(tableJSON.Raw), &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema JSON: %w", err)
	}

	schema.TableName = tableName
	return schema.ToDynamoInput(), nil
}

// HashKey returns the primary key attribute declared for schemaKey
func HashKey(schemaKey string) string {
	return gjson.GetBytes(tablesSchema, schemaKey+`.KeySchema.#(KeyType=="HASH").AttributeName`).String()
}

// ToDynamoInput converts the schema to a DynamoDB create input
func (ts *TableSchema) ToDynamoInput() *dynamodb.CreateTableInput {
	attrDefs := make([]types.AttributeDefinition, 0, len(ts.AttributeDefinitions))
	for _, a := range ts.AttributeDefinitions {
		attrDefs = append(attrDefs, types.AttributeDefinition{
			AttributeName: aws.String(a.AttributeName),
			AttributeType: types.ScalarAttributeType(a.AttributeType),
		})
	}

	gsis := make([]types.GlobalSecondaryIndex, 0, len(ts.GlobalSecondaryIndexes))
	for _, g := range ts.GlobalSecondaryIndexes {
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName: aws.String(g.IndexName),
			KeySchema: toKeySchema(g.KeySchema),
			Projection: &types.Projection{
				ProjectionType: types.ProjectionType(g.Projection.ProjectionType),
			},
			ProvisionedThroughput: toThroughput(g.ProvisionedThroughput),
		})
	}

	input := &dynamodb.CreateTableInput{
		TableName:             aws.String(ts.TableName),
		AttributeDefinitions:  attrDefs,
		KeySchema:             toKeySchema(ts.KeySchema),
		ProvisionedThroughput: toThroughput(ts.ProvisionedThroughput),
	}
	if len(gsis) > 0 {
		input.GlobalSecondaryIndexes = gsis
	}
	return input
}

func toKeySchema(in []KeySchemaElement) []types.KeySchemaElement {
	out := make([]types.KeySchemaElement, 0, len(in))
	for _, k := range in {
		out = append(out, types.KeySchemaElement{
			AttributeName: aws.String(k.AttributeName),
			KeyType:       types.KeyType(k.KeyType),
		})
	}
	return out
}

func toThroughput(t Throughput) *types.ProvisionedThroughput {
	return &types.ProvisionedThroughput{
		ReadCapacityUnits:  aws.Int64(t.ReadCapacityUnits),
		WriteCapacityUnits: aws.Int64(t.WriteCapacityUnits),
	}
}

// EnsureTables creates every configured table that does not exist yet
func EnsureTables(ctx context.Context, db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) error {
	for _, base := range cfg.Tables {
		name := cfg.TableName(base)

		if _, err := db.DescribeTable(ctx, name); err == nil {
			log.Debugf("Table %s already exists, skipping creation", name)
			continue
		} else if !errors.Is(err, dal.ErrTableNotFound) {
			return fmt.Errorf("failed to describe table %s: %w", name, err)
		}

		input, err := GetTable(base, name)
		if err != nil {
			return err
		}
		if err := db.CreateTable(ctx, input); err != nil && !errors.Is(err, dal.ErrTableExists) {
			return fmt.Errorf("failed to create table %s: %w", name, err)
		}
		log.Infof("Created table %s", name)
	}
	return nil
}
