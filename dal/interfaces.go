package dal

import (
	"context"
	"errors"
	"greenroute-backend/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

var (
	// ErrItemNotFound is returned by GetItem when no item matches the key
	ErrItemNotFound = errors.New("item not found")
	// ErrTableNotFound is returned when the target table does not exist
	ErrTableNotFound = errors.New("table not found")
	// ErrTableExists is returned by CreateTable when the table is already present
	ErrTableExists = errors.New("table already exists")
)

// DatabaseClientInterface defines the contract for database operations
type DatabaseClientInterface interface {
	// Core CRUD operations
	GetItem(ctx context.Context, config models.QueryConfig, result interface{}) error
	PutItem(ctx context.Context, tableName string, item interface{}) error
	UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error
	DeleteItem(ctx context.Context, tableName, key, value string) error

	// Query and Scan operations
	QueryByIndex(ctx context.Context, config models.QueryConfig, results interface{}) error
	Scan(ctx context.Context, tableName string, results interface{}) error

	// Table management operations
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error
	DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error)
	DeleteTable(ctx context.Context, input *dynamodb.DeleteTableInput) error
}

// DALContainerInterface defines the contract for the DAL container
type DALContainerInterface interface {
	GetDatabaseClient() DatabaseClientInterface
}
