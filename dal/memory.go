package dal

import (
	"context"
	"fmt"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type memoryTable struct {
	keyName string
	order   []string
	items   map[string]map[string]types.AttributeValue
	input   *dynamodb.CreateTableInput
}

// MemoryClient keeps items as DynamoDB attribute maps in process memory.
// It is used for local development and repository tests.
type MemoryClient struct {
	mu     sync.RWMutex
	tables map[string]*memoryTable
	logger logger.Logger
}

func NewMemoryClient(log logger.Logger) *MemoryClient {
	return &MemoryClient{
		tables: make(map[string]*memoryTable),
		logger: log,
	}
}

func attributeString(av types.AttributeValue) (string, bool) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value, true
	case *types.AttributeValueMemberN:
		return v.Value, true
	default:
		return "", false
	}
}

func (m *MemoryClient) table(name string) (*memoryTable, error) {
	t, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return t, nil
}

func (m *MemoryClient) GetItem(ctx context.Context, cfg models.QueryConfig, result interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.table(cfg.TableName)
	if err != nil {
		return err
	}
	if cfg.KeyName != t.keyName {
		return fmt.Errorf("key %s is not the primary key of %s", cfg.KeyName, cfg.TableName)
	}
	item, ok := t.items[cfg.KeyValue]
	if !ok {
		return ErrItemNotFound
	}
	return attributevalue.UnmarshalMap(item, result)
}

func (m *MemoryClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(tableName)
	if err != nil {
		return err
	}
	key, ok := attributeString(av[t.keyName])
	if !ok || key == "" {
		return fmt.Errorf("item is missing key attribute %s", t.keyName)
	}
	if _, exists := t.items[key]; !exists {
		t.order = append(t.order, key)
	}
	t.items[key] = av
	return nil
}

func (m *MemoryClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(tableName)
	if err != nil {
		return err
	}
	item, ok := t.items[keyValue]
	if !ok {
		return ErrItemNotFound
	}
	for field, value := range updates {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", field, err)
		}
		item[field] = av
	}
	return nil
}

func (m *MemoryClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(tableName)
	if err != nil {
		return err
	}
	if _, ok := t.items[value]; !ok {
		return nil
	}
	delete(t.items, value)
	for i, k := range t.order {
		if k == value {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// QueryByIndex returns every item whose KeyName attribute equals KeyValue, in insertion order
func (m *MemoryClient) QueryByIndex(ctx context.Context, cfg models.QueryConfig, results interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.table(cfg.TableName)
	if err != nil {
		return err
	}
	matched := make([]map[string]types.AttributeValue, 0)
	for _, k := range t.order {
		item := t.items[k]
		if v, ok := attributeString(item[cfg.KeyName]); ok && v == cfg.KeyValue {
			matched = append(matched, item)
		}
	}
	return attributevalue.UnmarshalListOfMaps(matched, results)
}

func (m *MemoryClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.table(tableName)
	if err != nil {
		return err
	}
	all := make([]map[string]types.AttributeValue, 0, len(t.order))
	for _, k := range t.order {
		all = append(all, t.items[k])
	}
	return attributevalue.UnmarshalListOfMaps(all, results)
}

func (m *MemoryClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	name := aws.ToString(input.TableName)
	var keyName string
	for _, k := range input.KeySchema {
		if k.KeyType == types.KeyTypeHash {
			keyName = aws.ToString(k.AttributeName)
		}
	}
	if keyName == "" {
		return fmt.Errorf("table %s has no hash key", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tables[name]; exists {
		return fmt.Errorf("%w: %s", ErrTableExists, name)
	}
	m.tables[name] = &memoryTable{
		keyName: keyName,
		items:   make(map[string]map[string]types.AttributeValue),
		input:   input,
	}
	m.logger.Debugf("Created in-memory table %s (key %s)", name, keyName)
	return nil
}

func (m *MemoryClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.table(tableName)
	if err != nil {
		return nil, err
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:            aws.String(tableName),
			TableStatus:          types.TableStatusActive,
			KeySchema:            t.input.KeySchema,
			AttributeDefinitions: t.input.AttributeDefinitions,
			ItemCount:            aws.Int64(int64(len(t.items))),
		},
	}, nil
}

func (m *MemoryClient) DeleteTable(ctx context.Context, input *dynamodb.DeleteTableInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := aws.ToString(input.TableName)
	if _, err := m.table(name); err != nil {
		return err
	}
	delete(m.tables, name)
	return nil
}
