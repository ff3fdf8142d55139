package dal

import (
	"fmt"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
)

// DALContainer holds the database client selected by configuration
type DALContainer struct {
	databaseClient DatabaseClientInterface
}

// NewDALContainer builds the client named by cfg.DatabaseDriver
func NewDALContainer(cfg *models.Config, log logger.Logger) (*DALContainer, error) {
	switch cfg.DatabaseDriver {
	case "memory":
		log.Warn("Using in-memory database client, data will not survive a restart")
		return &DALContainer{databaseClient: NewMemoryClient(log)}, nil
	case "dynamodb", "":
		client, err := NewDynamoDBClient(cfg, log)
		if err != nil {
			return nil, err
		}
		return &DALContainer{databaseClient: client}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DatabaseDriver)
	}
}

// GetDatabaseClient returns the configured client
func (c *DALContainer) GetDatabaseClient() DatabaseClientInterface {
	return c.databaseClient
}
