package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	entity "skillswap/internal/domain"
)

const (
	DatabaseName = "skillswap"

	// Collection holding exchange status transitions.
	CollectionStatus = "history_status"
)

type LogRepository interface {
	SaveHistoryStatus(doc *entity.HistoryStatus) error
}

type logRepository struct {
	collection *mongo.Collection
}

func NewLogRepository(client *mongo.Client) LogRepository {
	db := client.Database(DatabaseName)
	return &logRepository{
		collection: db.Collection(CollectionStatus),
	}
}

func (r *logRepository) SaveHistoryStatus(doc *entity.HistoryStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert history status: %w", err)
	}
	return nil
}

// NoopLogRepository is used when no Mongo instance is configured; history
// logging is best-effort and simply disabled.
type NoopLogRepository struct{}

func (NoopLogRepository) SaveHistoryStatus(*entity.HistoryStatus) error { return nil }
