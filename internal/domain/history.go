package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryStatus records one exchange status transition. Written best-effort;
// a failed write never fails the transition itself.
type HistoryStatus struct {
	ID         primitive.ObjectID `bson:"_id"`
	ExchangeID int64              `bson:"exchange_id"`
	OldStatus  Status             `bson:"old_status"`
	NewStatus  Status             `bson:"new_status"`
	ChangedBy  int64              `bson:"changed_by"` // profile id of the actor
	Timestamp  time.Time          `bson:"timestamp"`
}
