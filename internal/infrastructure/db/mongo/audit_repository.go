package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

const auditCollection = "moderation_audit"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	ActorAccountID string `bson:"actor_account_id"`
	ActorName      string `bson:"actor_name,omitempty"`
	Action         string `bson:"action"`
	TargetUID      string `bson:"target_uid"`
	Reason         string `bson:"reason,omitempty"`
	Duration       int    `bson:"duration,omitempty"`
	CreatedAt      int64  `bson:"created_at"`
}

func (r *MongoAuditRepository) Record(ctx context.Context, entry domain.AuditEntry) error {
	doc := mongoAuditEntry{
		ActorAccountID: entry.ActorAccountID,
		ActorName:      entry.ActorName,
		Action:         entry.Action,
		TargetUID:      entry.TargetUID,
		Reason:         entry.Reason,
		Duration:       entry.Duration,
		CreatedAt:      entry.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (r *MongoAuditRepository) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var entries []domain.AuditEntry
	for cur.Next(ctx) {
		var me mongoAuditEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, domain.AuditEntry{
			ActorAccountID: me.ActorAccountID,
			ActorName:      me.ActorName,
			Action:         me.Action,
			TargetUID:      me.TargetUID,
			Reason:         me.Reason,
			Duration:       me.Duration,
			CreatedAt:      unixToTime(me.CreatedAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
