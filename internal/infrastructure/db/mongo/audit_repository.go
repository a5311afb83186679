package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/myapp/catalog-api/internal/core/domain"
)

const auditCollection = "catalog_audit"

// AuditRepository implements ports.AuditRecorder using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record appends a catalog mutation to the audit collection.
func (r *AuditRepository) Record(ctx context.Context, entry domain.AuditEntry) error {
	doc := bson.M{
		"resource":    entry.Resource,
		"action":      string(entry.Action),
		"resource_id": entry.ResourceID,
		"at":          entry.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if entry.ActorID > 0 {
		doc["actor_id"] = entry.ActorID
	}

	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
