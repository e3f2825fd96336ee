package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Database keeps a history of audits and reorders.
type Database interface {
	SaveAuditReport(ctx context.Context, report *models.AuditReport) error
	GetLatestAuditReport(ctx context.Context, manifestPath string) (*models.AuditReport, error)
	SaveReorderEvents(ctx context.Context, events []models.ReorderEvent) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error
}

type db struct {
	conn *mongo.Client
	log  *zap.Logger

	// Collections
	auditReportsCollection  *mongo.Collection
	reorderEventsCollection *mongo.Collection
	dbname                  string

	stamps stamper
}

// stamper hands out Unix millisecond timestamps that strictly increase, so
// two reports saved within the same millisecond still sort in save order.
type stamper struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func (s *stamper) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	ts := now().UnixMilli()
	if ts <= s.last {
		ts = s.last + 1
	}
	s.last = ts
	return ts
}

// latestFirst sorts newest documents first.
func latestFirst() bson.D {
	return bson.D{{Key: "created_at", Value: -1}}
}

func NewDatabase(ctx context.Context, log *zap.Logger, url, dbname string) (Database, error) {
	conn, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection
	if err := conn.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &db{
		conn:   conn,
		log:    log,
		dbname: dbname,

		auditReportsCollection:  conn.Database(dbname).Collection("profile_audits"),
		reorderEventsCollection: conn.Database(dbname).Collection("seed_reorders"),
	}, nil
}

func (d *db) Close(ctx context.Context) error {
	return d.conn.Disconnect(ctx)
}

func (d *db) Ping(ctx context.Context) error {
	return d.conn.Ping(ctx, nil)
}

func (d *db) SaveAuditReport(ctx context.Context, report *models.AuditReport) error {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("failed to generate report id: %w", err)
	}
	report.ID = id.String()
	report.CreatedAt = d.stamps.next()

	if _, err := d.auditReportsCollection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert audit report: %w", err)
	}

	d.log.Info("saved audit report", zap.String("id", report.ID))
	return nil
}

// GetLatestAuditReport returns nil without error when the manifest was never
// audited before.
func (d *db) GetLatestAuditReport(ctx context.Context, manifestPath string) (*models.AuditReport, error) {
	opts := options.FindOne().SetSort(latestFirst())

	var report models.AuditReport
	err := d.auditReportsCollection.FindOne(ctx, bson.M{"manifest_path": manifestPath}, opts).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest audit report: %w", err)
	}

	return &report, nil
}

func (d *db) SaveReorderEvents(ctx context.Context, events []models.ReorderEvent) error {
	if len(events) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(events))
	for i := range events {
		id, err := uuid.NewV4()
		if err != nil {
			return fmt.Errorf("failed to generate event id: %w", err)
		}
		events[i].ID = id.String()
		events[i].CreatedAt = d.stamps.next()
		docs = append(docs, events[i])
	}

	if _, err := d.reorderEventsCollection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert reorder events: %w", err)
	}

	d.log.Info("saved reorder events", zap.Int("count", len(events)))
	return nil
}
