package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// ReportRepository serves the read paths of the reporting engine from the
// tasks collection.
type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(tasksCollection)}
}

func (r *ReportRepository) CompletedSince(ctx context.Context, since time.Time) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: 1}})

	docs, err := findAll[mongoTask](ctx, r.col, completedSinceFilter(since), opts)
	if err != nil {
		return nil, fmt.Errorf("find completed tasks: %w", err)
	}

	tasks := make([]*domain.Task, len(docs))
	for i, d := range docs {
		tasks[i] = d.toDomain()
	}
	return tasks, nil
}

func (r *ReportRepository) ForEachPending(ctx context.Context, fn func(*domain.Task) error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, pendingFilter())
	if err != nil {
		return fmt.Errorf("find pending tasks: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc mongoTask
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("decode pending task: %w", err)
		}
		if err := fn(doc.toDomain()); err != nil {
			return err
		}
	}
	return cur.Err()
}

// closedKeyDoc is the projection read when grouping completed tasks.
type closedKeyDoc struct {
	Team    primitive.ObjectID `bson:"team"`
	Owner   primitive.ObjectID `bson:"owner"`
	Project primitive.ObjectID `bson:"project"`
}

func (r *ReportRepository) ForEachCompleted(ctx context.Context, fn func(domain.ClosedTaskKey) error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"team": 1, "owner": 1, "project": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := r.col.Find(ctx, completedFilter(), opts)
	if err != nil {
		return fmt.Errorf("find completed tasks: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc closedKeyDoc
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("decode completed task: %w", err)
		}
		key := domain.ClosedTaskKey{
			TeamID:    hexOrEmpty(doc.Team),
			OwnerID:   hexOrEmpty(doc.Owner),
			ProjectID: hexOrEmpty(doc.Project),
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	return cur.Err()
}
