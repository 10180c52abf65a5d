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

type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(activityCollection)}
}

type mongoActivity struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	TaskID  string             `bson:"taskId"`
	Action  string             `bson:"action"`
	Status  string             `bson:"status,omitempty"`
	Changed []string           `bson:"changed,omitempty"`
	At      time.Time          `bson:"at"`
}

func (m mongoActivity) toDomain() *domain.TaskActivity {
	return &domain.TaskActivity{
		ID:      m.ID.Hex(),
		TaskID:  m.TaskID,
		Action:  domain.ActivityAction(m.Action),
		Status:  m.Status,
		Changed: m.Changed,
		At:      m.At.UTC(),
	}
}

func (r *ActivityRepository) Insert(ctx context.Context, a *domain.TaskActivity) error {
	id, err := insertOne(ctx, r.col, mongoActivity{
		TaskID:  a.TaskID,
		Action:  string(a.Action),
		Status:  a.Status,
		Changed: a.Changed,
		At:      a.At.UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	a.ID = id
	return nil
}

func (r *ActivityRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.TaskActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: 1}, {Key: "_id", Value: 1}})
	docs, err := findAll[mongoActivity](ctx, r.col, bson.M{"taskId": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	out := make([]*domain.TaskActivity, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}
