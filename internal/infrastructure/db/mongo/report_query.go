package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// completedSinceFilter matches completed tasks whose completedAt is at or
// after since. The lower bound is inclusive.
func completedSinceFilter(since time.Time) bson.M {
	return bson.M{
		"status":      domain.StatusCompleted,
		"completedAt": bson.M{"$gte": since.UTC()},
	}
}

// pendingFilter matches every task not in the Completed status, including
// documents with no status at all.
func pendingFilter() bson.M {
	return bson.M{"status": bson.M{"$ne": domain.StatusCompleted}}
}

func completedFilter() bson.M {
	return bson.M{"status": domain.StatusCompleted}
}
