package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// mongoTask is the stored task document. References are ObjectIDs.
type mongoTask struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Project        primitive.ObjectID `bson:"project"`
	Team           primitive.ObjectID `bson:"team"`
	Owner          primitive.ObjectID `bson:"owner"`
	Tags           []string           `bson:"tags,omitempty"`
	TimeToComplete *float64           `bson:"timeToComplete,omitempty"`
	Status         string             `bson:"status"`
	CompletedAt    *time.Time         `bson:"completedAt,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// mongoTaskView is a task with its references resolved by $lookup.
type mongoTaskView struct {
	mongoTask  `bson:",inline"`
	ProjectDoc []mongoProject `bson:"projectDoc"`
	TeamDoc    []mongoTeam    `bson:"teamDoc"`
	OwnerDoc   []mongoUser    `bson:"ownerDoc"`
}

func newMongoTask(t *domain.Task) (mongoTask, error) {
	refs, err := objectIDs(map[string]string{
		"project": t.ProjectID,
		"team":    t.TeamID,
		"owner":   t.OwnerID,
	})
	if err != nil {
		return mongoTask{}, err
	}
	return mongoTask{
		Name:           t.Name,
		Project:        refs["project"],
		Team:           refs["team"],
		Owner:          refs["owner"],
		Tags:           t.Tags,
		TimeToComplete: t.TimeToComplete,
		Status:         t.Status,
		CompletedAt:    t.CompletedAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}, nil
}

func (m mongoTask) toDomain() *domain.Task {
	t := &domain.Task{
		ID:             m.ID.Hex(),
		Name:           m.Name,
		ProjectID:      hexOrEmpty(m.Project),
		TeamID:         hexOrEmpty(m.Team),
		OwnerID:        hexOrEmpty(m.Owner),
		Tags:           m.Tags,
		TimeToComplete: m.TimeToComplete,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
	if m.CompletedAt != nil {
		at := m.CompletedAt.UTC()
		t.CompletedAt = &at
	}
	return t
}

func (v mongoTaskView) toDomain() *domain.Task {
	t := v.mongoTask.toDomain()
	if len(v.ProjectDoc) > 0 {
		t.Project = v.ProjectDoc[0].toDomain()
	}
	if len(v.TeamDoc) > 0 {
		t.Team = v.TeamDoc[0].toDomain()
	}
	if len(v.OwnerDoc) > 0 {
		owner := v.OwnerDoc[0].toDomain()
		owner.PasswordHash = ""
		t.Owner = owner
	}
	return t
}

// expandPipeline matches tasks and resolves project, team and owner into
// projectDoc, teamDoc and ownerDoc. Owner password hashes are projected out.
func expandPipeline(match bson.M) mongo.Pipeline {
	lookup := func(from, local, as string) bson.D {
		return bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: local},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
		}}}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
		lookup(projectsCollection, "project", "projectDoc"),
		lookup(teamsCollection, "team", "teamDoc"),
		lookup(usersCollection, "owner", "ownerDoc"),
		{{Key: "$project", Value: bson.D{{Key: "ownerDoc.password", Value: 0}}}},
	}
}

// taskFilterDoc converts the allow-listed filter into a query document.
func taskFilterDoc(f ports.TaskFilter) (bson.M, error) {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = f.Name
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	refs, err := objectIDs(map[string]string{
		"project": f.ProjectID,
		"team":    f.TeamID,
		"owner":   f.OwnerID,
	})
	if err != nil {
		return nil, err
	}
	for field, oid := range refs {
		filter[field] = oid
	}
	return filter, nil
}

// taskUpdateDoc converts a patch into a $set/$unset update document.
func taskUpdateDoc(p domain.TaskPatch, now time.Time) (bson.M, error) {
	set := bson.M{"updatedAt": now}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Tags != nil {
		set["tags"] = *p.Tags
	}
	if p.TimeToComplete != nil {
		set["timeToComplete"] = *p.TimeToComplete
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.CompletedAt != nil {
		set["completedAt"] = p.CompletedAt.UTC()
	}

	raw := map[string]string{}
	if p.ProjectID != nil {
		raw["project"] = *p.ProjectID
	}
	if p.TeamID != nil {
		raw["team"] = *p.TeamID
	}
	if p.OwnerID != nil {
		raw["owner"] = *p.OwnerID
	}
	refs, err := objectIDs(raw)
	if err != nil {
		return nil, err
	}
	for field, oid := range refs {
		set[field] = oid
	}

	update := bson.M{"$set": set}
	if p.ClearCompletedAt {
		update["$unset"] = bson.M{"completedAt": ""}
	}
	return update, nil
}

// objectIDs parses the non-empty hex ids in refs, keyed by field name.
func objectIDs(refs map[string]string) (map[string]primitive.ObjectID, error) {
	out := make(map[string]primitive.ObjectID, len(refs))
	for field, hex := range refs {
		if hex == "" {
			continue
		}
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("%s must be a valid object id", field))
		}
		out[field] = oid
	}
	return out, nil
}

func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}
