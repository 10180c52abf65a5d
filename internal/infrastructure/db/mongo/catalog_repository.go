package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

type mongoTeam struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Members     []string           `bson:"members"`
}

func (m mongoTeam) toDomain() *domain.Team {
	members := m.Members
	if members == nil {
		members = []string{}
	}
	return &domain.Team{ID: m.ID.Hex(), Name: m.Name, Description: m.Description, Members: members}
}

type mongoProject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
}

func (m mongoProject) toDomain() *domain.Project {
	return &domain.Project{ID: m.ID.Hex(), Name: m.Name, Description: m.Description}
}

type mongoTag struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (m mongoTag) toDomain() *domain.Tag {
	return &domain.Tag{ID: m.ID.Hex(), Name: m.Name}
}

// insertOne stores doc and returns the generated id as hex.
func insertOne(ctx context.Context, coll *mongo.Collection, doc any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// listAll returns every document in coll ordered by insertion.
func listAll[T interface{ toDomain() *D }, D any](ctx context.Context, coll *mongo.Collection) ([]*D, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := findAll[T](ctx, coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]*D, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

type TeamRepository struct {
	coll *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{coll: db.Collection(teamsCollection)}
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	id, err := insertOne(ctx, r.coll, mongoTeam{
		Name:        team.Name,
		Description: team.Description,
		Members:     team.Members,
	})
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	team.ID = id
	return nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	teams, err := listAll[mongoTeam, domain.Team](ctx, r.coll)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	id, err := insertOne(ctx, r.coll, mongoProject{Name: project.Name, Description: project.Description})
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	project.ID = id
	return nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := listAll[mongoProject, domain.Project](ctx, r.coll)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

type TagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{coll: db.Collection(tagsCollection)}
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	id, err := insertOne(ctx, r.coll, mongoTag{Name: tag.Name})
	if err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	tag.ID = id
	return nil
}

func (r *TagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := listAll[mongoTag, domain.Tag](ctx, r.coll)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}
