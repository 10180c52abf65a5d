package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	List(ctx context.Context) ([]*domain.Team, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	List(ctx context.Context) ([]*domain.Project, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	List(ctx context.Context) ([]*domain.Tag, error)
}

// CatalogService manages the records tasks refer to.
type CatalogService interface {
	CreateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]*domain.Team, error)
	CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	CreateTag(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
}
