package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// CatalogService manages teams, projects and tags.
type CatalogService struct {
	teams    ports.TeamRepository
	projects ports.ProjectRepository
	tags     ports.TagRepository
	logger   zerolog.Logger
}

func NewCatalogService(teams ports.TeamRepository, projects ports.ProjectRepository, tags ports.TagRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{teams: teams, projects: projects, tags: tags, logger: logger}
}

func (s *CatalogService) CreateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	if team.Members == nil {
		team.Members = []string{}
	}
	if err := s.teams.Create(ctx, team); err != nil {
		s.logger.Error().Err(err).Str("name", team.Name).Msg("failed to create team")
		return nil, &domain.CreationError{Entity: "team", Err: err}
	}
	return team, nil
}

func (s *CatalogService) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, domain.ErrNoTeams
	}
	return teams, nil
}

func (s *CatalogService) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if err := s.projects.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Str("name", project.Name).Msg("failed to create project")
		return nil, &domain.CreationError{Entity: "project", Err: err}
	}
	return project, nil
}

func (s *CatalogService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, domain.ErrNoProjects
	}
	return projects, nil
}

func (s *CatalogService) CreateTag(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	if err := s.tags.Create(ctx, tag); err != nil {
		s.logger.Error().Err(err).Str("name", tag.Name).Msg("failed to create tag")
		return nil, &domain.CreationError{Entity: "tags", Err: err}
	}
	return tag, nil
}

func (s *CatalogService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if len(tags) == 0 {
		return nil, domain.ErrNoTags
	}
	return tags, nil
}
