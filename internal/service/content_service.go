package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// ContentService handles categories, tags, posts and projects.
type ContentService struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
	posts      repository.PostRepository
	projects   repository.ProjectRepository
	views      *ViewCounter
}

// ContentDependencies bundles repositories.
type ContentDependencies struct {
	CategoryRepo repository.CategoryRepository
	TagRepo      repository.TagRepository
	PostRepo     repository.PostRepository
	ProjectRepo  repository.ProjectRepository
	Views        *ViewCounter
}

// NewContentService creates the service.
func NewContentService(deps ContentDependencies) *ContentService {
	return &ContentService{
		categories: deps.CategoryRepo,
		tags:       deps.TagRepo,
		posts:      deps.PostRepo,
		projects:   deps.ProjectRepo,
		views:      deps.Views,
	}
}

// ListCategories returns all categories, newest first. Public.
func (s *ContentService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

// CreateCategory inserts a category. Slug uniqueness is enforced by the store.
func (s *ContentService) CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error) {
	category := &domain.Category{Name: name, Slug: orSlugify(slug, name)}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// ListTags returns all tags, newest first. Public.
func (s *ContentService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tags, nil
}

// CreateTag inserts a tag.
func (s *ContentService) CreateTag(ctx context.Context, name, slug string) (*domain.Tag, error) {
	tag := &domain.Tag{Name: name, Slug: orSlugify(slug, name)}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, apperrors.MapError(err)
	}
	return tag, nil
}

// ListPosts returns posts, drafts included only for admin callers.
func (s *ContentService) ListPosts(ctx context.Context, includeDrafts bool) ([]domain.Post, error) {
	filter := repository.PostFilter{}
	if !includeDrafts {
		published := domain.PostStatusPublished
		filter.Status = &published
	}
	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range posts {
		posts[i].Views = s.views.Count(ctx, posts[i].Slug)
	}
	return posts, nil
}

// GetPost fetches a post by slug. Public reads see published posts only and
// count a view.
func (s *ContentService) GetPost(ctx context.Context, slug string, includeDrafts bool) (*domain.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"slug": slug})
		}
		return nil, apperrors.MapError(err)
	}
	if !post.Published() && !includeDrafts {
		return nil, apperrors.NewNotFound("post", map[string]any{"slug": slug})
	}
	if post.Published() {
		post.Views = s.views.Hit(ctx, post.Slug)
	}
	return post, nil
}

// CreatePost inserts a post authored by the given principal.
func (s *ContentService) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	post.Slug = orSlugify(post.Slug, post.Title)
	if post.Status == "" {
		post.Status = domain.PostStatusDraft
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.MapError(err)
	}
	return post, nil
}

// UpdatePost applies changes to an existing post.
func (s *ContentService) UpdatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	post.Slug = orSlugify(post.Slug, post.Title)
	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"post_id": post.ID})
		}
		return nil, apperrors.MapError(err)
	}
	return post, nil
}

// DeletePost removes a post.
func (s *ContentService) DeletePost(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("post", map[string]any{"post_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListProjects returns portfolio projects, newest first. Public.
func (s *ContentService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// CreateProject inserts a project.
func (s *ContentService) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	project.Slug = orSlugify(project.Slug, project.Name)
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// UpdateProject applies changes to an existing project.
func (s *ContentService) UpdateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	project.Slug = orSlugify(project.Slug, project.Name)
	if err := s.projects.Update(ctx, project); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": project.ID})
		}
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// DeleteProject removes a project.
func (s *ContentService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func orSlugify(slug, fallback string) string {
	if slug != "" {
		return slug
	}
	slug = strings.ToLower(strings.TrimSpace(fallback))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
