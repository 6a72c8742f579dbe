package dto

// CategoryCreateRequest payload for new categories.
type CategoryCreateRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

// TagCreateRequest payload for new tags.
type TagCreateRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

// PostCreateRequest payload for new posts.
type PostCreateRequest struct {
	Title      string  `json:"title" validate:"required"`
	Slug       string  `json:"slug"`
	Summary    string  `json:"summary"`
	Body       string  `json:"body" validate:"required"`
	CategoryID *string `json:"category_id"`
	Status     string  `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

// PostUpdateRequest payload for post updates.
type PostUpdateRequest struct {
	Title      string  `json:"title" validate:"required"`
	Slug       string  `json:"slug"`
	Summary    string  `json:"summary"`
	Body       string  `json:"body" validate:"required"`
	CategoryID *string `json:"category_id"`
	Status     string  `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

// ProjectRequest payload for creating or updating projects.
type ProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	RepoURL     string `json:"repo_url" validate:"omitempty,url"`
	LiveURL     string `json:"live_url" validate:"omitempty,url"`
}
