package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Taxonomy   *handlers.TaxonomyHandler
	Posts      *handlers.PostsHandler
	Projects   *handlers.ProjectsHandler
	Files      *handlers.FilesHandler
	Middleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads are public, writes sit behind the
// authenticate-then-require-admin gate. That asymmetry is fixed policy.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Get("/verify", cfg.Middleware.Authenticate, auth.RequireAuthenticated(), cfg.Auth.Verify)

	admin := []fiber.Handler{cfg.Middleware.Authenticate, auth.RequireRole(domain.RoleAdmin)}

	app.Get("/categories", cfg.Taxonomy.ListCategories)
	app.Post("/categories", append(admin, cfg.Taxonomy.CreateCategory)...)

	app.Get("/tags", cfg.Taxonomy.ListTags)
	app.Post("/tags", append(admin, cfg.Taxonomy.CreateTag)...)

	app.Get("/posts", cfg.Posts.List)
	app.Get("/posts/:slug", cfg.Posts.Get)
	app.Get("/admin/posts", append(admin, cfg.Posts.ListAll)...)
	app.Post("/posts", append(admin, cfg.Posts.Create)...)
	app.Put("/posts/:id", append(admin, cfg.Posts.Update)...)
	app.Delete("/posts/:id", append(admin, cfg.Posts.Delete)...)

	app.Get("/projects", cfg.Projects.List)
	app.Post("/projects", append(admin, cfg.Projects.Create)...)
	app.Put("/projects/:id", append(admin, cfg.Projects.Update)...)
	app.Delete("/projects/:id", append(admin, cfg.Projects.Delete)...)

	files := app.Group("/files", admin...)
	files.Get("/", cfg.Files.List)
	files.Get("/:id", cfg.Files.Get)
	files.Post("/", cfg.Files.Upload)
	files.Delete("/:id", cfg.Files.Delete)
}
