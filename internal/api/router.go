package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/api/handler"
	customMiddleware "github.com/Ashwinv007/WorkspaceOps-sub000/internal/api/middleware"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/config"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/realtime"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/repository/postgres"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/repository/redis"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/security"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	entityRepo := postgres.NewEntityRepository(db)
	documentTypeRepo := postgres.NewDocumentTypeRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	workItemRepo := postgres.NewWorkItemRepository(db)
	auditRepo := postgres.NewAuditLogRepository(db)

	// Redis-backed components
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	idempotencyStore := redis.NewIdempotencyStore(redisClient)
	eventBus := redis.NewEventBus(redisClient)
	hub := realtime.NewHub(eventBus)

	// Initialize services
	auditService := service.NewAuditService(auditRepo, eventBus)
	authService := service.NewAuthService(userRepo, workspaceRepo, membershipRepo, jwtManager)
	workspaceService := service.NewWorkspaceService(workspaceRepo, membershipRepo, userRepo, auditService)
	entityService := service.NewEntityService(entityRepo, auditService)
	documentService := service.NewDocumentService(documentRepo, documentTypeRepo, entityRepo, auditService)
	workItemService := service.NewWorkItemService(workItemRepo, entityRepo, documentRepo, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	entityHandler := handler.NewEntityHandler(entityService)
	documentTypeHandler := handler.NewDocumentTypeHandler(documentService)
	documentHandler := handler.NewDocumentHandler(documentService)
	workItemHandler := handler.NewWorkItemHandler(workItemService)
	auditHandler := handler.NewAuditHandler(auditService)
	eventsHandler := handler.NewEventsHandler(hub)

	// Middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)
	roleMiddleware := customMiddleware.NewRoleMiddleware(membershipRepo)
	idempotencyMiddleware := customMiddleware.NewIdempotencyMiddleware(idempotencyStore)

	anyMember := roleMiddleware.Require(domain.RoleOwner, domain.RoleAdmin, domain.RoleMember, domain.RoleViewer)
	contributors := roleMiddleware.Require(domain.RoleOwner, domain.RoleAdmin, domain.RoleMember)
	admins := roleMiddleware.Require(domain.RoleOwner, domain.RoleAdmin)
	owners := roleMiddleware.Require(domain.RoleOwner)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/me", authHandler.Me)

			// Workspace routes
			r.Route("/workspaces", func(r chi.Router) {
				r.Get("/", workspaceHandler.List)
				r.Post("/", workspaceHandler.Create)

				r.Route("/{workspaceID}", func(r chi.Router) {
					r.Use(customMiddleware.WorkspaceContext)

					r.With(anyMember).Get("/", workspaceHandler.Get)
					r.With(admins).Patch("/", workspaceHandler.Update)
					r.With(owners).Delete("/", workspaceHandler.Delete)

					// Membership routes
					r.Route("/members", func(r chi.Router) {
						r.With(anyMember).Get("/", workspaceHandler.ListMembers)
						r.With(admins, idempotencyMiddleware.Handle).Post("/", workspaceHandler.InviteMember)
						r.With(admins).Patch("/{userID}", workspaceHandler.UpdateMemberRole)
						r.With(admins).Delete("/{userID}", workspaceHandler.RemoveMember)
					})

					// Entity routes
					r.Route("/entities", func(r chi.Router) {
						r.With(anyMember).Get("/", entityHandler.List)
						r.With(contributors).Post("/", entityHandler.Create)

						r.Route("/{entityID}", func(r chi.Router) {
							r.With(anyMember).Get("/", entityHandler.Get)
							r.With(contributors).Patch("/", entityHandler.Update)
							r.With(admins).Delete("/", entityHandler.Delete)
						})
					})

					// Document type routes
					r.Route("/document-types", func(r chi.Router) {
						r.With(anyMember).Get("/", documentTypeHandler.List)
						r.With(admins).Post("/", documentTypeHandler.Create)

						r.Route("/{typeID}", func(r chi.Router) {
							r.With(anyMember).Get("/", documentTypeHandler.Get)
							r.With(admins).Patch("/", documentTypeHandler.Update)
							r.With(admins).Delete("/", documentTypeHandler.Delete)
						})
					})

					// Document routes
					r.Route("/documents", func(r chi.Router) {
						r.With(anyMember).Get("/", documentHandler.List)
						r.With(anyMember).Get("/expiring", documentHandler.Expiring)
						r.With(contributors).Post("/", documentHandler.Register)

						r.Route("/{documentID}", func(r chi.Router) {
							r.With(anyMember).Get("/", documentHandler.Get)
							r.With(admins).Delete("/", documentHandler.Delete)
						})
					})

					// Work item routes
					r.Route("/work-items", func(r chi.Router) {
						r.With(anyMember).Get("/", workItemHandler.List)
						r.With(contributors, idempotencyMiddleware.Handle).Post("/", workItemHandler.Create)

						r.Route("/{itemID}", func(r chi.Router) {
							r.With(anyMember).Get("/", workItemHandler.Get)
							r.With(contributors).Patch("/", workItemHandler.Update)
							r.With(contributors).Post("/status", workItemHandler.Transition)
							r.With(admins).Delete("/", workItemHandler.Delete)

							r.Route("/documents", func(r chi.Router) {
								r.With(anyMember).Get("/", workItemHandler.ListDocuments)
								r.With(contributors, idempotencyMiddleware.Handle).Post("/", workItemHandler.LinkDocument)
								r.With(contributors).Delete("/{documentID}", workItemHandler.UnlinkDocument)
							})
						})
					})

					// Audit log routes
					r.With(admins).Get("/audit-logs", auditHandler.List)

					// Real-time event stream
					r.With(anyMember).Get("/events", eventsHandler.Subscribe)
				})
			})
		})
	})

	return r
}
