package closure

import (
	"github.com/go-chi/chi/v5"

	"github.com/pavel195/rjd-project-web-portal/pkg/crossing"
)

// NewRouter creates a chi router with the closure API routes. Action
// endpoints map one-to-one onto the lifecycle transitions; their errors
// surface as 403 (forbidden), 409 (invalid state), 400 (validation), or
// 404 (not found).
func NewRouter(svc *Service, crossings *crossing.Store) chi.Router {
	r := chi.NewRouter()

	r.Get("/", listClosuresHandler(svc, crossings))
	r.Post("/", createClosureHandler(svc, crossings))

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", getClosureHandler(svc, crossings))
		r.Put("/", updateClosureHandler(svc, crossings))
		r.Delete("/", deleteClosureHandler(svc))

		r.Post("/sign_closure/", signClosureHandler(svc, crossings))
		r.Post("/send_for_approval/", submitClosureHandler(svc, crossings))
		r.Post("/approve_administration/", approveAdministrationHandler(svc, crossings))
		r.Post("/approve_gibdd/", approveGibddHandler(svc, crossings))
		r.Post("/reject/", rejectClosureHandler(svc, crossings))

		r.Get("/comments/", listCommentsHandler(svc))
		r.Post("/comments/", addCommentHandler(svc))

		r.Get("/documents/", listDocumentsHandler(svc))
		r.Post("/documents/", addDocumentHandler(svc))
		r.Delete("/documents/{docId}/", deleteDocumentHandler(svc))
	})

	return r
}

// NewActivityRouter creates a chi router for the recent-activity feed.
func NewActivityRouter(svc *Service) chi.Router {
	r := chi.NewRouter()
	r.Get("/", activitiesHandler(svc))
	return r
}
