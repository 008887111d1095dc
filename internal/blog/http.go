package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modonevolutio/modon/internal/platform/dberr"
	"github.com/modonevolutio/modon/internal/platform/middleware"
	requestutil "github.com/modonevolutio/modon/internal/platform/request"
	"github.com/modonevolutio/modon/internal/platform/respond"
	"github.com/modonevolutio/modon/internal/platform/sec"
	"github.com/modonevolutio/modon/internal/platform/validate"
	"github.com/modonevolutio/modon/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listPublished)
	router.Get("/{slug}", handler.getBySlug)

	// Back-office only
	router.Route("/admin", func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequirePermission(sec.PermBlogWrite))

		adminRoute.Get("/", handler.listAll)
		adminRoute.Get("/{id}", handler.getByID)
		adminRoute.Post("/", handler.create)
		adminRoute.Put("/{id}", handler.update)
		adminRoute.Patch("/{id}/publish", handler.setPublished)
		adminRoute.Delete("/{id}", handler.delete)
	})
}

func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, total, err := handler.service.ListPublished(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.GetBySlug(request.Context(), requestutil.ID(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !post.IsPublished {
		user := middleware.GetUser(request.Context())
		if user == nil || !user.Role.IsBackOffice() {
			respond.Error(writer, request, dberr.ErrNotFound)
			return
		}
	}

	respond.OK(writer, post)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, total, err := handler.service.ListAll(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getByID(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.GetByID(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Post
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.Create(request.Context(), &input, claims.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Post
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) setPublished(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		IsPublished bool `json:"is_published"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.SetPublished(request.Context(), requestutil.ID(request, "id"), input.IsPublished); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
