package property

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
	// Public catalogue
	router.Get("/", handler.listPublished)
	router.Get("/{slug}", handler.getBySlug)

	// Back-office only
	router.Route("/admin", func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequirePermission(sec.PermPropertiesWrite))

		adminRoute.Get("/", handler.listAll)
		adminRoute.Get("/{id}", handler.getByID)
		adminRoute.Post("/", handler.create)
		adminRoute.Put("/{id}", handler.update)
		adminRoute.Patch("/{id}/publish", handler.setPublished)
		adminRoute.Delete("/{id}", handler.delete)

		adminRoute.Post("/{id}/images", handler.addImage)
		adminRoute.Delete("/{id}/images/{imageID}", handler.removeImage)
	})
}

func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	properties, total, err := handler.service.ListPublished(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, properties, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	propertySlug := requestutil.ID(request, "slug")

	listing, err := handler.service.GetBySlug(request.Context(), propertySlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Unpublished listings are invisible outside the back-office. A 404
	// keeps drafts indistinguishable from absent slugs.
	if !listing.IsPublished {
		user := middleware.GetUser(request.Context())
		if user == nil || !user.Role.IsBackOffice() {
			respond.Error(writer, request, dberr.ErrNotFound)
			return
		}
	}

	respond.OK(writer, listing)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	properties, total, err := handler.service.ListAll(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, properties, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getByID(writer http.ResponseWriter, request *http.Request) {
	listing, err := handler.service.GetByID(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, listing)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Property
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Property
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

func (handler *Handler) addImage(writer http.ResponseWriter, request *http.Request) {
	var input Image
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}
	input.PropertyID = requestutil.ID(request, "id")

	if err := handler.service.AddImage(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) removeImage(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.RemoveImage(
		request.Context(),
		requestutil.ID(request, "id"),
		requestutil.ID(request, "imageID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
