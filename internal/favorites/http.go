package favorites

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	// Every favorites endpoint acts on the caller's own list.
	router.Use(middleware.RequirePermission(sec.PermFavoritesManage))

	router.Get("/", handler.list)
	router.Post("/", handler.add)
	router.Delete("/{propertyID}", handler.remove)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	result, total, err := handler.service.ListByUser(request.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		PropertyID string `json:"property_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	favorite, err := handler.service.Add(request.Context(), userID, input.PropertyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, favorite)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, requestutil.ID(request, "propertyID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
