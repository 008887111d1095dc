package leads

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modonevolutio/modon/internal/platform/ctxutil"
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

// RegisterRoutes wires the inquiry endpoints. submitGuards is the chain run
// in front of the public submission only (CSRF guard, per-client limiter);
// back-office routes skip it.
func (handler *Handler) RegisterRoutes(router chi.Router, submitGuards ...func(http.Handler) http.Handler) {
	router.With(submitGuards...).Post("/", handler.submit)

	router.Route("/admin", func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequirePermission(sec.PermLeadsRead))

		adminRoute.Get("/", handler.list)
		adminRoute.Get("/{id}", handler.getByID)
		adminRoute.With(middleware.RequirePermission(sec.PermLeadsManage)).
			Patch("/{id}/status", handler.updateStatus)
	})
}

type submitRequest struct {
	PropertyID *string `json:"property_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Message    string  `json:"message"`
	Locale     string  `json:"locale"`
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// The form sends its own locale; the context default covers clients
	// that omit it.
	locale := input.Locale
	if locale == "" {
		locale = ctxutil.GetLocale(request.Context())
	}

	lead, err := handler.service.Submit(request.Context(), SubmitInput{
		PropertyID: input.PropertyID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    input.Message,
		Locale:     locale,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, lead)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	status := request.URL.Query().Get("status")

	result, total, err := handler.service.List(request.Context(), status, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getByID(writer http.ResponseWriter, request *http.Request) {
	lead, err := handler.service.GetByID(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lead)
}

func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Status string `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.UpdateStatus(request.Context(), requestutil.ID(request, "id"), input.Status); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
