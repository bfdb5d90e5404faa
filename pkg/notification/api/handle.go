package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/tendant/simple-notify/pkg/errors"
	"github.com/tendant/simple-notify/pkg/notification"
	"github.com/tendant/simple-notify/pkg/scenario"
)

// Handle serves the notification HTTP API
type Handle struct {
	notifications *notification.NotificationService
	scenarios     *scenario.Services
}

func NewHandle(notifications *notification.NotificationService, scenarios *scenario.Services) Handle {
	return Handle{
		notifications: notifications,
		scenarios:     scenarios,
	}
}

// Handler returns a http.Handler for the notification API
func Handler(h Handle) http.Handler {
	r := chi.NewRouter()

	r.Post("/create", h.Create)
	r.Post("/create/"+notification.TopicCustomerSuccessfulCheckout, h.CreateCustomerCheckout)
	r.Post("/create/"+notification.TopicSalesSuccessfulCheckout, h.CreateSalesCheckout)
	r.Post("/create/"+notification.TopicCustomerCompletedCreditApp, h.CreateCustomerCreditApp)
	r.Post("/create/"+notification.TopicSalesCompletedCreditApp, h.CreateSalesCreditApp)
	r.Post("/create/"+notification.TopicCustomerSavedSearch, h.CreateCustomerSavedSearch)
	r.Post("/create/"+notification.TopicSalesSavedSearch, h.CreateSalesSavedSearch)
	r.Get("/{id}", h.Get)

	return r
}

// Create handles POST /create
func (h Handle) Create(w http.ResponseWriter, r *http.Request) {
	var params notification.CreateParams
	handleCreate[CreateNotificationRequest](w, r, &params, func(ctx context.Context) ([]int64, error) {
		return h.notifications.Create(ctx, params)
	})
}

func (h Handle) CreateCustomerCheckout(w http.ResponseWriter, r *http.Request) {
	var payload scenario.CustomerCheckoutPayload
	handleCreate[CustomerCheckoutRequest](w, r, &payload, func(ctx context.Context) ([]int64, error) {
		return h.scenarios.CustomerCheckout.Create(ctx, payload)
	})
}

func (h Handle) CreateSalesCheckout(w http.ResponseWriter, r *http.Request) {
	var payload scenario.SalesCheckoutPayload
	handleCreate[SalesCheckoutRequest](w, r, &payload, func(ctx context.Context) ([]int64, error) {
		return h.scenarios.SalesCheckout.Create(ctx, payload)
	})
}

func (h Handle) CreateCustomerCreditApp(w http.ResponseWriter, r *http.Request) {
	var payload scenario.CustomerCreditAppPayload
	handleCreate[CustomerCreditAppRequest](w, r, &payload, func(ctx context.Context) ([]int64, error) {
		return h.scenarios.CustomerCreditApp.Create(ctx, payload)
	})
}

func (h Handle) CreateSalesCreditApp(w http.ResponseWriter, r *http.Request) {
	var payload scenario.SalesCreditAppPayload
	handleCreate[SalesCreditAppRequest](w, r, &payload, func(ctx context.Context) ([]int64, error) {
		return h.scenarios.SalesCreditApp.Create(ctx, payload)
	})
}

func (h Handle) CreateCustomerSavedSearch(w http.ResponseWriter, r *http.Request) {
	var payload scenario.CustomerSavedSearchPayload
	handleCreate[CustomerSavedSearchRequest](w, r, &payload, func(ctx context.Context) ([]int64, error) {
		return h.scenarios.CustomerSavedSearch.Create(ctx, payload)
	})
}

func (h Handle) CreateSalesSavedSearch(w http.ResponseWriter, r *http.Request) {
	var payload scenario.SalesSavedSearchPayload
	handleCreate[SalesSavedSearchRequest](w, r, &payload, func(ctx context.Context) ([]int64, error) {
		return h.scenarios.SalesSavedSearch.Create(ctx, payload)
	})
}

// Get handles GET /{id}
func (h Handle) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, errors.InvalidInput("id", "must be a positive integer"))
		return
	}

	record, err := h.notifications.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var resp NotificationResponse
	if err := copier.Copy(&resp, &record); err != nil {
		renderError(w, r, errors.InternalWrap(err, "failed to map notification"))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// handleCreate decodes a Req body, copies it into dst and renders the ids
// returned by create.
func handleCreate[Req any](w http.ResponseWriter, r *http.Request, dst interface{}, create func(ctx context.Context) ([]int64, error)) {
	var req Req
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Failed to decode request body", "path", r.URL.Path, "error", err)
		renderError(w, r, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	if err := copier.Copy(dst, &req); err != nil {
		renderError(w, r, errors.InternalWrap(err, "failed to map request"))
		return
	}

	ids, err := create(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, CreateResponse{IDs: ids})
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if stderrors.Is(err, notification.ErrNotificationNotFound) {
		code = errors.ErrCodeNotFound
	}
	status := errors.MapErrorCodeToHTTPStatus(code)

	resp := ErrorResponse{Code: string(code)}
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", r.URL.Path, "status", status, "error", err)
		resp.Error = http.StatusText(status)
	} else {
		resp.Error = err.Error()
		resp.Details = errors.GetDetails(err)
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}
