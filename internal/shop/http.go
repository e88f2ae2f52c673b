// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rayaw/storefront/internal/catalog"
	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/internal/platform/middleware"
	requestutil "github.com/rayaw/storefront/internal/platform/request"
	"github.com/rayaw/storefront/internal/platform/respond"
	"github.com/rayaw/storefront/internal/platform/validate"
	"github.com/rayaw/storefront/pkg/pagination"
)

// MsgSelectSize is returned when an add-to-cart request carries no size.
const MsgSelectSize = "Please select a size before adding to cart!"

// # Handler Implementation

// Handler exposes the Store to UI components over local JSON/HTTP.
//
// Operations that the Store reduces to a boolean answer 200 with an
// [actionResult]; the notification carries the user-facing message.
type Handler struct {
	store *Store
}

// NewHandler constructs a [Handler] around store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Routes returns a [chi.Router] with the facade endpoints.
//
// # Routing Strategy
//
//   - Public: state, catalog, cart, checkout, sign-in and sign-up.
//   - Session required: profile edits and the order history.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## State
	router.Get("/state", handler.getState)
	router.Get("/notification", handler.getNotification)
	router.Delete("/notification", handler.dismissNotification)

	// ## Session
	router.Get("/session", handler.getSession)
	router.Post("/session/login", handler.login)
	router.Post("/session/register", handler.register)
	router.Post("/session/logout", handler.logout)

	// ## Cart
	router.Get("/cart", handler.getCart)
	router.Post("/cart/items", handler.addCartItem)
	router.Patch("/cart/items/{id}/{size}", handler.updateCartItem)
	router.Delete("/cart/items/{id}/{size}", handler.removeCartItem)
	router.Delete("/cart", handler.clearCart)
	router.Post("/checkout", handler.checkout)

	// ## Catalog
	router.Get("/catalog/products", handler.listProducts)
	router.Post("/catalog/products/next", handler.fetchNextPage)
	router.Get("/catalog/products/{id}", handler.getProduct)

	// ## Account (Session Protected)
	router.Group(func(account chi.Router) {
		account.Use(middleware.RequireSession(handler.store))

		account.Patch("/session/profile", handler.updateProfile)
		account.Get("/orders", handler.listOrders)
	})

	return router
}

// # Response Payloads

// actionResult reports the outcome of a boolean Store operation.
type actionResult struct {
	OK           bool          `json:"ok"`
	Session      *Session      `json:"session,omitempty"`
	Notification *Notification `json:"notification"`
}

// cartView is the cart plus its aggregates.
type cartView struct {
	Lines          []CartLine      `json:"lines"`
	Count          int             `json:"count"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formatted_total"`
}

// stateView is the full UI state.
type stateView struct {
	Snapshot
	Catalog CatalogState `json:"catalog"`
}

// productsView is one catalog listing.
type productsView struct {
	Products []productView `json:"products"`
	State    CatalogState  `json:"state"`
}

// productView adds the UI link path to a product.
type productView struct {
	catalog.Product
	Path string `json:"path"`
}

func (handler *Handler) result(ok bool) actionResult {
	result := actionResult{OK: ok, Session: handler.store.Session()}
	if notice, found := handler.store.Notification(); found {
		result.Notification = &notice
	}
	return result
}

func (handler *Handler) cart() cartView {
	snapshot := handler.store.Snapshot()
	return cartView{
		Lines:          snapshot.Cart,
		Count:          snapshot.CartCount,
		Total:          snapshot.TotalPrice,
		FormattedTotal: snapshot.FormattedTotal,
	}
}

func toProductViews(products []catalog.Product) []productView {
	views := make([]productView, len(products))
	for i, product := range products {
		views[i] = productView{Product: product, Path: product.Path()}
	}
	return views
}

// # State Endpoints

/*
GET /api/v1/state.

Description: Returns session, cart, aggregates, notification and catalog
flags in one consistent read.

Response:
  - 200: stateView
*/
func (handler *Handler) getState(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, stateView{
		Snapshot: handler.store.Snapshot(),
		Catalog:  handler.store.CatalogState(),
	})
}

/*
GET /api/v1/notification.

Response:
  - 200: Notification, or null when none is pending
*/
func (handler *Handler) getNotification(writer http.ResponseWriter, request *http.Request) {
	notice, found := handler.store.Notification()
	if !found {
		respond.OK(writer, nil)
		return
	}
	respond.OK(writer, notice)
}

// DELETE /api/v1/notification.
func (handler *Handler) dismissNotification(writer http.ResponseWriter, request *http.Request) {
	handler.store.DismissNotification()
	respond.NoContent(writer)
}

// # Session Endpoints

// GET /api/v1/session.
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.store.Session())
}

// loginRequest is the sign-in form.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/session/login.

Request:
  - email: string
  - password: string

Response:
  - 200: actionResult: ok=false carries the failure notification
  - 400: VALIDATION_ERROR: missing email or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body loginRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, body.Email).Required("password", body.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok := handler.store.Login(request.Context(), body.Email, body.Password)
	respond.OK(writer, handler.result(ok))
}

/*
POST /api/v1/session/register.

Request:
  - first_name, last_name, email, phone_number, password: string

Response:
  - 200: actionResult
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var body RegisterInput
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("first_name", body.FirstName).MaxLen("first_name", body.FirstName, 100).
		MaxLen("last_name", body.LastName, 100).
		Email(FieldEmail, strings.TrimSpace(body.Email)).
		Phone("phone_number", body.PhoneNumber).
		Required("password", body.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok := handler.store.Register(request.Context(), body)
	respond.OK(writer, handler.result(ok))
}

// POST /api/v1/session/logout.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.store.Logout()
	respond.OK(writer, handler.result(true))
}

/*
PATCH /api/v1/session/profile.

Request:
  - first_name, last_name, email, phone: optional strings

Response:
  - 200: actionResult with the merged session
  - 401: UNAUTHORIZED: no session
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	var body ProfileUpdate
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if body.Email != nil {
		validator.Email(FieldEmail, strings.TrimSpace(*body.Email))
	}
	if body.Phone != nil {
		validator.Phone(FieldPhone, *body.Phone)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok := handler.store.UpdateProfile(body)
	if !ok {
		respond.Error(writer, request, apperr.Unauthorized("Sign in to continue"))
		return
	}
	respond.OK(writer, handler.result(ok))
}

// # Cart Endpoints

// GET /api/v1/cart.
func (handler *Handler) getCart(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.cart())
}

// addCartItemRequest selects a product and a size.
type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
}

/*
POST /api/v1/cart/items.

Description: Resolves the product (loaded catalog first, then the Remote
API) and adds one unit in the chosen size.

Request:
  - product_id: string
  - size: string (required)

Response:
  - 200: cartView
  - 400: VALIDATION_ERROR: no size selected
  - 404: NOT_FOUND: unknown product
  - 502: UPSTREAM_ERROR: the product lookup failed upstream
*/
func (handler *Handler) addCartItem(writer http.ResponseWriter, request *http.Request) {
	var body addCartItemRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("product_id", body.ProductID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	size := strings.TrimSpace(body.Size)
	if size == "" {
		respond.Error(writer, request, validate.RequiredError("size", MsgSelectSize))
		return
	}

	product, err := handler.store.Product(request.Context(), body.ProductID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.store.AddToCart(product, size)
	respond.OK(writer, handler.cart())
}

// updateCartItemRequest carries a signed quantity change.
type updateCartItemRequest struct {
	Delta int `json:"delta"`
}

/*
PATCH /api/v1/cart/items/{id}/{size}.

Request:
  - delta: int (negative to decrease; the quantity never drops below 1)

Response:
  - 200: cartView
*/
func (handler *Handler) updateCartItem(writer http.ResponseWriter, request *http.Request) {
	var body updateCartItemRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.store.UpdateQuantity(requestutil.Param(request, "id"), requestutil.Param(request, "size"), body.Delta)
	respond.OK(writer, handler.cart())
}

// DELETE /api/v1/cart/items/{id}/{size}.
func (handler *Handler) removeCartItem(writer http.ResponseWriter, request *http.Request) {
	handler.store.RemoveFromCart(requestutil.Param(request, "id"), requestutil.Param(request, "size"))
	respond.OK(writer, handler.cart())
}

// DELETE /api/v1/cart.
func (handler *Handler) clearCart(writer http.ResponseWriter, request *http.Request) {
	handler.store.ClearCart()
	respond.OK(writer, handler.cart())
}

/*
POST /api/v1/checkout.

Request:
  - name, email, phone: string
  - payment_method: string (momo, card)

Response:
  - 201: Receipt
  - 400: VALIDATION_ERROR: empty cart or invalid form
*/
func (handler *Handler) checkout(writer http.ResponseWriter, request *http.Request) {
	var body CheckoutInput
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	receipt, err := handler.store.Checkout(body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, receipt)
}

// GET /api/v1/orders.
func (handler *Handler) listOrders(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.store.Orders())
}

// # Catalog Endpoints

/*
GET /api/v1/catalog/products.

Description: Loads the first page when the catalog is empty or stale, then
returns every loaded product.

Response:
  - 200: productsView, with meta.next_cursor when more pages exist
*/
func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	handler.store.EnsureCatalog(request.Context())
	handler.writeProducts(writer)
}

/*
POST /api/v1/catalog/products/next.

Response:
  - 200: productsView after the fetch, successful or not
*/
func (handler *Handler) fetchNextPage(writer http.ResponseWriter, request *http.Request) {
	handler.store.FetchNextPage(request.Context())
	handler.writeProducts(writer)
}

func (handler *Handler) writeProducts(writer http.ResponseWriter) {
	state := handler.store.CatalogState()
	respond.Paginated(writer,
		productsView{Products: toProductViews(handler.store.Products()), State: state},
		pagination.Meta{NextCursor: handler.store.nextCursor()},
	)
}

/*
GET /api/v1/catalog/products/{id}.

Response:
  - 200: productView
  - 404: NOT_FOUND
  - 502: UPSTREAM_ERROR: the Remote API failed
*/
func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	product, err := handler.store.Product(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, productView{Product: product, Path: product.Path()})
}
