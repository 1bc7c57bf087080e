package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/validation"
)

type session struct {
	Token        string `json:"accessToken"`
	ExpiresAt    int64  `json:"expiresAt"`
	RefreshToken string `json:"refreshToken"`
}

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=24"`
}

type logout struct {
	RefreshToken string `json:"refreshToken" validate:"required,uuid"`
}

type newUser struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type login struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Fingerprint string `json:"fingerprint" validate:"required"`
}

type refresh struct {
	Fingerprint  string `json:"fingerprint" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required,uuid"`
}

// AuthHTTPHandler is http handler for auth endpoint
type AuthHTTPHandler struct {
	authSvc service.AuthService
}

// NewAuthHTTPHandler builds new AuthHTTPHandler
func NewAuthHTTPHandler(authSvc service.AuthService) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		authSvc: authSvc,
	}
}

// Mount registers auth routes on g
func (h *AuthHTTPHandler) Mount(g *echo.Group) {
	authAPI := g.Group("/auth")
	authAPI.POST("/signup", h.Signup)
	authAPI.POST("/login", h.Login)
	authAPI.POST("/logout", h.Logout)
	authAPI.POST("/refresh", h.Refresh)
}

// Signup signups new user
// @Summary     Signup new account
// @Description Register new account based on provided credentials
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       signup body	    signup true "New user data"
// @Success     200    {object} newUser
// @Failure     400    {object} errorResponse
// @Failure     500    {object} errorResponse
// @Router      /api/auth/signup [post]
func (h *AuthHTTPHandler) Signup(c echo.Context) error {
	var su signup
	if err := c.Bind(&su); err != nil {
		return err
	}

	if err := c.Validate(&su); err != nil {
		return err
	}

	nu, err := h.authSvc.Signup(c.Request().Context(), su.Email, su.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &newUser{
		ID:    nu.ID,
		Email: nu.Email,
		Roles: nu.Roles,
	})
}

// Login logins user
// @Summary     Login user
// @Description Verifies provided credentials, sign auth and refresh token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       login  body	    login true "User credentials"
// @Success     200    {object} session
// @Failure     400    {object} errorResponse
// @Failure     401    {object} errorResponse
// @Failure     500    {object} errorResponse
// @Router      /api/auth/login [post]
func (h *AuthHTTPHandler) Login(c echo.Context) error {
	var lgn login
	if err := c.Bind(&lgn); err != nil {
		return err
	}

	if err := c.Validate(&lgn); err != nil {
		return err
	}

	jwt, rfrToken, err := h.authSvc.Login(c.Request().Context(), lgn.Email, lgn.Password, lgn.Fingerprint, time.Now().UTC())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &session{
		Token:        jwt.Signed,
		ExpiresAt:    jwt.ExpiresAt,
		RefreshToken: rfrToken.ID,
	})
}

// Logout logouts user
// @Summary     Logout user
// @Description Remove any user-related session data
// @Tags        auth
// @Accept      json
// @Param       logout body	    logout true "Refresh token id"
// @Success     200    "Successful status code"
// @Failure     400    {object} errorResponse
// @Failure     500    {object} errorResponse
// @Router      /api/auth/logout [post]
func (h *AuthHTTPHandler) Logout(c echo.Context) error {
	var lgt logout
	if err := c.Bind(&lgt); err != nil {
		return err
	}

	if err := c.Validate(&lgt); err != nil {
		return err
	}

	if err := h.authSvc.Logout(c.Request().Context(), lgt.RefreshToken); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Refresh refreshes user session
// @Summary     Refresh auth
// @Description Sign new auth and refresh token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       refresh body	 refresh true "Fingerprint and refresh token id"
// @Success     200     {object} session
// @Failure     400     {object} errorResponse
// @Failure     401     {object} errorResponse
// @Failure     500     {object} errorResponse
// @Router      /api/auth/refresh [post]
func (h *AuthHTTPHandler) Refresh(c echo.Context) error {
	var r refresh
	if err := c.Bind(&r); err != nil {
		return err
	}

	if err := c.Validate(&r); err != nil {
		return err
	}

	jwt, rfrToken, err := h.authSvc.Refresh(c.Request().Context(), r.RefreshToken, r.Fingerprint, time.Now().UTC())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &session{
		Token:        jwt.Signed,
		ExpiresAt:    jwt.ExpiresAt,
		RefreshToken: rfrToken.ID,
	})
}

// CustomerHTTPHandler is http handler for customers endpoint
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc}
}

// Mount registers customer routes on g, read and write guard corresponding routes
func (h *CustomerHTTPHandler) Mount(g *echo.Group, read, write echo.MiddlewareFunc) {
	customers := g.Group("/customers")
	customers.POST("", h.Post, write)
	customers.GET("", h.GetAll, read)
	customers.GET("/:id", h.Get, read)
	customers.PATCH("/:id", h.Patch, write)
	customers.DELETE("/:id", h.Delete, write)
}

// Post creates new customer
// @Summary     New customer
// @Description Creates new customer, referenced address must exist
// @Tags        customers
// @Security    ApiKeyAuth
// @Accept      json
// @Produce     json
// @Param       data body     model.CustomerCreateInput true "Data for new customer"
// @Success     201  {object} model.Customer
// @Failure     400  {object} errorResponse
// @Failure     404  {object} errorResponse
// @Failure     500  {object} errorResponse
// @Router      /api/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var in model.CustomerCreateInput
	if err := validation.BindStrict(c, &in); err != nil {
		return err
	}

	if err := c.Validate(&in); err != nil {
		return err
	}

	customer, err := h.customerSvc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customer)
}

// GetAll lists customers
// @Summary     List customers
// @Description Returns customers matching filter, sorted and paginated
// @Tags        customers
// @Security    ApiKeyAuth
// @Produce     json
// @Param       where[field]   query    string false "Equality filter by field"
// @Param       orderBy[field] query    string false "Sort direction by field" Enums(asc, desc)
// @Param       skip           query    int    false "Number of records to skip"
// @Param       take           query    int    false "Number of records to return"
// @Success     200            {array}  model.Customer
// @Failure     400            {object} errorResponse
// @Failure     500            {object} errorResponse
// @Router      /api/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	args, err := customerFindManyArgs(c)
	if err != nil {
		return err
	}

	customers, err := h.customerSvc.FindMany(c.Request().Context(), args)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(customers))
}

// Get gets customer
// @Summary     Get single customer by id
// @Description Returns single customer with provided id
// @Tags        customers
// @Security    ApiKeyAuth
// @Produce     json
// @Param       id  path     string true "Customer id"
// @Success     200 {object} model.Customer
// @Failure     404 {object} errorResponse
// @Failure     500 {object} errorResponse
// @Router      /api/customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	where := model.WhereUniqueInput{ID: c.Param("id")}

	customer, err := h.customerSvc.FindOne(c.Request().Context(), where)
	if err != nil {
		return err
	}

	if customer == nil {
		return appErrors.NewEntryNotFoundErr(where)
	}
	return c.JSON(http.StatusOK, customer)
}

// Patch updates customer
// @Summary     Update customer
// @Description Updates provided fields only, null clears field, null address detaches customer
// @Tags        customers
// @Security    ApiKeyAuth
// @Accept      json
// @Produce     json
// @Param       id   path     string                    true "Customer id"
// @Param       data body     model.CustomerUpdateInput true "Fields to change"
// @Success     200  {object} model.Customer
// @Failure     400  {object} errorResponse
// @Failure     404  {object} errorResponse
// @Failure     500  {object} errorResponse
// @Router      /api/customers/{id} [patch]
func (h *CustomerHTTPHandler) Patch(c echo.Context) error {
	where := model.WhereUniqueInput{ID: c.Param("id")}

	var upd model.CustomerUpdateInput
	if err := validation.BindStrict(c, &upd); err != nil {
		return err
	}

	if err := c.Validate(&upd); err != nil {
		return err
	}

	customer, err := h.customerSvc.Update(c.Request().Context(), where, upd)
	if err != nil {
		return err
	}

	if customer == nil {
		return appErrors.NewEntryNotFoundErr(where)
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete deletes customer
// @Summary     Delete customer by id
// @Description Deletes customer with provided id and returns it
// @Tags        customers
// @Security    ApiKeyAuth
// @Produce     json
// @Param       id  path     string true "Customer id"
// @Success     200 {object} model.Customer
// @Failure     404 {object} errorResponse
// @Failure     500 {object} errorResponse
// @Router      /api/customers/{id} [delete]
func (h *CustomerHTTPHandler) Delete(c echo.Context) error {
	where := model.WhereUniqueInput{ID: c.Param("id")}

	customer, err := h.customerSvc.Delete(c.Request().Context(), where)
	if err != nil {
		return err
	}

	if customer == nil {
		return appErrors.NewEntryNotFoundErr(where)
	}
	return c.JSON(http.StatusOK, customer)
}

// AddressHTTPHandler is http handler for addresses endpoint
type AddressHTTPHandler struct {
	addressSvc service.AddressService
}

// NewAddressHTTPHandler builds new AddressHTTPHandler
func NewAddressHTTPHandler(addressSvc service.AddressService) *AddressHTTPHandler {
	return &AddressHTTPHandler{addressSvc: addressSvc}
}

// Mount registers address routes on g, read and write guard corresponding routes
func (h *AddressHTTPHandler) Mount(g *echo.Group, read, write echo.MiddlewareFunc) {
	addresses := g.Group("/addresses")
	addresses.POST("", h.Post, write)
	addresses.GET("", h.GetAll, read)
	addresses.GET("/:id", h.Get, read)
	addresses.PATCH("/:id", h.Patch, write)
	addresses.DELETE("/:id", h.Delete, write)
	addresses.GET("/:id/customers", h.GetCustomers, read)
}

// Post creates new address
// @Summary     New address
// @Tags        addresses
// @Security    ApiKeyAuth
// @Accept      json
// @Produce     json
// @Param       data body     model.AddressCreateInput true "Data for new address"
// @Success     201  {object} model.Address
// @Failure     400  {object} errorResponse
// @Failure     500  {object} errorResponse
// @Router      /api/addresses [post]
func (h *AddressHTTPHandler) Post(c echo.Context) error {
	var in model.AddressCreateInput
	if err := validation.BindStrict(c, &in); err != nil {
		return err
	}

	if err := c.Validate(&in); err != nil {
		return err
	}

	address, err := h.addressSvc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, address)
}

// GetAll lists addresses
// @Summary     List addresses
// @Tags        addresses
// @Security    ApiKeyAuth
// @Produce     json
// @Param       where[field]   query    string false "Equality filter by field"
// @Param       orderBy[field] query    string false "Sort direction by field" Enums(asc, desc)
// @Param       skip           query    int    false "Number of records to skip"
// @Param       take           query    int    false "Number of records to return"
// @Success     200            {array}  model.Address
// @Failure     400            {object} errorResponse
// @Failure     500            {object} errorResponse
// @Router      /api/addresses [get]
func (h *AddressHTTPHandler) GetAll(c echo.Context) error {
	args, err := addressFindManyArgs(c)
	if err != nil {
		return err
	}

	addresses, err := h.addressSvc.FindMany(c.Request().Context(), args)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(addresses))
}

// Get gets address
// @Summary     Get single address by id
// @Tags        addresses
// @Security    ApiKeyAuth
// @Produce     json
// @Param       id  path     string true "Address id"
// @Success     200 {object} model.Address
// @Failure     404 {object} errorResponse
// @Failure     500 {object} errorResponse
// @Router      /api/addresses/{id} [get]
func (h *AddressHTTPHandler) Get(c echo.Context) error {
	where := model.WhereUniqueInput{ID: c.Param("id")}

	address, err := h.addressSvc.FindOne(c.Request().Context(), where)
	if err != nil {
		return err
	}

	if address == nil {
		return appErrors.NewEntryNotFoundErr(where)
	}
	return c.JSON(http.StatusOK, address)
}

// Patch updates address
// @Summary     Update address
// @Tags        addresses
// @Security    ApiKeyAuth
// @Accept      json
// @Produce     json
// @Param       id   path     string                   true "Address id"
// @Param       data body     model.AddressUpdateInput true "Fields to change"
// @Success     200  {object} model.Address
// @Failure     400  {object} errorResponse
// @Failure     404  {object} errorResponse
// @Failure     500  {object} errorResponse
// @Router      /api/addresses/{id} [patch]
func (h *AddressHTTPHandler) Patch(c echo.Context) error {
	where := model.WhereUniqueInput{ID: c.Param("id")}

	var upd model.AddressUpdateInput
	if err := validation.BindStrict(c, &upd); err != nil {
		return err
	}

	if err := c.Validate(&upd); err != nil {
		return err
	}

	address, err := h.addressSvc.Update(c.Request().Context(), where, upd)
	if err != nil {
		return err
	}

	if address == nil {
		return appErrors.NewEntryNotFoundErr(where)
	}
	return c.JSON(http.StatusOK, address)
}

// Delete deletes address
// @Summary     Delete address by id
// @Description Deletes address, attached customers lose their address
// @Tags        addresses
// @Security    ApiKeyAuth
// @Produce     json
// @Param       id  path     string true "Address id"
// @Success     200 {object} model.Address
// @Failure     404 {object} errorResponse
// @Failure     500 {object} errorResponse
// @Router      /api/addresses/{id} [delete]
func (h *AddressHTTPHandler) Delete(c echo.Context) error {
	where := model.WhereUniqueInput{ID: c.Param("id")}

	address, err := h.addressSvc.Delete(c.Request().Context(), where)
	if err != nil {
		return err
	}

	if address == nil {
		return appErrors.NewEntryNotFoundErr(where)
	}
	return c.JSON(http.StatusOK, address)
}

// GetCustomers lists customers living at address
// @Summary     List customers of address
// @Tags        addresses
// @Security    ApiKeyAuth
// @Produce     json
// @Param       id             path     string true  "Address id"
// @Param       where[field]   query    string false "Equality filter by customer field"
// @Param       orderBy[field] query    string false "Sort direction by customer field" Enums(asc, desc)
// @Param       skip           query    int    false "Number of records to skip"
// @Param       take           query    int    false "Number of records to return"
// @Success     200            {array}  model.Customer
// @Failure     400            {object} errorResponse
// @Failure     404            {object} errorResponse
// @Failure     500            {object} errorResponse
// @Router      /api/addresses/{id}/customers [get]
func (h *AddressHTTPHandler) GetCustomers(c echo.Context) error {
	args, err := customerFindManyArgs(c)
	if err != nil {
		return err
	}

	customers, err := h.addressSvc.FindCustomers(c.Request().Context(), model.WhereUniqueInput{ID: c.Param("id")}, args)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(customers))
}

// nonNil makes empty listing render as [] instead of null
func nonNil[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}
