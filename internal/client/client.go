// Package client talks to the storefront REST API on behalf of the CLI.
package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/cart"
	"storefront/internal/models"
)

const defaultTimeout = 15 * time.Second

// APIError carries the status and message of a failed request.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type Client struct {
	baseURL string
	token   string
	timeout time.Duration
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: defaultTimeout,
	}
}

func (c *Client) SetToken(token string) { c.token = token }

// request describes one API call. out may be nil.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
	resp   *fiber.Response
}

func (c *Client) do(r request) error {
	var a *fiber.Agent
	u := c.baseURL + r.path
	switch r.method {
	case fiber.MethodPost:
		a = fiber.Post(u)
	case fiber.MethodPut:
		a = fiber.Put(u)
	case fiber.MethodDelete:
		a = fiber.Delete(u)
	default:
		a = fiber.Get(u)
	}
	a.Timeout(c.timeout)
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if len(r.query) > 0 {
		a.QueryString(r.query.Encode())
	}
	if r.body != nil {
		a.JSON(r.body)
	}
	if r.resp != nil {
		a.SetResponse(r.resp)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("invalid request %s %s: %w", r.method, r.path, err)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request %s %s failed: %w", r.method, r.path, errs[0])
	}
	if code >= fiber.StatusBadRequest {
		return decodeError(code, body)
	}
	if r.out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, r.out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", r.method, r.path, err)
	}
	return nil
}

func decodeError(code int, body []byte) error {
	var payload struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return &APIError{Status: code, Message: fiber.ErrInternalServerError.Message}
	}
	msg := payload.Message
	for field, detail := range payload.Errors {
		msg += "; " + field + ": " + detail
	}
	return &APIError{Status: code, Message: msg}
}

// Session is the user view returned by login, register and profile calls.
type Session struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}

func (c *Client) Register(name, email, password string) (*Session, error) {
	var s Session
	err := c.do(request{method: fiber.MethodPost, path: "/api/users/register",
		body: map[string]string{"name": name, "email": email, "password": password}, out: &s})
	return &s, err
}

func (c *Client) Login(email, password string) (*Session, error) {
	var s Session
	err := c.do(request{method: fiber.MethodPost, path: "/api/users/login",
		body: map[string]string{"email": email, "password": password}, out: &s})
	return &s, err
}

func (c *Client) Profile() (*Session, error) {
	var s Session
	err := c.do(request{method: fiber.MethodGet, path: "/api/users/profile", out: &s})
	return &s, err
}

// ProductQuery mirrors the list endpoint's query parameters. Zero values are omitted.
type ProductQuery struct {
	Keyword  string
	Category string
	Featured bool
	Sort     string
	Page     int
	Limit    int
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// ProductList is one page of products with the totals from the response headers.
type ProductList struct {
	Products []models.Product
	Page     int
	Pages    int
	Total    int64
}

func (c *Client) Products(q ProductQuery) (*ProductList, error) {
	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)

	list := &ProductList{}
	if err := c.do(request{method: fiber.MethodGet, path: "/api/products", query: q.values(), out: &list.Products, resp: resp}); err != nil {
		return nil, err
	}
	list.Total, _ = strconv.ParseInt(string(resp.Header.Peek("X-Total-Count")), 10, 64)
	list.Page, _ = strconv.Atoi(string(resp.Header.Peek("X-Page")))
	list.Pages, _ = strconv.Atoi(string(resp.Header.Peek("X-Total-Pages")))
	return list, nil
}

func (c *Client) Product(id string) (*models.Product, error) {
	var p models.Product
	if err := c.do(request{method: fiber.MethodGet, path: "/api/products/" + url.PathEscape(id), out: &p}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Related(id string) ([]models.Product, error) {
	var out []models.Product
	err := c.do(request{method: fiber.MethodGet, path: "/api/products/related/" + url.PathEscape(id), out: &out})
	return out, err
}

func (c *Client) CreateProduct(in map[string]any) (*models.Product, error) {
	var p models.Product
	if err := c.do(request{method: fiber.MethodPost, path: "/api/products", body: in, out: &p}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(id string) error {
	return c.do(request{method: fiber.MethodDelete, path: "/api/products/" + url.PathEscape(id)})
}

func (c *Client) AddReview(productID string, rating int, comment string) error {
	return c.do(request{method: fiber.MethodPost, path: "/api/products/" + url.PathEscape(productID) + "/reviews",
		body: map[string]any{"rating": rating, "comment": comment}})
}

// PlaceOrder submits the cart with the totals the cart computed.
func (c *Client) PlaceOrder(items *cart.Cart, addr models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	lines := make([]models.OrderItem, 0, items.Len())
	for _, it := range items.Items() {
		image := ""
		if len(it.Images) > 0 {
			image = it.Images[0]
		}
		lines = append(lines, models.OrderItem{
			Product:  it.ProductID,
			Name:     it.Title,
			Image:    image,
			Price:    it.Price,
			Quantity: it.Quantity,
			Size:     it.SelectedSize,
		})
	}
	summary := items.Summary()

	var o models.Order
	err := c.do(request{method: fiber.MethodPost, path: "/api/orders", out: &o, body: map[string]any{
		"orderItems":      lines,
		"shippingAddress": addr,
		"paymentMethod":   paymentMethod,
		"itemsPrice":      summary.ItemsPrice,
		"taxPrice":        summary.TaxPrice,
		"shippingPrice":   summary.ShippingPrice,
		"totalPrice":      summary.TotalPrice,
	}})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderDetail is an order with its owner populated.
type OrderDetail struct {
	models.Order
	User struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) Order(id string) (*OrderDetail, error) {
	var o OrderDetail
	if err := c.do(request{method: fiber.MethodGet, path: "/api/orders/" + url.PathEscape(id), out: &o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) MyOrders() ([]models.Order, error) {
	var out []models.Order
	err := c.do(request{method: fiber.MethodGet, path: "/api/orders/myorders", out: &out})
	return out, err
}

func (c *Client) AllOrders() ([]models.Order, error) {
	var out []models.Order
	err := c.do(request{method: fiber.MethodGet, path: "/api/orders", out: &out})
	return out, err
}

func (c *Client) PayOrder(id string, result models.PaymentResult) (*models.Order, error) {
	var o models.Order
	if err := c.do(request{method: fiber.MethodPut, path: "/api/orders/" + url.PathEscape(id) + "/pay", body: result, out: &o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) DeliverOrder(id, trackingNumber string) (*models.Order, error) {
	var o models.Order
	if err := c.do(request{method: fiber.MethodPut, path: "/api/orders/" + url.PathEscape(id) + "/deliver",
		body: map[string]string{"trackingNumber": trackingNumber}, out: &o}); err != nil {
		return nil, err
	}
	return &o, nil
}

// Stats are the admin dashboard totals.
type Stats struct {
	TotalProducts int64   `json:"totalProducts"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

func (c *Client) Stats() (*Stats, error) {
	var s Stats
	if err := c.do(request{method: fiber.MethodGet, path: "/api/admin/stats", out: &s}); err != nil {
		return nil, err
	}
	return &s, nil
}
