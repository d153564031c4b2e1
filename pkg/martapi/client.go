package martapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client defines every call the gateway makes against the external SuperMarket
// inventory API. The API owns all persistence and stock arithmetic; this
// client only speaks its documented request and response shapes.
type Client interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.UpstreamLoginResponse, error)

	ListProducts(ctx context.Context, page, pageSize int) (*models.ProductListResponse, error)
	ListCategories(ctx context.Context, page, pageSize int) (*models.CategoryListResponse, error)
	ListSuppliers(ctx context.Context, page, pageSize int) (*models.SupplierListResponse, error)
	ListCustomers(ctx context.Context, page, pageSize int) (*models.CustomerListResponse, error)
	UpdateStock(ctx context.Context, productID int64, req *models.StockUpdateRequest) (*models.MessageResponse, error)

	ListSales(ctx context.Context, page, pageSize int) (*models.SaleListResponse, error)
	SaleDetails(ctx context.Context, saleID int64) (*models.SaleDetailResponse, error)
	CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.CreateSaleResponse, error)

	ListPurchaseOrders(ctx context.Context, page, pageSize int) (*models.PurchaseOrderListResponse, error)
	PurchaseOrderDetails(ctx context.Context, orderID int64) (*models.PurchaseOrderDetailResponse, error)
	CreatePurchaseOrder(ctx context.Context, req *models.CreatePurchaseOrderRequest) (*models.CreatePurchaseOrderResponse, error)
	ReceivePurchaseOrder(ctx context.Context, orderID int64) (*models.MessageResponse, error)

	ListNotifications(ctx context.Context, page, pageSize int) (*models.NotificationListResponse, error)
	UpdateNotification(ctx context.Context, notificationID int64, req *models.NotificationUpdateRequest) (*models.MessageResponse, error)

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type martClient struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the inventory API at baseURL. Outbound calls
// carry the shared timeout and are traced through the otelhttp transport.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &martClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// error bodies carry a human-readable detail field when the API produced them
type errorBody struct {
	Detail string `json:"detail"`
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	return q
}

func (c *martClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)

	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return errors.InternalError("Failed to encode request body").WithError(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.InternalError("Failed to build upstream request").WithError(err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.UpstreamUnavailableError("Inventory service is unreachable").WithError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.asAppError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.UpstreamRejectedError("Inventory service returned an unreadable response").WithError(err)
		}
	}

	return nil
}

// asAppError maps an upstream error response onto the gateway taxonomy,
// surfacing the server's detail message and degrading to a generic one when
// the body carries none.
func (c *martClient) asAppError(resp *http.Response) error {

	message := "The inventory service rejected the request"

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		message = body.Detail
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.UnauthorizedError(message)
	case http.StatusForbidden:
		return errors.ForbiddenError(message)
	case http.StatusNotFound:
		return errors.NotFoundError(message)
	default:
		return errors.UpstreamRejectedError(message).WithDetail(fmt.Sprintf("upstream status %d", resp.StatusCode))
	}
}

func (c *martClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil, nil)
}

func (c *martClient) Login(ctx context.Context, req *models.LoginRequest) (*models.UpstreamLoginResponse, error) {
	var out models.UpstreamLoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) ListProducts(ctx context.Context, page, pageSize int) (*models.ProductListResponse, error) {
	var out models.ProductListResponse
	if err := c.do(ctx, http.MethodGet, "/products", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) ListCategories(ctx context.Context, page, pageSize int) (*models.CategoryListResponse, error) {
	var out models.CategoryListResponse
	if err := c.do(ctx, http.MethodGet, "/categories", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) ListSuppliers(ctx context.Context, page, pageSize int) (*models.SupplierListResponse, error) {
	var out models.SupplierListResponse
	if err := c.do(ctx, http.MethodGet, "/suppliers", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) ListCustomers(ctx context.Context, page, pageSize int) (*models.CustomerListResponse, error) {
	var out models.CustomerListResponse
	if err := c.do(ctx, http.MethodGet, "/customers", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) UpdateStock(ctx context.Context, productID int64, req *models.StockUpdateRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	path := fmt.Sprintf("/products/%d/stock", productID)

	if err := c.do(ctx, http.MethodPut, path, nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) ListSales(ctx context.Context, page, pageSize int) (*models.SaleListResponse, error) {
	var out models.SaleListResponse
	if err := c.do(ctx, http.MethodGet, "/sales", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) SaleDetails(ctx context.Context, saleID int64) (*models.SaleDetailResponse, error) {
	var out models.SaleDetailResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sales/%d", saleID), nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.CreateSaleResponse, error) {
	var out models.CreateSaleResponse
	if err := c.do(ctx, http.MethodPost, "/sales", nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) ListPurchaseOrders(ctx context.Context, page, pageSize int) (*models.PurchaseOrderListResponse, error) {
	var out models.PurchaseOrderListResponse
	if err := c.do(ctx, http.MethodGet, "/purchase-orders", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) PurchaseOrderDetails(ctx context.Context, orderID int64) (*models.PurchaseOrderDetailResponse, error) {
	var out models.PurchaseOrderDetailResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/purchase-orders/%d", orderID), nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) CreatePurchaseOrder(ctx context.Context, req *models.CreatePurchaseOrderRequest) (*models.CreatePurchaseOrderResponse, error) {
	var out models.CreatePurchaseOrderResponse
	if err := c.do(ctx, http.MethodPost, "/purchase-orders", nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) ReceivePurchaseOrder(ctx context.Context, orderID int64) (*models.MessageResponse, error) {
	var out models.MessageResponse
	path := fmt.Sprintf("/purchase-orders/%d/receive", orderID)

	if err := c.do(ctx, http.MethodPut, path, nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) ListNotifications(ctx context.Context, page, pageSize int) (*models.NotificationListResponse, error) {
	var out models.NotificationListResponse
	if err := c.do(ctx, http.MethodGet, "/notifications", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) UpdateNotification(ctx context.Context, notificationID int64, req *models.NotificationUpdateRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	path := fmt.Sprintf("/notifications/%d", notificationID)

	if err := c.do(ctx, http.MethodPut, path, nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *martClient) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
