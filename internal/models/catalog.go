package models

// Wire shapes of the external SuperMarket inventory API. Field names and JSON
// keys follow the upstream contract exactly; the gateway never invents its own.

type Category struct {
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Product struct {
	ProductID         int64   `json:"product_id"`
	Name              string  `json:"name"`
	Barcode           string  `json:"barcode,omitempty"`
	Price             float64 `json:"price"`
	StockQuantity     int     `json:"stock_quantity"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	CategoryID        int64   `json:"category_id"`
	Category          string  `json:"category,omitempty"`
	SupplierID        int64   `json:"supplier_id"`
	Supplier          string  `json:"supplier,omitempty"`
}

// Supplier carries the one nontrivial relationship of the domain: a supplier
// belongs to at most one category. CategoryID 0 means unconstrained.
type Supplier struct {
	SupplierID       int64   `json:"supplier_id"`
	Name             string  `json:"name"`
	Phone            string  `json:"phone,omitempty"`
	Email            string  `json:"email,omitempty"`
	Address          string  `json:"address,omitempty"`
	ReliabilityScore float64 `json:"reliability_score,omitempty"`
	LastDeliveryDate string  `json:"last_delivery_date,omitempty"`
	CategoryID       int64   `json:"category_id,omitempty"`
	CategoryName     string  `json:"category_name,omitempty"`
}

type Customer struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Gender     string `json:"gender,omitempty"`
}

type ProductListResponse struct {
	Products   []Product   `json:"products"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type CategoryListResponse struct {
	Categories []Category  `json:"categories"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type SupplierListResponse struct {
	Suppliers  []Supplier  `json:"suppliers"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type CustomerListResponse struct {
	Customers  []Customer  `json:"customers"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type StockUpdateRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"   validate:"min=0"`
}

type DashboardStats struct {
	TotalProducts int     `json:"total_products"`
	TotalSales    int     `json:"total_sales"`
	TotalRevenue  float64 `json:"total_revenue"`
	LowStockCount int     `json:"low_stock_count"`
	TodaySales    float64 `json:"today_sales"`
}
