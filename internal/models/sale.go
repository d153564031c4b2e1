package models

// SaleItem is one line of the sale-creation request. The upstream API resolves
// prices itself; only product and quantity cross the wire.
type SaleItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CreateSaleRequest struct {
	Items              []SaleItem `json:"items"`
	PaymentMethod      string     `json:"payment_method"`
	CustomerID         *int64     `json:"customer_id"`
	EmployeeID         int64      `json:"employee_id"`
	DiscountPercentage float64    `json:"discount_percentage"`
	CustomerRating     *float64   `json:"customer_rating"`
	Feedback           *string    `json:"feedback"`
}

type CreateSaleResponse struct {
	Message string  `json:"message"`
	SaleID  int64   `json:"sale_id"`
	Total   float64 `json:"total"`
}

type SaleRecord struct {
	SaleID             int64    `json:"sale_id"`
	SaleTime           string   `json:"sale_time"`
	TotalAmount        float64  `json:"total_amount"`
	PaymentMethod      string   `json:"payment_method"`
	Customer           *string  `json:"customer"`
	Employee           string   `json:"employee"`
	DiscountPercentage float64  `json:"discount_percentage"`
	CustomerRating     *float64 `json:"customer_rating"`
	Feedback           *string  `json:"feedback"`
}

type SaleListResponse struct {
	Sales      []SaleRecord `json:"sales"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

type SaleDetailItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type SaleDetailResponse struct {
	Items []SaleDetailItem `json:"items"`
}

// Gateway-facing checkout input. The discount range is enforced here, at the
// collecting boundary, so the pricing calculator can assume valid input.
type CheckoutRequest struct {
	PaymentMethod      string   `json:"payment_method"      validate:"required,oneof=CASH CARD UPI WALLET"`
	CustomerID         *int64   `json:"customer_id"         validate:"omitempty,gt=0"`
	DiscountPercentage float64  `json:"discount_percentage" validate:"gte=0,lte=100"`
	CustomerRating     *float64 `json:"customer_rating"     validate:"omitempty,gte=0,lte=5"`
	Feedback           string   `json:"feedback"            validate:"omitempty,max=500"`
}

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// Quantity 0 removes the line, so no "required" tag on it.
type SetQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"   validate:"min=0"`
}

// CartQuote is the priced view of a cart. Amounts are fixed to two fractional
// digits at this presentation edge; the calculator works in full precision.
type CartQuote struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	Total          string `json:"total"`
}
