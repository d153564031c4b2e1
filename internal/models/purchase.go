package models

// PurchaseOrderItem is one supplier-order line on the wire. Unit price is the
// negotiated purchase price entered by the user, not the catalog sale price.
type PurchaseOrderItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID int64               `json:"supplier_id"`
	Items      []PurchaseOrderItem `json:"items"`
}

type CreatePurchaseOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

type PurchaseOrderRecord struct {
	OrderID      int64  `json:"order_id"`
	OrderDate    string `json:"order_date"`
	Status       string `json:"status"`
	SupplierName string `json:"supplier_name"`
}

type PurchaseOrderListResponse struct {
	PurchaseOrders []PurchaseOrderRecord `json:"purchase_orders"`
	Pagination     *Pagination           `json:"pagination,omitempty"`
}

type PurchaseOrderDetailItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type PurchaseOrderDetailResponse struct {
	Items []PurchaseOrderDetailItem `json:"items"`
}

// Draft mutation requests for the line builder.

type ChangeSupplierRequest struct {
	SupplierID int64 `json:"supplier_id" validate:"required,gt=0"`
}

// UpdateDraftLineRequest sets a single field of one line; cross-field checks
// are deferred to submission.
type UpdateDraftLineRequest struct {
	Field string `json:"field" validate:"required,oneof=product_id quantity unit_price"`
	Value string `json:"value" validate:"required"`
}
