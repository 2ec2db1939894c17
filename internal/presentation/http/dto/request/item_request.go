package request

// CreateItemRequest represents an item creation request
type CreateItemRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Code          string  `json:"code" binding:"required,max=100"`
	Unit          string  `json:"unit" binding:"required,max=50"`
	UnitPrice     float64 `json:"unit_price" binding:"min=0"`
	QuantityAlert float64 `json:"quantity_alert" binding:"min=0"`
	Notes         *string `json:"notes"`
}

// UpdateItemRequest represents an item update request
type UpdateItemRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Unit          *string  `json:"unit" binding:"omitempty,max=50"`
	UnitPrice     *float64 `json:"unit_price" binding:"omitempty,min=0"`
	QuantityAlert *float64 `json:"quantity_alert" binding:"omitempty,min=0"`
	Notes         *string  `json:"notes"`
}

// SetStockRequest represents an administrative stock-set request
type SetStockRequest struct {
	Quantity float64 `json:"quantity" binding:"min=0"`
}

// ItemFilterRequest represents item filter parameters
type ItemFilterRequest struct {
	Search    string `form:"search"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Limit     int    `form:"limit"` // For cursor-based pagination
}
