package handler

import "time"

// Request and response types owned by the transport layer. These are
// intentionally separate from ports/domain types so the JSON contract is not
// coupled to internal service changes.

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// --- Sales ---

type recordSaleRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"  validate:"required,gt=0"`
}

type saleView struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"productId"`
	Quantity    int       `json:"quantity"`
	Timestamp   time.Time `json:"timestamp"`
	ProductName string    `json:"productName"`
	UnitPrice   float64   `json:"unitPrice"`
}

type recordSaleResponse struct {
	Sale           saleView `json:"sale"`
	LowStock       bool     `json:"lowStock"`
	RemainingStock int      `json:"remainingStock"`
}

// --- Inventory ---

type productRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Quantity *int     `json:"quantity" validate:"required,gte=0"`
	Price    *float64 `json:"price"    validate:"required,gte=0"`
}

type productResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	LowStock bool    `json:"lowStock"`
}

// --- Users ---

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role"     validate:"required,oneof=admin user"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"omitempty,min=4"`
	Role     string `json:"role"     validate:"required,oneof=admin user"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
