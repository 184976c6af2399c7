package dto

import "time"

// RegisterWithdrawalRequest entrada para registrar una salida de almacén.
type RegisterWithdrawalRequest struct {
	ProductCode     string `json:"product_code" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,gt=0"`
	Responsible     string `json:"responsible" validate:"required,max=200"`
	DestinationArea string `json:"destination_area" validate:"max=100"`
	Notes           string `json:"notes"`
}

// WithdrawalResponse salida registrada, con instantáneas de stock.
type WithdrawalResponse struct {
	ID              int64     `json:"id"`
	ProductCode     string    `json:"product_code"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	Unit            string    `json:"unit"`
	Responsible     string    `json:"responsible"`
	DestinationArea string    `json:"destination_area"`
	Notes           string    `json:"notes,omitempty"`
	StockBefore     int       `json:"stock_before"`
	StockAfter      int       `json:"stock_after"`
	CreatedAt       time.Time `json:"created_at"`
}
