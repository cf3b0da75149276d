package dto

// InventoryItemDTO un registro del inventario tal como lo ve la API.
type InventoryItemDTO struct {
	ID       int64  `json:"id"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Expiry   string `json:"expiry"` // YYYY-MM-DD
}

// UpdateItemRequest body para POST /update.
// Quantity nil = 1; Expiry nil o vacío = vencimiento por defecto según la tabla de vida útil.
type UpdateItemRequest struct {
	Item     string  `json:"item"`
	Quantity *int    `json:"quantity,omitempty"`
	Expiry   *string `json:"expiry,omitempty"`
}

// UpdateItemResponse respuesta de POST /update.
type UpdateItemResponse struct {
	Message string           `json:"message"`
	Item    InventoryItemDTO `json:"item"`
}

// InventoryListResponse respuesta de GET /inventory.
type InventoryListResponse struct {
	Items []InventoryItemDTO `json:"items"`
}

// ExpiredListResponse respuesta de GET /expired.
type ExpiredListResponse struct {
	AsOf         string             `json:"as_of"`
	ExpiredItems []InventoryItemDTO `json:"expired_items"`
}

// ShelfLifeResponse respuesta de GET /shelf-life/:item.
type ShelfLifeResponse struct {
	Item string `json:"item"`
	Days int    `json:"days"`
}
