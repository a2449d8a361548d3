package event

import "time"

// TopicProductCreated canal lógico donde se publica cada creación de producto.
// Lo consumen inventario (inicialización de stock) y búsqueda (indexación).
const TopicProductCreated = "product-created"

// ProductCreated notificación de dominio emitida tras el commit de un
// producto nuevo. Entrega at-most-once: sin outbox ni reintentos, los
// consumidores deben tolerar pérdida.
type ProductCreated struct {
	EventType string    `json:"event_type"`
	ProductID string    `json:"product_id"`
	SKU       string    `json:"sku"`
	TenantID  string    `json:"tenant_id"`
	SellerID  string    `json:"seller_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewProductCreated construye el evento con el timestamp de creación.
func NewProductCreated(productID, sku, tenantID, sellerID string) ProductCreated {
	return ProductCreated{
		EventType: "ProductCreated",
		ProductID: productID,
		SKU:       sku,
		TenantID:  tenantID,
		SellerID:  sellerID,
		Timestamp: time.Now(),
	}
}
