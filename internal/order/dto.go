package order

// CreateOrderDetail payload de ítem.
// swagger:model CreateOrderDetail
type CreateOrderDetail struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"   example:"2"`
}

// CreateOrderRequest payload de creación de pedido.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	ClientID string              `json:"client_id" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	Number   string              `json:"number"    example:"ORD-00042"`
	Details  []CreateOrderDetail `json:"order_details"`
}

// UpdateOrderRequest payload de actualización; los detalles reemplazan
// por completo a los anteriores.
// swagger:model UpdateOrderRequest
type UpdateOrderRequest struct {
	ClientID string              `json:"client_id"`
	Number   string              `json:"number"`
	Status   string              `json:"status"`
	Details  []CreateOrderDetail `json:"order_details"`
}

// ToOrder builds the aggregate the workflow engine operates on. Prices and
// amounts are left zero: the engine always derives them from the catalog.
func (r CreateOrderRequest) ToOrder() *Order {
	o := &Order{
		ClientID: r.ClientID,
		Number:   r.Number,
	}
	for _, d := range r.Details {
		o.Details = append(o.Details, Detail{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	return o
}

func (r UpdateOrderRequest) ToOrder(id string) *Order {
	o := &Order{
		ID:       id,
		ClientID: r.ClientID,
		Number:   r.Number,
		Status:   r.Status,
	}
	for _, d := range r.Details {
		o.Details = append(o.Details, Detail{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	return o
}
