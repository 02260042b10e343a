package supplier

import "time"

type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RUC       string    `json:"ruc"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSupplierRequest payload of creation.
// swagger:model CreateSupplierRequest
type CreateSupplierRequest struct {
	Name    string `json:"name"    example:"Distribuidora Norte SAC"`
	RUC     string `json:"ruc"     example:"20481234567"`
	Address string `json:"address" example:"Av. Industrial 742"`
	Phone   string `json:"phone"   example:"+51 44 123456"`
	Email   string `json:"email"   example:"ventas@dnorte.pe"`
}

// UpdateSupplierRequest payload of partial update.
// swagger:model UpdateSupplierRequest
type UpdateSupplierRequest struct {
	Name    string `json:"name"`
	RUC     string `json:"ruc"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}
