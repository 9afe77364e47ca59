package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación física.
type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Code    string `json:"code" validate:"required,min=1,max=50"`
	Address string `json:"address"`
	Manager string `json:"manager"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	Manager *string `json:"manager"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address"`
	Manager   string    `json:"manager"`
	IsVirtual bool      `json:"is_virtual"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateItemRequest entrada para crear un artículo.
type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Dose        string `json:"dose"`
	PackageType string `json:"package_type"`
	Description string `json:"description"`
	RequiresLot bool   `json:"requires_lot"`
}

// UpdateItemRequest entrada para actualizar un artículo.
// RequiresLot no es editable: cambiarlo invalidaría las claves de stock existentes.
type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Dose        *string `json:"dose"`
	PackageType *string `json:"package_type"`
	Description *string `json:"description"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Dose        string    `json:"dose"`
	PackageType string    `json:"package_type"`
	Description string    `json:"description"`
	RequiresLot bool      `json:"requires_lot"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRecipientRequest entrada para crear un consumidor externo.
type CreateRecipientRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// UpdateRecipientRequest entrada para actualizar un consumidor externo.
type UpdateRecipientRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

// RecipientResponse salida de un consumidor externo.
type RecipientResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
