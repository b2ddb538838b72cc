package dto

// TableCreateRequest payload for registering a table.
type TableCreateRequest struct {
	Number int `json:"number" validate:"required,gt=0"`
}

// OrderLineRequest is one item on the order form.
type OrderLineRequest struct {
	ItemID       string   `json:"itemId" validate:"required"`
	Additions    []string `json:"additions" validate:"dive,required"`
	Observations string   `json:"observations"`
}

// OrderRequest places a new order or extends an open one.
type OrderRequest struct {
	TableNumber int                `json:"tableNumber" validate:"required,gt=0"`
	WaiterID    string             `json:"waiterId" validate:"required"`
	Items       []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// MenuItemRequest payload for menu create and update.
type MenuItemRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gt=0"`
	Type        string  `json:"type" validate:"required,oneof=BURGER DRINK PORTION APPETIZER"`
}

// AdditionRequest payload for new add-ons.
type AdditionRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}
