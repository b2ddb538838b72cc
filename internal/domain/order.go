package domain

// Order groups the items placed for a table in one submission.
type Order struct {
	ID          string       `json:"id"`
	TableOrders []TableOrder `json:"tableOrders"`
	CreatedAt   string       `json:"createdAt"`
}

// TableOrder is one ordered item with its add-ons.
type TableOrder struct {
	ID           string     `json:"id"`
	Item         MenuItem   `json:"item"`
	Additions    []Addition `json:"additions"`
	Waiter       Waiter     `json:"waiter"`
	Observations string     `json:"observations"`
}

// Waiter is the staff member credited with an order.
type Waiter struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}
