package domain

// MenuItemType groups menu items on the order form.
type MenuItemType string

const (
	MenuItemBurger    MenuItemType = "BURGER"
	MenuItemDrink     MenuItemType = "DRINK"
	MenuItemPortion   MenuItemType = "PORTION"
	MenuItemAppetizer MenuItemType = "APPETIZER"
)

// MenuItem is a sellable dish or drink.
type MenuItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	Type        MenuItemType `json:"type"`
}

// Addition is an add-on that can be attached to an ordered item.
type Addition struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
