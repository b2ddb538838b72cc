package domain

// TableStatus represents the occupancy of a dining table.
type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
	TableReserved  TableStatus = "RESERVED"
	TableClosed    TableStatus = "CLOSED"
)

// Table is a dining table tracked by the backend.
type Table struct {
	Number int         `json:"tableNumber"`
	Status TableStatus `json:"status"`
}
