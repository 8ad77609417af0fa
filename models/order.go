package models

import "time"

// Order status lifecycle. Transitions move strictly forward,
// one step at a time; see CanTransition.
const (
	StatusPending   = "pending"
	StatusCooking   = "cooking"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	TableID   int         `gorm:"not null" json:"table_id"`
	Status    string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Total     float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Paid      bool        `gorm:"not null;default:false" json:"paid"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// nextStatus maps each status to the only status it may advance to.
var nextStatus = map[string]string{
	StatusPending: StatusCooking,
	StatusCooking: StatusReady,
	StatusReady:   StatusCompleted,
}

// ValidStatus reports whether s is one of the four lifecycle values.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCooking, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether an order in status from may move to status to.
// Skipping steps and moving backwards are both rejected.
func CanTransition(from, to string) bool {
	return nextStatus[from] == to
}
