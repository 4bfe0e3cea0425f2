package entity

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Contact is customer contact data supplied by the identity provider, stored as-is.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is the durable receipt of a successful reservation. Only Status changes
// after creation.
type Order struct {
	Base
	OrderCode         string          `db:"order_code"`
	CustomerID        string          `db:"customer_id"`
	Contact           Contact         `db:"contact"`
	Dates             []CalendarDay   `db:"dates"`
	PartySize         int             `db:"party_size"`
	AddOnDates        []CalendarDay   `db:"add_on_dates"`
	Price             int64           `db:"price"`
	RateTableSnapshot SeasonRateTable `db:"rate_table"`
	Status            OrderStatus     `db:"status"`
}

// CanTransitionTo reports whether the payment flow may move the order to next.
// pending -> paid | cancelled, paid -> cancelled (refund). Cancelled is terminal.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch o.Status {
	case OrderStatusPending:
		return next == OrderStatusPaid || next == OrderStatusCancelled
	case OrderStatusPaid:
		return next == OrderStatusCancelled
	default:
		return false
	}
}
