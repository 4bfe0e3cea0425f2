package request

// QuoteRequest is a day selection to price. Dates use the YYYY-MM-DD format.
type QuoteRequest struct {
	Dates      []string `json:"dates" validate:"required,min=1,max=62,unique,dive,datetime=2006-01-02"`
	PartySize  int      `json:"party_size" validate:"min=1,max=500"`
	AddOnDates []string `json:"add_on_dates,omitempty" validate:"omitempty,max=62,unique,dive,datetime=2006-01-02"`
}

type ContactRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=40"`
}

// CreateOrderRequest reserves the selection. QuotedPrice is what the client displayed;
// it is only compared against the server-side price, never charged.
type CreateOrderRequest struct {
	QuoteRequest
	Contact     ContactRequest `json:"contact"`
	QuotedPrice *int64         `json:"quoted_price,omitempty" validate:"omitempty,min=0"`
}

type AvailabilityRequest struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}
