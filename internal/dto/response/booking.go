package response

import (
	"time"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/pricing"
)

type QuoteLine struct {
	Kind      pricing.LineKind `json:"kind"`
	Dates     []string         `json:"dates,omitempty"`
	PerPerson int64            `json:"per_person,omitempty"`
	Amount    int64            `json:"amount"`
}

type QuoteResponse struct {
	Season         string      `json:"season"`
	Dates          []string    `json:"dates"`
	PartySize      int         `json:"party_size"`
	AddOnDates     []string    `json:"add_on_dates"`
	Lines          []QuoteLine `json:"lines"`
	PerPersonTotal int64       `json:"per_person_total"`
	HuntTotal      int64       `json:"hunt_total"`
	AddOnTotal     int64       `json:"add_on_total"`
	Total          int64       `json:"total"`
}

type ContactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type OrderResponse struct {
	ID         string             `json:"id"`
	OrderCode  string             `json:"order_code"`
	CustomerID string             `json:"customer_id"`
	Contact    ContactResponse    `json:"contact"`
	Dates      []string           `json:"dates"`
	PartySize  int                `json:"party_size"`
	AddOnDates []string           `json:"add_on_dates"`
	Price      int64              `json:"price"`
	RateTable  SeasonResponse     `json:"rate_table"`
	Status     entity.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type ReservationResponse struct {
	OrderResponse
	QuotedPriceMismatch bool `json:"quoted_price_mismatch"`
}

// Helper converters
func QuoteToResponse(q pricing.Quote, req *entity.BookingRequest, table *entity.SeasonRateTable) QuoteResponse {
	lines := make([]QuoteLine, len(q.Lines))
	for i, line := range q.Lines {
		lines[i] = QuoteLine{
			Kind:      line.Kind,
			Dates:     entity.DayStrings(line.Dates),
			PerPerson: line.PerPerson,
			Amount:    line.Amount,
		}
	}

	return QuoteResponse{
		Season:         table.Name,
		Dates:          entity.DayStrings(req.Dates),
		PartySize:      req.PartySize,
		AddOnDates:     entity.DayStrings(req.AddOnDates),
		Lines:          lines,
		PerPersonTotal: q.PerPersonTotal,
		HuntTotal:      q.HuntTotal,
		AddOnTotal:     q.AddOnTotal,
		Total:          q.Total,
	}
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID.String(),
		OrderCode:  order.OrderCode,
		CustomerID: order.CustomerID,
		Contact: ContactResponse{
			Name:  order.Contact.Name,
			Email: order.Contact.Email,
			Phone: order.Contact.Phone,
		},
		Dates:      entity.DayStrings(order.Dates),
		PartySize:  order.PartySize,
		AddOnDates: entity.DayStrings(order.AddOnDates),
		Price:      order.Price,
		RateTable:  SeasonToResponse(&order.RateTableSnapshot),
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
