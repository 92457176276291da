package response

import (
	"shop-reservation/internal/usecase/queries"
)

type ReservationListResponse struct {
	Items  []*queries.ReservationView `json:"items"`
	Total  int64                      `json:"total"`
	Limit  int                        `json:"limit"`
	Offset int                        `json:"offset"`
}

func FromReservationPage(p *queries.ReservationPage) *ReservationListResponse {
	items := p.Items
	if items == nil {
		items = []*queries.ReservationView{}
	}
	return &ReservationListResponse{
		Items:  items,
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}
