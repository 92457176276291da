package queries

import (
	"shop-reservation/internal/domain/availability"
	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/pkg/timegrid"
	"shop-reservation/internal/usecase/shared"
)

func ToServiceView(s *catalog.Service) *ServiceView {
	return &ServiceView{
		ID:               s.ID(),
		ShopID:           s.ShopID(),
		Name:             s.Name(),
		Description:      s.Description(),
		DurationMinutes:  s.DurationMinutes(),
		Price:            s.Price(),
		Capacity:         s.Capacity(),
		RequiresResource: s.RequiresResource(),
		IsActive:         s.IsActive(),
		SortOrder:        s.SortOrder(),
		CreatedAt:        s.CreatedAt(),
		UpdatedAt:        s.UpdatedAt(),
	}
}

func ToResourceView(r *catalog.Resource) *ResourceView {
	return &ResourceView{
		ID:        r.ID(),
		ShopID:    r.ShopID(),
		Name:      r.Name(),
		Type:      string(r.Type()),
		IsActive:  r.IsActive(),
		SortOrder: r.SortOrder(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

func toLinkedResourceViews(in []shared.LinkedResource) []LinkedResourceView {
	out := make([]LinkedResourceView, len(in))
	for i, lr := range in {
		out[i] = LinkedResourceView{
			ID:               lr.Resource.ID(),
			Name:             lr.Resource.Name(),
			Type:             string(lr.Resource.Type()),
			IsActive:         lr.Resource.IsActive(),
			LinkActive:       lr.Link.IsActive,
			PriceOverride:    lr.Link.PriceOverride,
			DurationOverride: lr.Link.DurationOverride,
		}
	}
	return out
}

func ToLinkedServiceViews(in []shared.LinkedService) []LinkedServiceView {
	out := make([]LinkedServiceView, len(in))
	for i, ls := range in {
		out[i] = LinkedServiceView{
			ID:               ls.Service.ID(),
			Name:             ls.Service.Name(),
			IsActive:         ls.Service.IsActive(),
			LinkActive:       ls.Link.IsActive,
			PriceOverride:    ls.Link.PriceOverride,
			DurationOverride: ls.Link.DurationOverride,
		}
	}
	return out
}

func ToRuleViews(rules []schedule.Rule) []RuleView {
	out := make([]RuleView, len(rules))
	for i, r := range rules {
		out[i] = RuleView{
			ID:         r.ID(),
			ResourceID: r.ResourceID(),
			DayOfWeek:  r.DayOfWeek(),
			StartTime:  r.StartTime(),
			EndTime:    r.EndTime(),
			IsActive:   r.IsActive(),
		}
	}
	return out
}

func ToBlockView(b schedule.Block) BlockView {
	return BlockView{
		ID:            b.ID(),
		ResourceID:    b.ResourceID(),
		StartDatetime: b.Start(),
		EndDatetime:   b.End(),
		Reason:        b.Reason(),
		BlockType:     string(b.Type()),
		CreatedAt:     b.CreatedAt(),
	}
}

func ToSettingsView(s reservation.Settings) *SettingsView {
	return &SettingsView{
		ConfirmationMode:    string(s.ConfirmationMode),
		CancellationHours:   s.CancellationHours,
		MaxAdvanceDays:      s.MaxAdvanceDays,
		MinAdvanceHours:     s.MinAdvanceHours,
		AllowAnyStaff:       s.AllowAnyStaff,
		SlotDurationMinutes: s.SlotDurationMinutes,
	}
}

func toSlotView(s availability.Slot) SlotView {
	return SlotView{
		StartTime:    s.StartTime(),
		EndTime:      s.EndTime(),
		Available:    s.Available,
		ResourceID:   s.ResourceID,
		ResourceName: s.ResourceName,
	}
}

func toDayViews(days []availability.Day) []DayAvailability {
	out := make([]DayAvailability, len(days))
	for i, d := range days {
		slots := make([]SlotView, len(d.Slots))
		for j, s := range d.Slots {
			slots[j] = toSlotView(s)
		}
		out[i] = DayAvailability{Date: timegrid.FormatDate(d.Date), Slots: slots}
	}
	return out
}
