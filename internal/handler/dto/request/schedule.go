package request

import (
	"time"

	"shop-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type AvailabilityRule struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type SetAvailabilityRequest struct {
	ResourceID *uuid.UUID         `json:"resource_id,omitempty"`
	Rules      []AvailabilityRule `json:"rules" binding:"dive"`
}

func (r SetAvailabilityRequest) ToRules() []commands.RuleInput {
	out := make([]commands.RuleInput, len(r.Rules))
	for i, rule := range r.Rules {
		out[i] = commands.RuleInput{
			DayOfWeek: rule.DayOfWeek,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
		}
	}
	return out
}

type CreateBlockRequest struct {
	ResourceID    *uuid.UUID `json:"resource_id,omitempty"`
	StartDatetime time.Time  `json:"start_datetime" binding:"required"`
	EndDatetime   time.Time  `json:"end_datetime" binding:"required"`
	Reason        *string    `json:"reason,omitempty"`
	BlockType     string     `json:"block_type"`
}

func (r CreateBlockRequest) ToInput() commands.BlockInput {
	return commands.BlockInput{
		ResourceID: r.ResourceID,
		Start:      r.StartDatetime,
		End:        r.EndDatetime,
		Reason:     trimmed(r.Reason),
		BlockType:  r.BlockType,
	}
}
