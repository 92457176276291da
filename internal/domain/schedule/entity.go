package schedule

import (
	"strings"
	"time"

	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/pkg/timegrid"

	"github.com/google/uuid"
)

var (
	ErrInvalidDayOfWeek = errs.Validation("day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidTime      = errs.Validation("time must be in HH:MM format")
	ErrInvalidWindow    = errs.Validation("start must be before end")
	ErrInvalidBlockType = errs.Validation("invalid block type")
)

// Rule is a recurring weekly window. A nil resourceID makes it shop-level.
type Rule struct {
	id          uuid.UUID
	shopID      uuid.UUID
	resourceID  *uuid.UUID
	dayOfWeek   int
	startMinute int
	endMinute   int
	isActive    bool
}

func NewRule(shopID uuid.UUID, resourceID *uuid.UUID, dayOfWeek int, startTime, endTime string) (Rule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return Rule{}, ErrInvalidDayOfWeek
	}
	start, err := timegrid.TimeToMinutes(startTime)
	if err != nil {
		return Rule{}, ErrInvalidTime
	}
	end, err := timegrid.TimeToMinutes(endTime)
	if err != nil {
		return Rule{}, ErrInvalidTime
	}
	if start >= end {
		return Rule{}, ErrInvalidWindow
	}
	return Rule{
		id:          uuid.New(),
		shopID:      shopID,
		resourceID:  resourceID,
		dayOfWeek:   dayOfWeek,
		startMinute: start,
		endMinute:   end,
		isActive:    true,
	}, nil
}

func ReconstructRule(id, shopID uuid.UUID, resourceID *uuid.UUID, dayOfWeek, startMinute, endMinute int, isActive bool) Rule {
	return Rule{
		id:          id,
		shopID:      shopID,
		resourceID:  resourceID,
		dayOfWeek:   dayOfWeek,
		startMinute: startMinute,
		endMinute:   endMinute,
		isActive:    isActive,
	}
}

func (r Rule) ID() uuid.UUID          { return r.id }
func (r Rule) ShopID() uuid.UUID      { return r.shopID }
func (r Rule) ResourceID() *uuid.UUID { return r.resourceID }
func (r Rule) DayOfWeek() int         { return r.dayOfWeek }
func (r Rule) StartMinute() int       { return r.startMinute }
func (r Rule) EndMinute() int         { return r.endMinute }
func (r Rule) StartTime() string      { return timegrid.MinutesToTime(r.startMinute) }
func (r Rule) EndTime() string        { return timegrid.MinutesToTime(r.endMinute) }
func (r Rule) IsActive() bool         { return r.isActive }
func (r Rule) IsShopLevel() bool      { return r.resourceID == nil }

func (r Rule) BelongsTo(resourceID uuid.UUID) bool {
	return r.resourceID != nil && *r.resourceID == resourceID
}

type BlockType string

const (
	BlockTypeHoliday  BlockType = "holiday"
	BlockTypeVacation BlockType = "vacation"
	BlockTypeBreak    BlockType = "break"
	BlockTypeCustom   BlockType = "custom"
)

func ParseBlockType(s string) (BlockType, error) {
	switch t := BlockType(strings.ToLower(strings.TrimSpace(s))); t {
	case BlockTypeHoliday, BlockTypeVacation, BlockTypeBreak, BlockTypeCustom:
		return t, nil
	case "":
		return BlockTypeCustom, nil
	default:
		return "", ErrInvalidBlockType
	}
}

// Block is an explicit unavailability window on top of the weekly rules.
type Block struct {
	id         uuid.UUID
	shopID     uuid.UUID
	resourceID *uuid.UUID
	start      time.Time
	end        time.Time
	reason     *string
	blockType  BlockType
	createdAt  time.Time
}

func NewBlock(shopID uuid.UUID, resourceID *uuid.UUID, start, end time.Time, reason *string, blockType string, now time.Time) (Block, error) {
	if !start.Before(end) {
		return Block{}, ErrInvalidWindow
	}
	bt, err := ParseBlockType(blockType)
	if err != nil {
		return Block{}, err
	}
	return Block{
		id:         uuid.New(),
		shopID:     shopID,
		resourceID: resourceID,
		start:      start,
		end:        end,
		reason:     reason,
		blockType:  bt,
		createdAt:  now,
	}, nil
}

func ReconstructBlock(id, shopID uuid.UUID, resourceID *uuid.UUID, start, end time.Time, reason *string, bt BlockType, createdAt time.Time) Block {
	return Block{
		id:         id,
		shopID:     shopID,
		resourceID: resourceID,
		start:      start,
		end:        end,
		reason:     reason,
		blockType:  bt,
		createdAt:  createdAt,
	}
}

func (b Block) ID() uuid.UUID          { return b.id }
func (b Block) ShopID() uuid.UUID      { return b.shopID }
func (b Block) ResourceID() *uuid.UUID { return b.resourceID }
func (b Block) Start() time.Time       { return b.start }
func (b Block) End() time.Time         { return b.end }
func (b Block) Reason() *string        { return b.reason }
func (b Block) Type() BlockType        { return b.blockType }
func (b Block) CreatedAt() time.Time   { return b.createdAt }

// AppliesTo reports whether the block constrains the given scope. Shop-level
// blocks apply everywhere; resource blocks only to their own resource.
func (b Block) AppliesTo(resourceID *uuid.UUID) bool {
	if b.resourceID == nil {
		return true
	}
	return resourceID != nil && *resourceID == *b.resourceID
}

func (b Block) Overlaps(start, end time.Time) bool {
	return timegrid.Overlaps(b.start, b.end, start, end)
}
