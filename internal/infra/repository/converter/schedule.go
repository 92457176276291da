package converter

import (
	"shop-reservation/internal/domain/schedule"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/pgconv"
)

func RuleToInsertParams(r schedule.Rule) sqlc.InsertAvailabilityRuleParams {
	return sqlc.InsertAvailabilityRuleParams{
		ID:         r.ID(),
		ShopID:     r.ShopID(),
		ResourceID: pgconv.UUIDPtrToPgtype(r.ResourceID()),
		DayOfWeek:  int16(r.DayOfWeek()),
		StartTime:  pgconv.MinutesToPgTime(r.StartMinute()),
		EndTime:    pgconv.MinutesToPgTime(r.EndMinute()),
		IsActive:   r.IsActive(),
	}
}

func RuleFromRow(row sqlc.AvailabilityRules) schedule.Rule {
	return schedule.ReconstructRule(
		row.ID,
		row.ShopID,
		pgconv.UUIDPtrFromPgtype(row.ResourceID),
		int(row.DayOfWeek),
		pgconv.MinutesFromPgTime(row.StartTime),
		pgconv.MinutesFromPgTime(row.EndTime),
		row.IsActive,
	)
}

func BlockToCreateParams(b schedule.Block) sqlc.CreateBlockParams {
	return sqlc.CreateBlockParams{
		ID:            b.ID(),
		ShopID:        b.ShopID(),
		ResourceID:    pgconv.UUIDPtrToPgtype(b.ResourceID()),
		StartDatetime: pgconv.TimeToPgtype(b.Start()),
		EndDatetime:   pgconv.TimeToPgtype(b.End()),
		Reason:        pgconv.StringPtrToPgtype(b.Reason()),
		BlockType:     string(b.Type()),
		CreatedAt:     pgconv.TimeToPgtype(b.CreatedAt()),
	}
}

func BlockFromRow(row sqlc.Blocks) schedule.Block {
	return schedule.ReconstructBlock(
		row.ID,
		row.ShopID,
		pgconv.UUIDPtrFromPgtype(row.ResourceID),
		pgconv.TimeFromPgtype(row.StartDatetime),
		pgconv.TimeFromPgtype(row.EndDatetime),
		pgconv.StringPtrFromPgtype(row.Reason),
		schedule.BlockType(row.BlockType),
		pgconv.TimeFromPgtype(row.CreatedAt),
	)
}
