package shared

import (
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/infra"
	"shop-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

const SlotTakenMessage = "This time slot is no longer available"

// TranslateRepoErr maps repository failures onto the usecase error kinds.
// Errors that already carry a kind pass through unchanged.
func TranslateRepoErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errs.KindOf(err) != nil {
		return err
	}
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.NotFound(what)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Conflict(SlotTakenMessage)
	default:
		return errs.Store(err, "failed to access "+what)
	}
}

func RequireShopAdmin(actor reservation.Actor, shopID uuid.UUID) error {
	if !actor.IsShopAdmin(shopID) {
		return errs.Forbidden("only shop administrators can perform this operation")
	}
	return nil
}
