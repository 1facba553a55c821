package booking

import (
	"fmt"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// AuthorizeRead grants single-booking visibility to the booker and to the
// owner of the reserved item, nobody else. List queries are already scoped by
// the caller's own id and skip this check.
func AuthorizeRead(requesterID uuid.UUID, bk *Booking, itemOwnerID uuid.UUID) error {
	if bk.IsBookedBy(requesterID) || requesterID == itemOwnerID {
		return nil
	}
	return domain.NewForbiddenError(
		fmt.Sprintf("user %s may not view booking %s", requesterID, bk.ID()))
}

// AuthorizeDecide grants the approve/reject decision to the item owner only.
func AuthorizeDecide(userID, itemOwnerID uuid.UUID) error {
	if userID == itemOwnerID {
		return nil
	}
	return domain.NewForbiddenError(
		fmt.Sprintf("user %s is not the item owner", userID))
}
