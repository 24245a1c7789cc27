package closure

import (
	"fmt"

	"gorm.io/gorm"
)

// Authority identifies one of the two independent approving authorities.
type Authority string

const (
	AuthorityAdministration Authority = "administration"
	AuthorityTrafficPolice  Authority = "traffic_police"
)

// flagColumn returns the approval flag column owned by the authority.
func (a Authority) flagColumn() string {
	if a == AuthorityTrafficPolice {
		return "gibdd_approved"
	}
	return "admin_approved"
}

// ApprovalCoordinator applies authority votes and the two-of-two approval
// rule. Approval order is irrelevant: the closure becomes approved the
// moment the second flag lands, whichever authority acted first.
//
// Both the vote and the status flip happen inside one transaction with
// status-guarded updates, so two votes racing on the same closure can never
// leave both flags true while the status stays pending.
type ApprovalCoordinator struct {
	db *gorm.DB
}

// NewApprovalCoordinator creates a coordinator on the given database.
func NewApprovalCoordinator(db *gorm.DB) *ApprovalCoordinator {
	return &ApprovalCoordinator{db: db}
}

// Apply records the authority's vote on a pending closure.
// voted is false when the closure was not pending at commit time; approved
// is true when this vote completed the two-of-two gate.
func (c *ApprovalCoordinator) Apply(id string, authority Authority) (voted bool, approved bool, err error) {
	err = c.db.Transaction(func(tx *gorm.DB) error {
		// The vote only lands while the closure is pending. This also makes
		// the flag monotonic: approved/rejected closures are never touched.
		vote := tx.Model(&Record{}).
			Where("id = ? AND status = ?", id, StatusPending).
			Update(authority.flagColumn(), true)
		if vote.Error != nil {
			return fmt.Errorf("record %s vote: %w", authority, vote.Error)
		}
		if vote.RowsAffected == 0 {
			return nil
		}
		voted = true

		// Flip to approved only when both flags are set. Re-checking the
		// flags in the predicate keeps the read-flags-write-status step
		// indivisible relative to other writers of the same closure.
		flip := tx.Model(&Record{}).
			Where("id = ? AND status = ? AND admin_approved = ? AND gibdd_approved = ?",
				id, StatusPending, true, true).
			Update("status", StatusApproved)
		if flip.Error != nil {
			return fmt.Errorf("apply approval status: %w", flip.Error)
		}
		approved = flip.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, false, err
	}
	return voted, approved, nil
}
