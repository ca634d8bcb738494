package trade

import (
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
)

// validateDocumentDate accepts document dates up to and including the
// current day. Backdated purchases and sales are legitimate; documents
// dated in the future are not.
func validateDocumentDate(date time.Time) error {
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Document date is required")
	}
	now := time.Now()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if !date.Before(endOfToday) {
		return shared.NewDomainError("INVALID_DATE", "Document date cannot be in the future")
	}
	return nil
}
