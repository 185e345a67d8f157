package entity

import (
	"time"

	"github.com/google/uuid"
)

// CaseImage is one gallery image of a loan case. ObjectKey points into the
// object storage bucket; URLs are signed on read, never persisted.
type CaseImage struct {
	Id          uuid.UUID
	LoanCaseId  uuid.UUID
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	Position    int
	Caption     string
	CreatedAt   time.Time
}
