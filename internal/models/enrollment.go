// internal/models/enrollment.go
// TournamentEnrollment (roster entry, §3.1).

package models

import "time"

// TournamentEnrollment is one user's registration against a tournament.
type TournamentEnrollment struct {
	ID                   string            `json:"id" db:"id"`
	TournamentID         string            `json:"tournament_id" db:"tournament_id"`
	UserID               string            `json:"user_id" db:"user_id"`
	RequestStatus        EnrollmentRequest `json:"request_status" db:"request_status"`
	IsActive             bool              `json:"is_active" db:"is_active"`
	PaymentVerified      bool              `json:"payment_verified" db:"payment_verified"`
	ApprovedAt           *time.Time        `json:"approved_at,omitempty" db:"approved_at"`
	PaymentReferenceCode *string           `json:"payment_reference_code,omitempty" db:"payment_reference_code"`
	CreatedAt            time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at" db:"updated_at"`
}

// EnrollmentRequest is the approval workflow state of an enrollment.
type EnrollmentRequest string

const (
	EnrollmentPending   EnrollmentRequest = "PENDING"
	EnrollmentApproved  EnrollmentRequest = "APPROVED"
	EnrollmentDeclined  EnrollmentRequest = "DECLINED"
	EnrollmentCancelled EnrollmentRequest = "CANCELLED"
)

// IsEligible reports whether this enrollment may appear in generated
// sessions or submit results (§3.1).
func (e TournamentEnrollment) IsEligible() bool {
	return e.IsActive && e.RequestStatus == EnrollmentApproved
}
