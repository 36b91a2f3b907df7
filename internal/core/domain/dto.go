package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insert payloads carry client input with server-assigned fields (id,
// timestamps) stripped. Update payloads use pointers so only fields present
// in the request body are merged.

// InsertUser is the signup/create payload for a user
type InsertUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone"`
}

// Validate checks required fields and the role enum
func (in *InsertUser) Validate() error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return ErrInvalidInput
	}
	if in.Role != "" && in.Role != RoleUser && in.Role != RoleAdmin {
		return ErrInvalidInput
	}
	return nil
}

// UpdateUser is a partial user update
type UpdateUser struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *Role   `json:"role"`
	Phone    *string `json:"phone"`
}

// InsertChama is the create payload for a chama
type InsertChama struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	ContributionAmount string `json:"contributionAmount"`
	MeetingSchedule    string `json:"meetingSchedule"`
	CreatedBy          int    `json:"createdBy"`
}

// Validate checks required fields and the amount format
func (in *InsertChama) Validate() error {
	if in.Name == "" || in.ContributionAmount == "" {
		return ErrInvalidInput
	}
	return validAmount(in.ContributionAmount)
}

// UpdateChama is a partial chama update
type UpdateChama struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	ContributionAmount *string `json:"contributionAmount"`
	MeetingSchedule    *string `json:"meetingSchedule"`
	CreatedBy          *int    `json:"createdBy"`
}

// Validate checks the amount format when present
func (in *UpdateChama) Validate() error {
	if in.ContributionAmount != nil {
		return validAmount(*in.ContributionAmount)
	}
	return nil
}

// InsertMember is the create payload for a membership
type InsertMember struct {
	UserID   int   `json:"userId"`
	ChamaID  int   `json:"chamaId"`
	IsActive *bool `json:"isActive"` // nil defaults to true
}

// Validate checks the foreign keys are present
func (in *InsertMember) Validate() error {
	if in.UserID <= 0 || in.ChamaID <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// UpdateMember is a partial membership update
type UpdateMember struct {
	UserID   *int  `json:"userId"`
	ChamaID  *int  `json:"chamaId"`
	IsActive *bool `json:"isActive"`
}

// InsertContribution is the create payload for a contribution
type InsertContribution struct {
	MemberID int    `json:"memberId"`
	ChamaID  int    `json:"chamaId"`
	Amount   string `json:"amount"`
	Status   string `json:"status"` // defaults to completed
}

// Validate checks required fields, amount format and status enum
func (in *InsertContribution) Validate() error {
	if in.MemberID <= 0 || in.ChamaID <= 0 || in.Amount == "" {
		return ErrInvalidInput
	}
	if err := validAmount(in.Amount); err != nil {
		return err
	}
	switch in.Status {
	case "", ContributionCompleted, ContributionPending, ContributionFailed:
		return nil
	}
	return ErrInvalidInput
}

// UpdateContribution is a partial contribution update
type UpdateContribution struct {
	MemberID *int    `json:"memberId"`
	ChamaID  *int    `json:"chamaId"`
	Amount   *string `json:"amount"`
	Status   *string `json:"status"`
}

// Validate checks the amount format when present
func (in *UpdateContribution) Validate() error {
	if in.Amount != nil {
		return validAmount(*in.Amount)
	}
	return nil
}

// InsertPayout is the create payload for a payout
type InsertPayout struct {
	ChamaID    int       `json:"chamaId"`
	MemberID   int       `json:"memberId"`
	Amount     string    `json:"amount"`
	PayoutDate time.Time `json:"payoutDate"`
	Status     string    `json:"status"` // defaults to scheduled
	Notes      string    `json:"notes"`
}

// Validate checks required fields, amount format and status enum
func (in *InsertPayout) Validate() error {
	if in.ChamaID <= 0 || in.MemberID <= 0 || in.Amount == "" || in.PayoutDate.IsZero() {
		return ErrInvalidInput
	}
	if err := validAmount(in.Amount); err != nil {
		return err
	}
	switch in.Status {
	case "", PayoutScheduled, PayoutCompleted, PayoutCancelled:
		return nil
	}
	return ErrInvalidInput
}

// UpdatePayout is a partial payout update
type UpdatePayout struct {
	ChamaID    *int       `json:"chamaId"`
	MemberID   *int       `json:"memberId"`
	Amount     *string    `json:"amount"`
	PayoutDate *time.Time `json:"payoutDate"`
	Status     *string    `json:"status"`
	Notes      *string    `json:"notes"`
}

// Validate checks the amount format when present
func (in *UpdatePayout) Validate() error {
	if in.Amount != nil {
		return validAmount(*in.Amount)
	}
	return nil
}

// InsertPenalty is the create payload for a penalty
type InsertPenalty struct {
	MemberID int    `json:"memberId"`
	ChamaID  int    `json:"chamaId"`
	Amount   string `json:"amount"`
	Reason   string `json:"reason"`
	Status   string `json:"status"` // defaults to pending
}

// Validate checks required fields, amount format and status enum
func (in *InsertPenalty) Validate() error {
	if in.MemberID <= 0 || in.ChamaID <= 0 || in.Amount == "" || in.Reason == "" {
		return ErrInvalidInput
	}
	if err := validAmount(in.Amount); err != nil {
		return err
	}
	switch in.Status {
	case "", PenaltyPending, PenaltyPaid, PenaltyWaived:
		return nil
	}
	return ErrInvalidInput
}

// UpdatePenalty is a partial penalty update
type UpdatePenalty struct {
	MemberID *int    `json:"memberId"`
	ChamaID  *int    `json:"chamaId"`
	Amount   *string `json:"amount"`
	Reason   *string `json:"reason"`
	Status   *string `json:"status"`
}

// Validate checks the amount format when present
func (in *UpdatePenalty) Validate() error {
	if in.Amount != nil {
		return validAmount(*in.Amount)
	}
	return nil
}

// InsertNotification is the create payload for a notification
type InsertNotification struct {
	UserID  int    `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"` // defaults to info
}

// Validate checks required fields and the type enum
func (in *InsertNotification) Validate() error {
	if in.UserID <= 0 || in.Title == "" || in.Message == "" {
		return ErrInvalidInput
	}
	switch in.Type {
	case "", NotificationInfo, NotificationWarning, NotificationError, NotificationSuccess:
		return nil
	}
	return ErrInvalidInput
}

// validAmount rejects anything that is not a parseable fixed-point decimal.
// Amounts stay decimal strings end to end; floats would drift.
func validAmount(s string) error {
	if _, err := decimal.NewFromString(s); err != nil {
		return ErrInvalidInput
	}
	return nil
}
