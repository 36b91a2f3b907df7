package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Contribution statuses
const (
	ContributionCompleted = "completed"
	ContributionPending   = "pending"
	ContributionFailed    = "failed"
)

// Payout statuses
const (
	PayoutScheduled = "scheduled"
	PayoutCompleted = "completed"
	PayoutCancelled = "cancelled"
)

// Penalty statuses
const (
	PenaltyPending = "pending"
	PenaltyPaid    = "paid"
	PenaltyWaived  = "waived"
)

// Notification types
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationError   = "error"
	NotificationSuccess = "success"
)

// PaymentRequest statuses (STK push lifecycle)
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentExpired   = "expired"
)

// User represents an account that can log in and be notified
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Chama represents a savings group, the root organizational entity
type Chama struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	ContributionAmount string    `json:"contributionAmount"` // fixed-point decimal string
	MeetingSchedule    string    `json:"meetingSchedule,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedBy          int       `json:"createdBy"`
}

// Member links a User to a Chama with group-specific state
type Member struct {
	ID       int       `json:"id"`
	UserID   int       `json:"userId"`
	ChamaID  int       `json:"chamaId"`
	JoinedAt time.Time `json:"joinedAt"`
	IsActive bool      `json:"isActive"`
}

// Contribution is a recorded payment from a Member into a Chama
type Contribution struct {
	ID               int       `json:"id"`
	MemberID         int       `json:"memberId"`
	ChamaID          int       `json:"chamaId"`
	Amount           string    `json:"amount"`
	ContributionDate time.Time `json:"contributionDate"`
	Status           string    `json:"status"`
}

// Payout is a scheduled or completed disbursement from a Chama to a Member
type Payout struct {
	ID         int       `json:"id"`
	ChamaID    int       `json:"chamaId"`
	MemberID   int       `json:"memberId"`
	Amount     string    `json:"amount"`
	PayoutDate time.Time `json:"payoutDate"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
}

// Penalty is a charge levied against a Member
type Penalty struct {
	ID          int       `json:"id"`
	MemberID    int       `json:"memberId"`
	ChamaID     int       `json:"chamaId"`
	Amount      string    `json:"amount"`
	Reason      string    `json:"reason"`
	PenaltyDate time.Time `json:"penaltyDate"`
	Status      string    `json:"status"`
}

// Notification is a message surfaced to a single user
type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentRequest tracks an STK push from initiation until its gateway
// callback (or expiry) resolves the pending contribution it created.
type PaymentRequest struct {
	ID                int       `json:"id"`
	CheckoutRequestID string    `json:"checkoutRequestId"`
	MerchantRequestID string    `json:"merchantRequestId"`
	ContributionID    int       `json:"contributionId"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ============================================================
// Denormalized read models (foreign keys hydrated into objects)
// ============================================================

// MemberView embeds the referenced User and Chama
type MemberView struct {
	Member
	User  *User  `json:"user"`
	Chama *Chama `json:"chama"`
}

// MemberWithUser embeds only the referenced User (per-chama member listings)
type MemberWithUser struct {
	Member
	User *User `json:"user"`
}

// ContributionView embeds the owning Member (with its User) and Chama
type ContributionView struct {
	Contribution
	Member *MemberWithUser `json:"member"`
	Chama  *Chama          `json:"chama"`
}

// PayoutView embeds the owning Member (with its User) and Chama
type PayoutView struct {
	Payout
	Member *MemberWithUser `json:"member"`
	Chama  *Chama          `json:"chama"`
}

// PenaltyView embeds the owning Member (with its User) and Chama
type PenaltyView struct {
	Penalty
	Member *MemberWithUser `json:"member"`
	Chama  *Chama          `json:"chama"`
}

// DashboardStats aggregates counts and the decimal-accurate contribution sum
type DashboardStats struct {
	TotalChamas        int    `json:"totalChamas"`
	TotalMembers       int    `json:"totalMembers"`
	TotalContributions string `json:"totalContributions"`
	NextPayout         string `json:"nextPayout"`
}
