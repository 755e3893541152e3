package investment

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// transitions lists the statuses an investment may move to from each state.
// Statuses without an entry are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

func (s Status) CanTransitionTo(next Status) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Investment.Amount is stored in minor units (grosze).
type Investment struct {
	ID          string         `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	UserID      string         `gorm:"column:user_id;type:char(36);not null;index:idx_investments_user_created,priority:1" json:"user_id"`
	OfferID     string         `gorm:"column:offer_id;type:char(36);not null;index" json:"offer_id"`
	Amount      int64          `gorm:"column:amount;not null" json:"amount"`
	Status      Status         `gorm:"column:status;type:enum('pending','accepted','rejected','cancelled','completed');default:'pending';index" json:"status"`
	Reason      *string        `gorm:"column:reason;type:text" json:"reason"`
	CompletedAt *time.Time     `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index:idx_investments_user_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Investment) TableName() string { return "investments" }

// WithRelations is an investment joined with its investor and offer, used by
// the admin listing.
type WithRelations struct {
	Investment
	UserEmail     string `gorm:"column:user_email"`
	UserFirstName string `gorm:"column:user_first_name"`
	UserLastName  string `gorm:"column:user_last_name"`
	OfferName     string `gorm:"column:offer_name"`
}
