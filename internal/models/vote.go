package models

import (
	"time"
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ThreadID  *uint     `gorm:"index" json:"thread_id"`
	ReplyID   *uint     `gorm:"index" json:"reply_id"`
	Value     int       `gorm:"not null" json:"vote_type"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}

// Exactly one of ThreadID/ReplyID is set per row. Uniqueness of
// (user_id, target) is enforced by the vote service's locked
// check-then-write; a partial unique index is awkward to express
// portably with NULLable pairs, so the application owns the invariant.
