package services

import (
	"errors"

	"edusphere/internal/models"

	"gorm.io/gorm"
)

// Vote results returned by Cast
const (
	VoteRecorded = "recorded"
	VoteUpdated  = "updated"
	VoteRemoved  = "removed"
)

var (
	ErrInvalidVoteValue = errors.New("vote_type must be 1 or -1")
	ErrInvalidTarget    = errors.New("provide exactly one of thread_id or reply_id")
	ErrTargetNotFound   = errors.New("vote target not found")
)

// VoteTarget designates the thing being voted on: exactly one of
// ThreadID/ReplyID is set.
type VoteTarget struct {
	ThreadID *uint
	ReplyID  *uint
}

func (t VoteTarget) valid() bool {
	return (t.ThreadID != nil) != (t.ReplyID != nil)
}

type VoteService struct {
	db *gorm.DB
}

func NewVoteService(gdb *gorm.DB) *VoteService {
	return &VoteService{db: gdb}
}

// Cast records, flips or retracts a vote. A first vote inserts a row,
// repeating the same vote deletes it, voting the other way updates the
// row in place. The check-then-write runs inside one transaction so two
// concurrent casts from the same voter never leave two rows for one
// (voter, target) pair.
func (s *VoteService) Cast(voterID uint, target VoteTarget, value int) (string, error) {
	if value != 1 && value != -1 {
		return "", ErrInvalidVoteValue
	}
	if !target.valid() {
		return "", ErrInvalidTarget
	}

	var result string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkTargetExists(tx, target); err != nil {
			return err
		}

		query := tx.Where("user_id = ?", voterID)
		if target.ThreadID != nil {
			query = query.Where("thread_id = ?", *target.ThreadID)
		} else {
			query = query.Where("reply_id = ?", *target.ReplyID)
		}

		var existing models.Vote
		err := query.First(&existing).Error
		switch {
		case err == nil && existing.Value == value:
			// Same vote again -> retract
			result = VoteRemoved
			return tx.Delete(&existing).Error
		case err == nil:
			// Opposite vote -> flip in place
			result = VoteUpdated
			return tx.Model(&existing).UpdateColumn("value", value).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = VoteRecorded
			vote := models.Vote{
				UserID:   voterID,
				ThreadID: target.ThreadID,
				ReplyID:  target.ReplyID,
				Value:    value,
			}
			return tx.Create(&vote).Error
		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// NetScore returns the signed sum of all vote values on a target,
// 0 when nobody has voted.
func (s *VoteService) NetScore(target VoteTarget) (int, error) {
	if !target.valid() {
		return 0, ErrInvalidTarget
	}

	query := s.db.Model(&models.Vote{}).Select("COALESCE(SUM(value), 0)")
	if target.ThreadID != nil {
		query = query.Where("thread_id = ?", *target.ThreadID)
	} else {
		query = query.Where("reply_id = ?", *target.ReplyID)
	}

	var net int
	if err := query.Scan(&net).Error; err != nil {
		return 0, err
	}
	return net, nil
}

func checkTargetExists(tx *gorm.DB, target VoteTarget) error {
	var count int64
	if target.ThreadID != nil {
		if err := tx.Model(&models.Thread{}).Where("id = ?", *target.ThreadID).Count(&count).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Model(&models.Reply{}).Where("id = ?", *target.ReplyID).Count(&count).Error; err != nil {
			return err
		}
	}
	if count == 0 {
		return ErrTargetNotFound
	}
	return nil
}
