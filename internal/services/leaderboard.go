package services

import (
	"fmt"
	"time"

	"edusphere/internal/utils"

	"gorm.io/gorm"
)

// Leaderboard windows
const (
	WindowWeekly   = "weekly"
	WindowLifetime = "lifetime"
)

const (
	leaderboardLimit = 10
	leaderboardTTL   = 30 * time.Second

	pointsPerThread = 5
	pointsPerReply  = 2
)

var ErrInvalidWindow = fmt.Errorf("window must be %q or %q", WindowWeekly, WindowLifetime)

type LeaderboardEntry struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	RollNumber string `json:"roll_number"`
	Points     int    `json:"points"`
}

// LeaderboardService derives user rankings from thread/reply authorship
// and received votes. Results are recomputed from the database; a short
// TTL cache in front absorbs bursts and is invalidated on every write
// that can move the ranking.
type LeaderboardService struct {
	db    *gorm.DB
	cache *utils.Cache
}

func NewLeaderboardService(gdb *gorm.DB, cache *utils.Cache) *LeaderboardService {
	return &LeaderboardService{db: gdb, cache: cache}
}

// Compute returns the top users for the window, points descending,
// user id ascending on ties, capped at 10. Every user is a candidate,
// so users with no qualifying activity can appear with 0 points while
// the board is short.
func (s *LeaderboardService) Compute(window string) ([]LeaderboardEntry, error) {
	if window != WindowWeekly && window != WindowLifetime {
		return nil, ErrInvalidWindow
	}

	key := "leaderboard:" + window
	if cached := s.cache.Get(key); cached != nil {
		return cached.([]LeaderboardEntry), nil
	}

	threadCond, replyCond, voteCond := "", "", ""
	args := []interface{}{}
	if window == WindowWeekly {
		cutoff := time.Now().AddDate(0, 0, -7)
		threadCond = " AND t.created_at >= ?"
		replyCond = " AND r.created_at >= ?"
		voteCond = " AND v.created_at >= ?"
		args = append(args, cutoff, cutoff, cutoff)
	}

	// Points: 5 per thread, 2 per reply, plus the signed sum of votes
	// received on the user's threads and replies.
	query := fmt.Sprintf(`
SELECT u.id, u.username, u.roll_number,
       COALESCE((SELECT COUNT(*) * %d FROM threads t WHERE t.user_id = u.id%s), 0) +
       COALESCE((SELECT COUNT(*) * %d FROM replies r WHERE r.user_id = u.id%s), 0) +
       COALESCE((SELECT SUM(v.value)
                   FROM votes v
                   LEFT JOIN threads vt ON v.thread_id = vt.id
                   LEFT JOIN replies vr ON v.reply_id = vr.id
                  WHERE (vt.user_id = u.id OR vr.user_id = u.id)%s), 0) AS points
  FROM users u
 ORDER BY points DESC, u.id ASC
 LIMIT %d`,
		pointsPerThread, threadCond,
		pointsPerReply, replyCond,
		voteCond,
		leaderboardLimit)

	var entries []LeaderboardEntry
	if err := s.db.Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, err
	}

	s.cache.Set(key, entries, leaderboardTTL)
	return entries, nil
}

// Invalidate drops both cached boards. Called after any vote, thread
// or reply write.
func (s *LeaderboardService) Invalidate() {
	s.cache.Delete("leaderboard:" + WindowWeekly)
	s.cache.Delete("leaderboard:" + WindowLifetime)
}
