package services

import (
	"fmt"
	"testing"
	"time"

	"edusphere/internal/models"
	"edusphere/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLeaderboard(gdb *gorm.DB) *LeaderboardService {
	return NewLeaderboardService(gdb, utils.NewCache(16))
}

func voteOn(t *testing.T, gdb *gorm.DB, voter models.User, target VoteTarget, value int, createdAt time.Time) {
	t.Helper()
	vote := models.Vote{
		UserID:    voter.ID,
		ThreadID:  target.ThreadID,
		ReplyID:   target.ReplyID,
		Value:     value,
		CreatedAt: createdAt,
	}
	require.NoError(t, gdb.Create(&vote).Error)
}

func TestLeaderboardPointsFormula(t *testing.T) {
	gdb := newTestDB(t)
	svc := newLeaderboard(gdb)
	now := time.Now()

	scorer := createUser(t, gdb, "scorer")
	other := createUser(t, gdb, "other")

	// 2 threads, 3 replies, +4 net votes received -> 5*2 + 2*3 + 4 = 20
	t1 := createThread(t, gdb, scorer, now)
	t2 := createThread(t, gdb, scorer, now)
	host := createThread(t, gdb, other, now)
	r1 := createReply(t, gdb, scorer, host, now)
	createReply(t, gdb, scorer, host, now)
	createReply(t, gdb, scorer, host, now)

	voteOn(t, gdb, other, threadTarget(t1.ID), 1, now)
	voteOn(t, gdb, other, threadTarget(t2.ID), 1, now)
	voteOn(t, gdb, other, replyTarget(r1.ID), 1, now)
	extra := createUser(t, gdb, "extra")
	voteOn(t, gdb, extra, replyTarget(r1.ID), 1, now)

	entries, err := svc.Compute(WindowLifetime)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	assert.Equal(t, scorer.ID, entries[0].ID)
	assert.Equal(t, "scorer", entries[0].Username)
	assert.Equal(t, 20, entries[0].Points)
}

func TestLeaderboardVotesCountForTheAuthor(t *testing.T) {
	gdb := newTestDB(t)
	svc := newLeaderboard(gdb)
	now := time.Now()

	author := createUser(t, gdb, "author")
	voter := createUser(t, gdb, "voter")
	thread := createThread(t, gdb, author, now)

	// A downvote received lowers the author's points, not the voter's
	voteOn(t, gdb, voter, threadTarget(thread.ID), -1, now)

	entries, err := svc.Compute(WindowLifetime)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byID := map[uint]int{}
	for _, e := range entries {
		byID[e.ID] = e.Points
	}
	assert.Equal(t, 5-1, byID[author.ID])
	assert.Equal(t, 0, byID[voter.ID])
}

func TestLeaderboardOrderingAndCap(t *testing.T) {
	gdb := newTestDB(t)
	svc := newLeaderboard(gdb)
	now := time.Now()

	for i := 0; i < 12; i++ {
		user := createUser(t, gdb, fmt.Sprintf("user%02d", i))
		for j := 0; j < i%5; j++ {
			createThread(t, gdb, user, now)
		}
	}

	entries, err := svc.Compute(WindowLifetime)
	require.NoError(t, err)
	assert.Len(t, entries, 10)

	for i := 1; i < len(entries); i++ {
		if entries[i-1].Points == entries[i].Points {
			// Ties break by user id ascending
			assert.Less(t, entries[i-1].ID, entries[i].ID)
		} else {
			assert.Greater(t, entries[i-1].Points, entries[i].Points)
		}
	}
}

func TestLeaderboardWeeklyWindow(t *testing.T) {
	gdb := newTestDB(t)
	svc := newLeaderboard(gdb)
	now := time.Now()
	old := now.AddDate(0, 0, -8)

	veteran := createUser(t, gdb, "veteran")
	rookie := createUser(t, gdb, "rookie")

	createThread(t, gdb, veteran, old) // outside the trailing week
	createThread(t, gdb, rookie, now)

	weekly, err := svc.Compute(WindowWeekly)
	require.NoError(t, err)
	require.Len(t, weekly, 2)
	assert.Equal(t, rookie.ID, weekly[0].ID)
	assert.Equal(t, 5, weekly[0].Points)
	assert.Equal(t, veteran.ID, weekly[1].ID)
	assert.Equal(t, 0, weekly[1].Points)

	lifetime, err := svc.Compute(WindowLifetime)
	require.NoError(t, err)
	byID := map[uint]int{}
	for _, e := range lifetime {
		byID[e.ID] = e.Points
	}
	assert.Equal(t, 5, byID[veteran.ID])
	assert.Equal(t, 5, byID[rookie.ID])
}

func TestLeaderboardZeroPointUsersIncluded(t *testing.T) {
	gdb := newTestDB(t)
	svc := newLeaderboard(gdb)

	createUser(t, gdb, "lurker")

	entries, err := svc.Compute(WindowLifetime)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Points)
}

func TestLeaderboardCacheInvalidation(t *testing.T) {
	gdb := newTestDB(t)
	svc := newLeaderboard(gdb)
	now := time.Now()

	user := createUser(t, gdb, "poster")
	createThread(t, gdb, user, now)

	entries, err := svc.Compute(WindowLifetime)
	require.NoError(t, err)
	require.Equal(t, 5, entries[0].Points)

	createThread(t, gdb, user, now)

	// Cached result until a write invalidates it
	entries, err = svc.Compute(WindowLifetime)
	require.NoError(t, err)
	assert.Equal(t, 5, entries[0].Points)

	svc.Invalidate()
	entries, err = svc.Compute(WindowLifetime)
	require.NoError(t, err)
	assert.Equal(t, 10, entries[0].Points)
}

func TestLeaderboardInvalidWindow(t *testing.T) {
	gdb := newTestDB(t)
	svc := newLeaderboard(gdb)

	_, err := svc.Compute("monthly")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
