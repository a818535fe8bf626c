package services

import (
	"fmt"
	"testing"
	"time"

	"edusphere/internal/db"
	"edusphere/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database per test, shared across the pool's
	// connections so the schema survives
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Email:      username + "@college.edu",
		Name:       username,
		Username:   username,
		RollNumber: "RN-" + username,
		Password:   "x",
	}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

func createThread(t *testing.T, gdb *gorm.DB, author models.User, createdAt time.Time) models.Thread {
	t.Helper()
	thread := models.Thread{
		UserID:    author.ID,
		Subforum:  "general",
		Title:     "title",
		Content:   "content",
		CreatedAt: createdAt,
	}
	require.NoError(t, gdb.Create(&thread).Error)
	return thread
}

func createReply(t *testing.T, gdb *gorm.DB, author models.User, thread models.Thread, createdAt time.Time) models.Reply {
	t.Helper()
	reply := models.Reply{
		UserID:    author.ID,
		ThreadID:  thread.ID,
		Content:   "reply",
		CreatedAt: createdAt,
	}
	require.NoError(t, gdb.Create(&reply).Error)
	return reply
}

func threadTarget(id uint) VoteTarget { return VoteTarget{ThreadID: &id} }
func replyTarget(id uint) VoteTarget  { return VoteTarget{ReplyID: &id} }

func TestCastVoteToggle(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	author := createUser(t, gdb, "author")
	voter := createUser(t, gdb, "voter")
	thread := createThread(t, gdb, author, time.Now())

	result, err := svc.Cast(voter.ID, threadTarget(thread.ID), 1)
	require.NoError(t, err)
	assert.Equal(t, VoteRecorded, result)

	net, err := svc.NetScore(threadTarget(thread.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, net)

	// Same vote again retracts it
	result, err = svc.Cast(voter.ID, threadTarget(thread.ID), 1)
	require.NoError(t, err)
	assert.Equal(t, VoteRemoved, result)

	net, err = svc.NetScore(threadTarget(thread.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, net)

	var count int64
	gdb.Model(&models.Vote{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCastVoteFlip(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	author := createUser(t, gdb, "author")
	voter := createUser(t, gdb, "voter")
	thread := createThread(t, gdb, author, time.Now())
	reply := createReply(t, gdb, voter, thread, time.Now())

	_, err := svc.Cast(voter.ID, replyTarget(reply.ID), 1)
	require.NoError(t, err)

	result, err := svc.Cast(voter.ID, replyTarget(reply.ID), -1)
	require.NoError(t, err)
	assert.Equal(t, VoteUpdated, result)

	// Exactly one row, flipped in place
	var votes []models.Vote
	require.NoError(t, gdb.Find(&votes).Error)
	require.Len(t, votes, 1)
	assert.Equal(t, -1, votes[0].Value)

	net, err := svc.NetScore(replyTarget(reply.ID))
	require.NoError(t, err)
	assert.Equal(t, -1, net)
}

func TestCastVoteValidation(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	author := createUser(t, gdb, "author")
	voter := createUser(t, gdb, "voter")
	thread := createThread(t, gdb, author, time.Now())
	reply := createReply(t, gdb, author, thread, time.Now())

	_, err := svc.Cast(voter.ID, VoteTarget{}, 1)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.Cast(voter.ID, VoteTarget{ThreadID: &thread.ID, ReplyID: &reply.ID}, 1)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.Cast(voter.ID, threadTarget(thread.ID), 2)
	assert.ErrorIs(t, err, ErrInvalidVoteValue)

	_, err = svc.Cast(voter.ID, threadTarget(thread.ID+999), 1)
	assert.ErrorIs(t, err, ErrTargetNotFound)

	_, err = svc.Cast(voter.ID, replyTarget(reply.ID+999), -1)
	assert.ErrorIs(t, err, ErrTargetNotFound)

	// Nothing was written along the way
	var count int64
	gdb.Model(&models.Vote{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestNetScoreAdditivity(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	author := createUser(t, gdb, "author")
	thread := createThread(t, gdb, author, time.Now())

	values := []int{1, 1, -1, 1, -1, 1}
	sum := 0
	for i, v := range values {
		voter := createUser(t, gdb, fmt.Sprintf("voter%d", i))
		_, err := svc.Cast(voter.ID, threadTarget(thread.ID), v)
		require.NoError(t, err)
		sum += v
	}

	net, err := svc.NetScore(threadTarget(thread.ID))
	require.NoError(t, err)
	assert.Equal(t, sum, net)
}

func TestNetScoreUnvotedTarget(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	author := createUser(t, gdb, "author")
	thread := createThread(t, gdb, author, time.Now())

	net, err := svc.NetScore(threadTarget(thread.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, net)
}
