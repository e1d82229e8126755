package app

import (
	"testing"
	"time"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/testutils/rand"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

func TestScheduler(t *testing.T) {
	clock := &testClock{now: rand.Time()}
	start := clock.now
	scheduler := NewScheduler(dbm.NewMemDB(), clock, log.TestingLogger())

	_, ok := scheduler.NextDue()
	assert.False(t, ok)

	end := votingTypes.Task{Kind: votingTypes.RoundEnd, VotingID: 1, Round: 1}
	startA := votingTypes.Task{Kind: votingTypes.RoundStart, VotingID: 2, Round: 1}
	startB := votingTypes.Task{Kind: votingTypes.RoundStart, VotingID: 3, Round: 1}

	scheduler.Schedule(end, 2*time.Hour)
	scheduler.Schedule(startA, time.Hour)
	cancelled := scheduler.Schedule(startB, time.Hour)

	due, ok := scheduler.NextDue()
	assert.True(t, ok)
	assert.True(t, due.Equal(start.Add(time.Hour)))

	assert.Empty(t, scheduler.Due(start))

	scheduler.Cancel(cancelled)
	scheduler.Cancel(cancelled)
	assert.Equal(t, []votingTypes.Task{startA}, scheduler.Due(start.Add(90*time.Minute)))

	assert.Equal(t, []votingTypes.Task{end}, scheduler.Due(start.Add(2*time.Hour)))
	assert.Empty(t, scheduler.Due(start.Add(24*time.Hour)))

	_, ok = scheduler.NextDue()
	assert.False(t, ok)
}
