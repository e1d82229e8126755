package app

import (
	"time"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"

	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

type scheduledTask struct {
	Due  time.Time        `json:"due"`
	Task votingTypes.Task `json:"task"`
}

var _ votingTypes.Scheduler = &Scheduler{}

// Scheduler is a persistent timer queue for voting round transitions
type Scheduler struct {
	queue  utils.Queue[scheduledTask]
	clock  utils.Clock
	logger log.Logger
}

// NewScheduler returns a scheduler persisting its tasks in the given database
func NewScheduler(db dbm.DB, clock utils.Clock, logger log.Logger) *Scheduler {
	store := utils.NewKVStore(db, key.FromStr("scheduler"))

	return &Scheduler{
		queue:  utils.NewQueue(key.FromStr("tasks"), store, func(t scheduledTask) key.Key { return key.FromTime(t.Due) }),
		clock:  clock,
		logger: logger.With("module", "scheduler"),
	}
}

// Schedule queues the task to be due after the given delay
func (s *Scheduler) Schedule(task votingTypes.Task, delay time.Duration) uint64 {
	due := s.clock.Now().Add(delay)
	handle := s.queue.Enqueue(scheduledTask{Due: due, Task: task})

	s.logger.Debug("scheduled task", "task", task.String(), "due", due, "handle", handle)

	return handle
}

// Cancel removes a queued task. Cancelling a delivered task is a no-op.
func (s *Scheduler) Cancel(handle uint64) {
	if s.queue.Delete(handle) {
		s.logger.Debug("cancelled task", "handle", handle)
	}
}

// Due dequeues all tasks that are due at the given time, earliest first
func (s *Scheduler) Due(now time.Time) []votingTypes.Task {
	var tasks []votingTypes.Task

	var next scheduledTask
	for s.queue.DequeueIf(&next, func(t scheduledTask) bool { return !t.Due.After(now) }) {
		tasks = append(tasks, next.Task)
	}

	return tasks
}

// NextDue returns the time the earliest queued task is due
func (s *Scheduler) NextDue() (time.Time, bool) {
	var next scheduledTask
	if !s.queue.Peek(&next) {
		return time.Time{}, false
	}

	return next.Due, true
}
