package interfaces

import "context"

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
	// RunTick executes one poll-diff-notify cycle synchronously.
	RunTick(ctx context.Context)
}
