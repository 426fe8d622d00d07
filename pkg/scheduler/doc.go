// Package scheduler runs fire-and-forget background tasks with a fixed
// concurrency bound and cooperative cancellation.
//
// A Scheduler owns a fixed-capacity slot pool implemented as a buffered
// channel. Submit returns a Task handle immediately and launches the work on
// a detached goroutine: the goroutine acquires a slot (or cancels without
// running if shutdown has been signalled), performs a fixed-duration unit of
// simulated work racing against the shared cancellation signal, and releases
// the slot on the way out regardless of outcome.
//
// Task handles move through Pending → Running → Completed | Cancelled.
// Terminal states are final: a cancelled task never reports completion.
//
// # Usage
//
//	s := scheduler.New(
//		scheduler.WithCapacity(10),
//		scheduler.WithWorkDuration(2*time.Second),
//	)
//
//	task := s.Submit(s.NextTaskID())
//	// ... the caller does not wait; task.ID() is all the response needs.
//
//	// At shutdown:
//	s.Shutdown()
//	_ = s.Wait(ctx)
//
// Submission never fails. Outcomes are reported through logs and the Task
// handle only; callers that need completion signals can select on Done().
package scheduler
