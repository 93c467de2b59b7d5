package domain

// Hook is a callback receiving a snapshot of the worker state at the moment of a transition.
type Hook func(state StateDTO)

// Hooks are executed on the worker goroutine, outside the control lock,
// when the worker observes a transition. A nil hook is skipped.
type Hooks struct {
	// OnSuspend runs when the worker reaches its checkpoint with the suspend flag set and is about to block.
	OnSuspend Hook

	// OnResume runs when a suspended worker wakes up and goes back to executing work units.
	OnResume Hook

	// OnStop runs when the worker leaves its loop with the Stopped status
	// (Stop, interrupted wait or aborted work unit). It is not called on completion.
	OnStop Hook

	// Finally always runs once, after the loop exits, whatever the reason.
	Finally Hook
}
