package outbound

// TaskDispatcher schedules pipeline work on a shared worker pool.
// *ants.Pool satisfies it.
type TaskDispatcher interface {
	Submit(task func()) error
}
