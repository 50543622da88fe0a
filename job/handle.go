package job

// Handle is the completion token of one scheduled task.
type Handle struct {
	done chan struct{}
	err  error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

func (h *Handle) finish(err error) {
	h.err = err
	close(h.done)
}

// Wait blocks until the task has finished and returns its error. A nil handle
// is already complete.
func (h *Handle) Wait() error {
	if h == nil {
		return nil
	}
	<-h.done
	return h.err
}

// Done is closed when the task has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) Completed() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
