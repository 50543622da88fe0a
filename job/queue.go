package job

import "sync"

// queue is an unbounded FIFO whose pop blocks while it is empty and open.
// Pushes never block, so a running task can schedule more work.
type queue struct {
	mx       sync.Mutex
	notEmpty *sync.Cond
	items    []*unit
	closed   bool
}

func newQueue() *queue {
	q := &queue{}
	q.notEmpty = sync.NewCond(&q.mx)
	return q
}

func (q *queue) push(u *unit) bool {
	q.mx.Lock()
	defer q.mx.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, u)
	q.notEmpty.Signal()
	return true
}

// pop waits for an item. After close it keeps returning queued items until
// the queue is drained, then reports false.
func (q *queue) pop() (*unit, bool) {
	q.mx.Lock()
	defer q.mx.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	u := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return u, true
}

func (q *queue) close() {
	q.mx.Lock()
	defer q.mx.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
}

func (q *queue) len() int {
	q.mx.Lock()
	defer q.mx.Unlock()
	return len(q.items)
}
