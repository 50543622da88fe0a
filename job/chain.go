package job

// Chain schedules tasks that each wait for the one scheduled before them.
type Chain struct {
	pool *Pool
	last *Handle
}

func NewChain(pool *Pool) *Chain {
	return &Chain{pool: pool}
}

// Then schedules task after the previous link and any extra deps.
func (c *Chain) Then(task Task, deps ...*Handle) (*Handle, error) {
	h, err := c.pool.Schedule(task, append(deps[:len(deps):len(deps)], c.last)...)
	if err != nil {
		return nil, err
	}
	c.last = h
	return h, nil
}

func (c *Chain) Last() *Handle {
	return c.last
}

// Wait blocks until the last scheduled link has finished.
func (c *Chain) Wait() error {
	return c.last.Wait()
}
