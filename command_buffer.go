package stockroom

import "github.com/rotisserie/eris"

type commandType int

const (
	cmdDestroy commandType = iota
	cmdRemove
	cmdClear
)

type command struct {
	typ    commandType
	entity Entity
	comps  []Component
}

// DestroyCommand records the destruction of e.
func DestroyCommand(e Entity) Command {
	return command{typ: cmdDestroy, entity: e}
}

// RemoveCommand records the removal of comps from e.
func RemoveCommand(e Entity, comps ...Component) Command {
	return command{typ: cmdRemove, entity: e, comps: comps}
}

// ClearCommand records the removal of comps from e, or of every component e
// carries at replay time when comps is empty.
func ClearCommand(e Entity, comps ...Component) Command {
	return command{typ: cmdClear, entity: e, comps: comps}
}

func (c command) Entity() Entity {
	return c.entity
}

func (c command) Execute(r Registry) error {
	switch c.typ {
	case cmdDestroy:
		return r.Destroy(c.entity)
	case cmdRemove:
		return r.Remove(c.entity, c.comps...)
	case cmdClear:
		comps := c.comps
		if len(comps) == 0 {
			comps = r.Components(c.entity)
		}
		return r.Remove(c.entity, comps...)
	}
	return nil
}

// CommandBuffer defers mutations until Execute, typically so they can be
// recorded while the registry is being iterated.
type CommandBuffer struct {
	registry Registry
	commands []Command
}

func (r *registry) CreateCommandBuffer() *CommandBuffer {
	return &CommandBuffer{registry: r}
}

func (b *CommandBuffer) AddCommand(cmd Command) {
	b.commands = append(b.commands, cmd)
}

func (b *CommandBuffer) Len() int {
	return len(b.commands)
}

// Execute replays the recorded commands in order, skipping those whose entity
// is no longer valid. It stops at the first failure. The buffer is emptied
// either way, unless the registry is locked.
func (b *CommandBuffer) Execute() error {
	if b.registry.Locked() {
		return LockedRegistryError{}
	}
	commands := b.commands
	b.commands = nil

	reg, _ := b.registry.(*registry)
	for i, cmd := range commands {
		if !b.registry.Valid(cmd.Entity()) {
			continue
		}
		if err := cmd.Execute(b.registry); err != nil {
			return eris.Wrapf(err, "failed to execute buffered command %d for %v", i, cmd.Entity())
		}
		if reg != nil {
			reg.metrics.recordCommandExecuted()
		}
	}
	return nil
}
