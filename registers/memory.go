package registers

import "sync"

// WriteHook observes a register write after it has been stored.
type WriteHook func(m *Memory, v uint32)

// ReadHook runs before a register read and may update the stored value,
// which is how tests model hardware that changes state between polls.
type ReadHook func(m *Memory)

// Memory is a File backed by an in-memory register map. Unset registers
// read as zero.
type Memory struct {
	mu      sync.Mutex
	regs    map[Register]uint32
	writes  map[Register]WriteHook
	reads   map[Register]ReadHook
	history []Access
}

// Access records one register write, in order.
type Access struct {
	Reg   Register
	Value uint32
}

// NewMemory returns an empty register map.
func NewMemory() *Memory {
	return &Memory{
		regs:   make(map[Register]uint32),
		writes: make(map[Register]WriteHook),
		reads:  make(map[Register]ReadHook),
	}
}

func (m *Memory) Read(r Register) uint32 {
	m.mu.Lock()
	hook := m.reads[r]
	m.mu.Unlock()
	if hook != nil {
		hook(m)
	}
	return m.Peek(r)
}

func (m *Memory) Write(r Register, v uint32) {
	m.mu.Lock()
	m.regs[r] = v
	m.history = append(m.history, Access{Reg: r, Value: v})
	hook := m.writes[r]
	m.mu.Unlock()
	if hook != nil {
		hook(m, v)
	}
}

// Peek reads a register without running hooks.
func (m *Memory) Peek(r Register) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[r]
}

// Set stores a register without running hooks or recording history; it
// stands in for the hardware side updating a status or event register.
func (m *Memory) Set(r Register, v uint32) {
	m.mu.Lock()
	m.regs[r] = v
	m.mu.Unlock()
}

// OnWrite installs a hook for writes to r, replacing any previous one.
func (m *Memory) OnWrite(r Register, h WriteHook) {
	m.mu.Lock()
	m.writes[r] = h
	m.mu.Unlock()
}

// OnRead installs a hook for reads of r, replacing any previous one.
func (m *Memory) OnRead(r Register, h ReadHook) {
	m.mu.Lock()
	m.reads[r] = h
	m.mu.Unlock()
}

// Writes returns a copy of the write history.
func (m *Memory) Writes() []Access {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Access, len(m.history))
	copy(out, m.history)
	return out
}

// ClearWrites drops the recorded write history.
func (m *Memory) ClearWrites() {
	m.mu.Lock()
	m.history = m.history[:0]
	m.mu.Unlock()
}
