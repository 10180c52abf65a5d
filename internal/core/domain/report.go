package domain

// ClosedTaskKey is the grouping tuple of the closed-task report.
type ClosedTaskKey struct {
	TeamID    string
	OwnerID   string
	ProjectID string
}

// ClosedTaskCount is one row of the closed-task report.
type ClosedTaskCount struct {
	ClosedTaskKey
	Count int
}

// ClosedTaskCounter is a single-pass group-by-count over completed tasks.
// Rows come back in the order their key was first seen.
type ClosedTaskCounter struct {
	index map[ClosedTaskKey]int
	rows  []ClosedTaskCount
}

func NewClosedTaskCounter() *ClosedTaskCounter {
	return &ClosedTaskCounter{index: make(map[ClosedTaskKey]int)}
}

// Add counts one completed task under key.
func (c *ClosedTaskCounter) Add(key ClosedTaskKey) {
	if i, ok := c.index[key]; ok {
		c.rows[i].Count++
		return
	}
	c.index[key] = len(c.rows)
	c.rows = append(c.rows, ClosedTaskCount{ClosedTaskKey: key, Count: 1})
}

// Rows returns the accumulated counts.
func (c *ClosedTaskCounter) Rows() []ClosedTaskCount {
	out := make([]ClosedTaskCount, len(c.rows))
	copy(out, c.rows)
	return out
}
