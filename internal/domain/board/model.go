package board

// Column is a named workflow stage holding task IDs in display order.
type Column struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"task_ids"`
}

// Board is the ordered, left-to-right set of columns for a project.
type Board struct {
	ProjectID   string   `json:"project_id"`
	ProjectName string   `json:"project_name"`
	Columns     []Column `json:"columns"`
}

// Outcome reports whether a move changed the board.
type Outcome string

const (
	OutcomeMoved Outcome = "moved"
	OutcomeNoOp  Outcome = "no_op"
)

// NoOpReason explains why a move changed nothing.
type NoOpReason string

const (
	ReasonSameColumn NoOpReason = "same_column"
	ReasonNotPlaced  NoOpReason = "not_placed"
)

// MoveResult describes the effect of MoveTask.
type MoveResult struct {
	Outcome      Outcome    `json:"outcome"`
	Reason       NoOpReason `json:"reason,omitempty"`
	FromColumnID string     `json:"from_column_id,omitempty"`
	ToColumnID   string     `json:"to_column_id"`
	// ToColumnTitle is the target title as it was when the move committed.
	ToColumnTitle string `json:"to_column_title,omitempty"`
}

// Moved reports whether the board changed.
func (r MoveResult) Moved() bool {
	return r.Outcome == OutcomeMoved
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := *b
	out.Columns = make([]Column, len(b.Columns))
	for i, col := range b.Columns {
		out.Columns[i] = col.clone()
	}
	return &out
}

func (c Column) clone() Column {
	c.TaskIDs = append([]string{}, c.TaskIDs...)
	return c
}

// columnIndex returns the position of columnID, or -1.
func (b *Board) columnIndex(columnID string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return i
		}
	}
	return -1
}

// placement returns the column index and slot of taskID, or -1, -1.
func (b *Board) placement(taskID string) (int, int) {
	for i := range b.Columns {
		for j, id := range b.Columns[i].TaskIDs {
			if id == taskID {
				return i, j
			}
		}
	}
	return -1, -1
}

// TaskIDs returns every placed task ID in board order.
func (b *Board) TaskIDs() []string {
	var ids []string
	for _, col := range b.Columns {
		ids = append(ids, col.TaskIDs...)
	}
	return ids
}
