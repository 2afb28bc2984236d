package entity

// Todo mirrors the row shape returned by the todo stored procedures.
type Todo struct {
	ID         int64  `db:"id" json:"id"`
	AssignedTo int64  `db:"assigned_to" json:"assignedTo"`
	Task       string `db:"task" json:"task"`
	IsComplete bool   `db:"is_complete" json:"isComplete"`
}
