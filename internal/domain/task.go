package domain

// Task is a board entry. CreatedDate is stored as "MM-DD-YYYY",
// stamped with the server clock when the task is created.
type Task struct {
	ID          int64
	Title       string
	Text        string
	CreatedDate string
	UserID      int64
}
