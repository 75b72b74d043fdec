package domain

// Comment belongs to a task. LikeCount only ever increases.
// Author is the commenting user's first name, filled in by the
// repository when listing a task's comments.
type Comment struct {
	ID        int64
	Text      string
	TaskID    int64
	UserID    int64
	LikeCount int
	Author    string
}
