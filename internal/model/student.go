package model

// AnswerStatus is the teacher's verdict on a student's current answer.
type AnswerStatus string

const (
	AnswerNone    AnswerStatus = "none"
	AnswerCorrect AnswerStatus = "correct"
	AnswerWrong   AnswerStatus = "wrong"
)

// Role identifies what a connection is bound to within a room.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Teacher is the single moderator of a room.
type Teacher struct {
	ConnID string `json:"-"`
	Name   string `json:"name"`
}

// Student is a participant joined to a room. ID is the stable
// server-assigned identity; ConnID is the current transport address and
// is empty while the student is disconnected.
type Student struct {
	ID            string       `json:"id"`
	ConnID        string       `json:"-"`
	Name          string       `json:"name"`
	HasRaisedHand bool         `json:"hasRaisedHand"`
	Answer        string       `json:"answer"`
	AnswerStatus  AnswerStatus `json:"answerStatus"`
}
