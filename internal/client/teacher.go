package client

import (
	"github.com/uripeled2/classroom-participation-app/internal/model"
	"github.com/uripeled2/classroom-participation-app/internal/protocol"
)

// TeacherState is the teacher-side reducer: the roster plus question and
// timer state, kept in lockstep with the room by applying the same
// events.
type TeacherState struct {
	RoomCode string
	Students []model.Student

	QuestionActive bool
	SelectedID     string

	TimerSeconds int
	Counting     bool
}

// NewTeacherState creates the reducer for the teacher of roomCode.
func NewTeacherState(roomCode string) *TeacherState {
	return &TeacherState{RoomCode: roomCode}
}

// Apply consumes one outbound event from the authority.
func (ts *TeacherState) Apply(env *protocol.Envelope) error {
	switch env.Type {
	case protocol.EvtStudentJoined:
		var s model.Student
		if err := env.Decode(&s); err != nil {
			return err
		}
		ts.upsert(s)

	case protocol.EvtStudentLeft:
		var id string
		if err := env.Decode(&id); err != nil {
			return err
		}
		kept := ts.Students[:0]
		for _, s := range ts.Students {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		ts.Students = kept
		if ts.SelectedID == id {
			ts.SelectedID = ""
		}

	case protocol.EvtHandRaised:
		var id string
		if err := env.Decode(&id); err != nil {
			return err
		}
		for i := range ts.Students {
			if ts.Students[i].ID == id {
				ts.Students[i].HasRaisedHand = true
			}
		}

	case protocol.EvtAnswerUpdated:
		var p protocol.AnswerUpdatedPayload
		if err := env.Decode(&p); err != nil {
			return err
		}
		for i := range ts.Students {
			if ts.Students[i].ID == p.StudentID {
				ts.Students[i].Answer = p.Answer
				ts.Students[i].AnswerStatus = p.AnswerStatus
			}
		}

	case protocol.EvtAnswerMarked:
		var p protocol.AnswerMarkedPayload
		if err := env.Decode(&p); err != nil {
			return err
		}
		for i := range ts.Students {
			if ts.Students[i].ID == p.StudentID {
				ts.Students[i].AnswerStatus = p.AnswerStatus
			}
		}

	case protocol.EvtSelected:
		var id string
		if err := env.Decode(&id); err != nil {
			return err
		}
		ts.SelectedID = id
		ts.QuestionActive = false
		ts.Counting = false

	case protocol.EvtRoomReset:
		ts.QuestionActive = false
		ts.SelectedID = ""
		ts.Counting = false
		ts.TimerSeconds = 0
		for i := range ts.Students {
			ts.Students[i].HasRaisedHand = false
			ts.Students[i].Answer = ""
			ts.Students[i].AnswerStatus = model.AnswerNone
		}
	}
	return nil
}

// AskQuestion records the local transition made alongside emitting
// ask-question (the authority excludes the initiator from the
// question-asked broadcast).
func (ts *TeacherState) AskQuestion() {
	if ts.QuestionActive {
		return
	}
	ts.QuestionActive = true
	ts.SelectedID = ""
	for i := range ts.Students {
		ts.Students[i].HasRaisedHand = false
	}
}

// StartTimer begins the local countdown alongside emitting timer-started.
func (ts *TeacherState) StartTimer(seconds int) {
	ts.TimerSeconds = seconds
	ts.Counting = true
}

// Tick decrements the countdown once and reports whether it just expired,
// which is the cue to pick a student.
func (ts *TeacherState) Tick() bool {
	if !ts.Counting {
		return false
	}
	if ts.TimerSeconds > 0 {
		ts.TimerSeconds--
	}
	if ts.TimerSeconds == 0 {
		ts.Counting = false
		return true
	}
	return false
}

func (ts *TeacherState) upsert(s model.Student) {
	for i := range ts.Students {
		if ts.Students[i].ID == s.ID {
			ts.Students[i] = s
			return
		}
	}
	ts.Students = append(ts.Students, s)
}
