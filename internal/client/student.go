// Package client holds the state machines mirrored on the teacher and
// student sides of the protocol. They consume the same broadcast events
// the authority emits and must reach the same logical state as the room
// after any event sequence; the timer countdown and the random student
// pick are the only purely local behaviors.
package client

import (
	"github.com/uripeled2/classroom-participation-app/internal/model"
	"github.com/uripeled2/classroom-participation-app/internal/protocol"
)

// StudentStatus is the student view's high-level mode.
type StudentStatus string

const (
	StatusWaiting  StudentStatus = "waiting"
	StatusQuestion StudentStatus = "question"
	StatusTimer    StudentStatus = "timer"
	StatusSelected StudentStatus = "selected"
)

// StudentState is the student-side reducer.
type StudentState struct {
	RoomCode    string
	SelfID      string
	RejoinToken string

	Status        StudentStatus
	HasRaisedHand bool
	IsSelected    bool
	TimerSeconds  int
	Answer        string
	AnswerStatus  model.AnswerStatus

	JoinError string
	Closed    bool
}

// NewStudentState creates the reducer for a student joining roomCode.
func NewStudentState(roomCode string) *StudentState {
	return &StudentState{
		RoomCode:     roomCode,
		Status:       StatusWaiting,
		AnswerStatus: model.AnswerNone,
	}
}

// Apply consumes one outbound event from the authority.
func (st *StudentState) Apply(env *protocol.Envelope) error {
	switch env.Type {
	case protocol.EvtRoomJoined:
		var p protocol.RoomJoinedPayload
		if err := env.Decode(&p); err != nil {
			return err
		}
		st.SelfID = p.Student.ID
		st.RejoinToken = p.RejoinToken
		st.Answer = p.Student.Answer
		st.AnswerStatus = p.Student.AnswerStatus

	case protocol.EvtJoinError:
		var msg string
		if err := env.Decode(&msg); err != nil {
			return err
		}
		st.JoinError = msg

	case protocol.EvtQuestionAsked:
		st.Status = StatusQuestion
		st.HasRaisedHand = false
		st.IsSelected = false
		st.Answer = ""

	case protocol.EvtTimerStart:
		var p protocol.TimerStartPayload
		if err := env.Decode(&p); err != nil {
			return err
		}
		st.Status = StatusTimer
		st.TimerSeconds = p.DurationSeconds

	case protocol.EvtSelected:
		var id string
		if err := env.Decode(&id); err != nil {
			return err
		}
		st.IsSelected = id == st.SelfID
		st.Status = StatusSelected

	case protocol.EvtAnswerUpdated:
		var p protocol.AnswerUpdatedPayload
		if err := env.Decode(&p); err != nil {
			return err
		}
		if p.StudentID == st.SelfID {
			st.Answer = p.Answer
			st.AnswerStatus = p.AnswerStatus
		}

	case protocol.EvtAnswerMarked:
		var p protocol.AnswerMarkedPayload
		if err := env.Decode(&p); err != nil {
			return err
		}
		if p.StudentID == st.SelfID {
			st.AnswerStatus = p.AnswerStatus
		}

	case protocol.EvtRoomReset:
		st.Status = StatusWaiting
		st.HasRaisedHand = false
		st.IsSelected = false
		st.TimerSeconds = 0
		st.Answer = ""
		st.AnswerStatus = model.AnswerNone

	case protocol.EvtRoomClosed:
		st.Closed = true
	}
	return nil
}

// CanAnswer reports whether the question UI accepts input.
func (st *StudentState) CanAnswer() bool {
	return st.Status == StatusQuestion || st.Status == StatusTimer
}

// RaiseHand records the local raise before the event is sent; the
// authority echoes it only to the teacher.
func (st *StudentState) RaiseHand() {
	if st.CanAnswer() {
		st.HasRaisedHand = true
	}
}

// Tick decrements the local countdown once. Each receiver counts down on
// its own clock; the authority never learns about expiry.
func (st *StudentState) Tick() {
	if st.Status == StatusTimer && st.TimerSeconds > 0 {
		st.TimerSeconds--
	}
}
