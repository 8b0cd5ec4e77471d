package client

import (
	"testing"

	"github.com/uripeled2/classroom-participation-app/internal/model"
	"github.com/uripeled2/classroom-participation-app/internal/protocol"
)

func event(t *testing.T, evt protocol.EventType, payload interface{}) *protocol.Envelope {
	t.Helper()
	env, err := protocol.NewEnvelope(evt, payload)
	if err != nil {
		t.Fatalf("encode %s: %v", evt, err)
	}
	return env
}

func joinedAs(t *testing.T, st *StudentState, id string) {
	t.Helper()
	if err := st.Apply(event(t, protocol.EvtRoomJoined, protocol.RoomJoinedPayload{
		RoomCode:    st.RoomCode,
		Student:     model.Student{ID: id, Name: "Sam", AnswerStatus: model.AnswerNone},
		RejoinToken: "tok",
	})); err != nil {
		t.Fatal(err)
	}
}

func TestStudentReducer_QuestionRound(t *testing.T) {
	st := NewStudentState("AB12")
	joinedAs(t, st, "s1")
	if st.SelfID != "s1" || st.RejoinToken != "tok" {
		t.Fatalf("join ack not applied: %+v", st)
	}

	st.Apply(event(t, protocol.EvtQuestionAsked, nil))
	if st.Status != StatusQuestion || st.HasRaisedHand || st.Answer != "" {
		t.Errorf("after question-asked: %+v", st)
	}

	st.RaiseHand()
	if !st.HasRaisedHand {
		t.Error("local raise not recorded during question")
	}

	st.Apply(event(t, protocol.EvtTimerStart, protocol.TimerStartPayload{DurationSeconds: 3}))
	if st.Status != StatusTimer || st.TimerSeconds != 3 {
		t.Errorf("after timer-start: %+v", st)
	}

	// Local countdown only; nothing is reported upstream.
	st.Tick()
	st.Tick()
	if st.TimerSeconds != 1 {
		t.Errorf("timer = %d after two ticks, want 1", st.TimerSeconds)
	}
	st.Tick()
	st.Tick()
	if st.TimerSeconds != 0 {
		t.Errorf("timer must not go below zero, got %d", st.TimerSeconds)
	}

	st.Apply(event(t, protocol.EvtSelected, "s1"))
	if st.Status != StatusSelected || !st.IsSelected {
		t.Errorf("after selected(self): %+v", st)
	}

	st.Apply(event(t, protocol.EvtSelected, "s2"))
	if st.IsSelected {
		t.Error("selected(other) must clear the self flag")
	}
}

func TestStudentReducer_Answers(t *testing.T) {
	st := NewStudentState("AB12")
	joinedAs(t, st, "s1")
	st.Apply(event(t, protocol.EvtQuestionAsked, nil))

	st.Apply(event(t, protocol.EvtAnswerUpdated, protocol.AnswerUpdatedPayload{
		StudentID: "s1", Answer: "42", AnswerStatus: model.AnswerNone,
	}))
	if st.Answer != "42" || st.AnswerStatus != model.AnswerNone {
		t.Errorf("after own answer-updated: %+v", st)
	}

	// Another student's events never touch local answer state.
	st.Apply(event(t, protocol.EvtAnswerUpdated, protocol.AnswerUpdatedPayload{
		StudentID: "s2", Answer: "13", AnswerStatus: model.AnswerNone,
	}))
	st.Apply(event(t, protocol.EvtAnswerMarked, protocol.AnswerMarkedPayload{
		StudentID: "s2", AnswerStatus: model.AnswerWrong,
	}))
	if st.Answer != "42" || st.AnswerStatus != model.AnswerNone {
		t.Errorf("foreign events leaked into local state: %+v", st)
	}

	st.Apply(event(t, protocol.EvtAnswerMarked, protocol.AnswerMarkedPayload{
		StudentID: "s1", AnswerStatus: model.AnswerCorrect,
	}))
	if st.AnswerStatus != model.AnswerCorrect {
		t.Errorf("after own answer-marked: %+v", st)
	}
}

func TestStudentReducer_ResetAndClose(t *testing.T) {
	st := NewStudentState("AB12")
	joinedAs(t, st, "s1")
	st.Apply(event(t, protocol.EvtQuestionAsked, nil))
	st.RaiseHand()
	st.Apply(event(t, protocol.EvtAnswerUpdated, protocol.AnswerUpdatedPayload{
		StudentID: "s1", Answer: "42", AnswerStatus: model.AnswerNone,
	}))

	st.Apply(event(t, protocol.EvtRoomReset, nil))
	if st.Status != StatusWaiting || st.HasRaisedHand || st.Answer != "" || st.AnswerStatus != model.AnswerNone {
		t.Errorf("after room-reset: %+v", st)
	}

	st.Apply(event(t, protocol.EvtRoomClosed, nil))
	if !st.Closed {
		t.Error("room-closed not applied")
	}
}

func TestStudentReducer_JoinError(t *testing.T) {
	st := NewStudentState("NOPE")
	st.Apply(event(t, protocol.EvtJoinError, "Room does not exist"))
	if st.JoinError != "Room does not exist" {
		t.Errorf("join error = %q", st.JoinError)
	}
}

func TestStudentReducer_NoRaiseOutsideQuestion(t *testing.T) {
	st := NewStudentState("AB12")
	joinedAs(t, st, "s1")

	st.RaiseHand()
	if st.HasRaisedHand {
		t.Error("raise must be a no-op while waiting")
	}

	st.Apply(event(t, protocol.EvtQuestionAsked, nil))
	st.Apply(event(t, protocol.EvtSelected, "s2"))
	st.RaiseHand()
	if st.HasRaisedHand {
		t.Error("raise must be a no-op after selection")
	}
}
