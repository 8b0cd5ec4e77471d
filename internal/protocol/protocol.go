package protocol

import "encoding/json"

// EventType defines the type of WebSocket message
type EventType string

// Inbound event types (client -> server)
const (
	EvtCreateRoom      EventType = "create-room"
	EvtJoinRoom        EventType = "join-room"
	EvtAskQuestion     EventType = "ask-question"
	EvtRaiseHand       EventType = "raise-hand"
	EvtAnswerSubmitted EventType = "answer-submitted"
	EvtMarkAnswer      EventType = "mark-answer"
	EvtTimerStarted    EventType = "timer-started"
	EvtStudentSelected EventType = "student-selected"
	EvtResetRoom       EventType = "reset-room"
)

// Outbound event types (server -> client)
const (
	EvtRoomCreated   EventType = "room-created"
	EvtCreateError   EventType = "create-error"
	EvtRoomJoined    EventType = "room-joined"
	EvtJoinError     EventType = "join-error"
	EvtStudentJoined EventType = "student-joined"
	EvtStudentLeft   EventType = "student-left"
	EvtHandRaised    EventType = "hand-raised"
	EvtQuestionAsked EventType = "question-asked"
	EvtAnswerUpdated EventType = "answer-updated"
	EvtAnswerMarked  EventType = "answer-marked"
	EvtTimerStart    EventType = "timer-start"
	EvtSelected      EventType = "selected"
	EvtRoomReset     EventType = "room-reset"
	EvtRoomClosed    EventType = "room-closed"
)

// Envelope is the WebSocket wire format for every event in both directions.
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope wraps a payload value into an envelope. A nil payload
// produces an envelope with no payload field (question-asked, room-reset,
// room-closed).
func NewEnvelope(t EventType, payload interface{}) (*Envelope, error) {
	env := &Envelope{Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Payload = data
	}
	return env, nil
}

// Decode unmarshals the envelope payload into v.
func (e *Envelope) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}
