package protocol

import (
	"time"

	"github.com/uripeled2/classroom-participation-app/internal/model"
)

// Inbound payloads.

type CreateRoomRequest struct {
	RoomCode    string `json:"roomCode"`
	TeacherName string `json:"teacherName"`
}

type JoinRoomRequest struct {
	RoomCode    string `json:"roomCode"`
	StudentName string `json:"studentName"`
	// RejoinToken, when present and valid for this room, restores the
	// student's previous identity, answer and grade.
	RejoinToken string `json:"rejoinToken,omitempty"`
}

type RoomRequest struct {
	RoomCode string `json:"roomCode"`
}

type AnswerSubmittedRequest struct {
	RoomCode string `json:"roomCode"`
	Answer   string `json:"answer"`
}

type MarkAnswerRequest struct {
	RoomCode  string `json:"roomCode"`
	StudentID string `json:"studentId"`
	IsCorrect bool   `json:"isCorrect"`
}

type TimerStartedRequest struct {
	RoomCode        string `json:"roomCode"`
	DurationSeconds int    `json:"durationSeconds"`
}

type StudentSelectedRequest struct {
	RoomCode  string `json:"roomCode"`
	StudentID string `json:"studentId"`
}

// Outbound payloads. Events whose payload is a single identifier
// (hand-raised, student-left, selected) or a message string (join-error,
// create-error) carry it as a bare JSON string, so no struct is declared
// for them. question-asked, room-reset and room-closed have no payload.

type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
}

type RoomJoinedPayload struct {
	RoomCode    string        `json:"roomCode"`
	Student     model.Student `json:"student"`
	RejoinToken string        `json:"rejoinToken"`
}

type AnswerUpdatedPayload struct {
	StudentID    string             `json:"studentId"`
	Answer       string             `json:"answer"`
	AnswerStatus model.AnswerStatus `json:"answerStatus"`
}

type AnswerMarkedPayload struct {
	StudentID    string             `json:"studentId"`
	AnswerStatus model.AnswerStatus `json:"answerStatus"`
}

type TimerStartPayload struct {
	DurationSeconds int `json:"durationSeconds"`
	// Deadline is a server-stamped reference point so every client counts
	// down against the same clock. The server never acts on its expiry.
	Deadline time.Time `json:"deadline"`
}
