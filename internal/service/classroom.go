package service

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/uripeled2/classroom-participation-app/internal/model"
	"github.com/uripeled2/classroom-participation-app/internal/protocol"
	"github.com/uripeled2/classroom-participation-app/internal/room"
)

// binding records what a live connection is to this service: which room
// it belongs to and in what role. Roles are fixed at create/join time and
// checked before every privileged action.
type binding struct {
	roomCode  string
	role      model.Role
	studentID string // empty for teachers
}

// ClassroomService routes inbound protocol events to room operations and
// fans the resulting broadcasts out to the right recipient sets. One
// instance serves every room; per-room serialization is the room's own
// concern.
type ClassroomService struct {
	registry *room.Registry
	tokens   *TokenService
	sender   Sender

	defaultTimerSeconds int

	mu    sync.RWMutex
	conns map[string]binding // connID -> binding
}

// NewClassroomService creates the event router.
func NewClassroomService(registry *room.Registry, tokens *TokenService, defaultTimerSeconds int) *ClassroomService {
	if defaultTimerSeconds <= 0 {
		defaultTimerSeconds = 10
	}
	return &ClassroomService{
		registry:            registry,
		tokens:              tokens,
		defaultTimerSeconds: defaultTimerSeconds,
		conns:               make(map[string]binding),
	}
}

// SetSender injects the outbound delivery implementation (the WS hub).
func (s *ClassroomService) SetSender(sender Sender) {
	s.sender = sender
}

// HandleMessage dispatches one inbound envelope from a connection. A
// malformed or unauthorized message is dropped with a log line; nothing
// here is fatal.
func (s *ClassroomService) HandleMessage(connID string, env *protocol.Envelope) {
	switch env.Type {
	case protocol.EvtCreateRoom:
		var req protocol.CreateRoomRequest
		if err := env.Decode(&req); err != nil {
			log.Printf("drop %s from %s: %v", env.Type, connID, err)
			return
		}
		s.handleCreateRoom(connID, req)

	case protocol.EvtJoinRoom:
		var req protocol.JoinRoomRequest
		if err := env.Decode(&req); err != nil {
			log.Printf("drop %s from %s: %v", env.Type, connID, err)
			return
		}
		s.handleJoinRoom(connID, req)

	case protocol.EvtAskQuestion:
		var req protocol.RoomRequest
		if err := env.Decode(&req); err != nil {
			log.Printf("drop %s from %s: %v", env.Type, connID, err)
			return
		}
		if rm, ok := s.asTeacher(connID, req.RoomCode, env.Type); ok {
			s.handleAskQuestion(rm)
		}

	case protocol.EvtRaiseHand:
		var req protocol.RoomRequest
		if err := env.Decode(&req); err != nil {
			log.Printf("drop %s from %s: %v", env.Type, connID, err)
			return
		}
		if rm, studentID, ok := s.asStudent(connID, req.RoomCode, env.Type); ok {
			s.handleRaiseHand(rm, studentID)
		}

	case protocol.EvtAnswerSubmitted:
		var req protocol.AnswerSubmittedRequest
		if err := env.Decode(&req); err != nil {
			log.Printf("drop %s from %s: %v", env.Type, connID, err)
			return
		}
		if rm, studentID, ok := s.asStudent(connID, req.RoomCode, env.Type); ok {
			s.handleSubmitAnswer(rm, studentID, req.Answer)
		}

	case protocol.EvtMarkAnswer:
		var req protocol.MarkAnswerRequest
		if err := env.Decode(&req); err != nil {
			log.Printf("drop %s from %s: %v", env.Type, connID, err)
			return
		}
		if rm, ok := s.asTeacher(connID, req.RoomCode, env.Type); ok {
			s.handleMarkAnswer(rm, req.StudentID, req.IsCorrect)
		}

	case protocol.EvtTimerStarted:
		var req protocol.TimerStartedRequest
		if err := env.Decode(&req); err != nil {
			log.Printf("drop %s from %s: %v", env.Type, connID, err)
			return
		}
		if rm, ok := s.asTeacher(connID, req.RoomCode, env.Type); ok {
			s.handleStartTimer(rm, req.DurationSeconds)
		}

	case protocol.EvtStudentSelected:
		var req protocol.StudentSelectedRequest
		if err := env.Decode(&req); err != nil {
			log.Printf("drop %s from %s: %v", env.Type, connID, err)
			return
		}
		if rm, ok := s.asTeacher(connID, req.RoomCode, env.Type); ok {
			s.handleSelectStudent(rm, req.StudentID)
		}

	case protocol.EvtResetRoom:
		var req protocol.RoomRequest
		if err := env.Decode(&req); err != nil {
			log.Printf("drop %s from %s: %v", env.Type, connID, err)
			return
		}
		if rm, ok := s.asTeacher(connID, req.RoomCode, env.Type); ok {
			s.handleResetRoom(rm)
		}

	default:
		log.Printf("drop unknown event %q from %s", env.Type, connID)
	}
}

// HandleDisconnect is the transport's notification that a connection is
// gone. A teacher's disconnect tears the room down; a student's is an
// implicit leave. Unknown connections are a no-op.
func (s *ClassroomService) HandleDisconnect(connID string) {
	s.detach(connID)
}

// detach releases whatever the connection currently is. It also backs
// create-room and join-room: a connection belongs to at most one room at
// a time, so taking a new binding implicitly leaves the old one.
func (s *ClassroomService) detach(connID string) {
	s.mu.Lock()
	b, ok := s.conns[connID]
	if ok {
		delete(s.conns, connID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	rm, err := s.registry.Get(b.roomCode)
	if err != nil {
		return
	}

	switch b.role {
	case model.RoleTeacher:
		s.teardown(rm)
	case model.RoleStudent:
		if student, ok := rm.Depart(connID); ok {
			s.send(rm.TeacherConnID(), protocol.EvtStudentLeft, student.ID)
			log.Printf("student %s left room %s", student.Name, b.roomCode)
		}
	}
}

func (s *ClassroomService) handleCreateRoom(connID string, req protocol.CreateRoomRequest) {
	rm, err := s.registry.Create(req.RoomCode, connID, req.TeacherName)
	if err != nil {
		s.send(connID, protocol.EvtCreateError, "Room code is already in use")
		return
	}

	// One room per connection: creating implicitly leaves the old one.
	s.detach(connID)

	s.mu.Lock()
	s.conns[connID] = binding{roomCode: req.RoomCode, role: model.RoleTeacher}
	s.mu.Unlock()

	s.send(connID, protocol.EvtRoomCreated, protocol.RoomCreatedPayload{RoomCode: rm.Code()})
	log.Printf("teacher %s created room %s", req.TeacherName, req.RoomCode)
}

func (s *ClassroomService) handleJoinRoom(connID string, req protocol.JoinRoomRequest) {
	rm, err := s.registry.Get(req.RoomCode)
	if err != nil {
		s.send(connID, protocol.EvtJoinError, "Room does not exist")
		return
	}

	// One room per connection: joining implicitly leaves the old one.
	s.detach(connID)

	var student model.Student
	restored := false
	reclaimed := false
	if req.RejoinToken != "" {
		if claims, err := s.tokens.Validate(req.RejoinToken); err == nil && claims.RoomCode == req.RoomCode {
			// The identity may still be live under the old socket
			// (refresh before its read deadline); the room evicts that
			// connection, so its binding must go too or it could keep
			// acting as the student.
			if prev, ok := rm.Student(claims.StudentID); ok && prev.ConnID != "" && prev.ConnID != connID {
				s.dropBinding(prev.ConnID)
			}
			student, restored = rm.Rejoin(claims.StudentID, connID, req.StudentName)
			reclaimed = true
		}
	}
	if student.ID == "" {
		student = rm.Join(uuid.New().String(), connID, req.StudentName)
	}

	s.mu.Lock()
	s.conns[connID] = binding{roomCode: req.RoomCode, role: model.RoleStudent, studentID: student.ID}
	s.mu.Unlock()

	token, err := s.tokens.Issue(req.RoomCode, student.ID, student.Name)
	if err != nil {
		log.Printf("rejoin token for %s: %v", student.ID, err)
	}

	s.send(rm.TeacherConnID(), protocol.EvtStudentJoined, student)
	s.send(connID, protocol.EvtRoomJoined, protocol.RoomJoinedPayload{
		RoomCode:    req.RoomCode,
		Student:     student,
		RejoinToken: token,
	})
	switch {
	case restored:
		log.Printf("student %s rejoined room %s", student.Name, req.RoomCode)
	case reclaimed:
		log.Printf("student %s rejoined room %s under a fresh record", student.Name, req.RoomCode)
	default:
		log.Printf("student %s joined room %s", student.Name, req.RoomCode)
	}
}

// dropBinding forgets a connection without touching its room, for when
// the room itself already evicted it.
func (s *ClassroomService) dropBinding(connID string) {
	s.mu.Lock()
	delete(s.conns, connID)
	s.mu.Unlock()
}

func (s *ClassroomService) handleAskQuestion(rm *room.Room) {
	if !rm.AskQuestion() {
		return
	}
	s.sendMany(rm.StudentConnIDs(), protocol.EvtQuestionAsked, nil)
	log.Printf("teacher asked a question in room %s", rm.Code())
}

func (s *ClassroomService) handleRaiseHand(rm *room.Room, studentID string) {
	if !rm.RaiseHand(studentID) {
		return
	}
	s.send(rm.TeacherConnID(), protocol.EvtHandRaised, studentID)
}

func (s *ClassroomService) handleSubmitAnswer(rm *room.Room, studentID, text string) {
	if !rm.SubmitAnswer(studentID, text) {
		return
	}
	s.sendMany(rm.RoomConnIDs(), protocol.EvtAnswerUpdated, protocol.AnswerUpdatedPayload{
		StudentID:    studentID,
		Answer:       text,
		AnswerStatus: model.AnswerNone,
	})
}

func (s *ClassroomService) handleMarkAnswer(rm *room.Room, studentID string, correct bool) {
	status, ok := rm.MarkAnswer(studentID, correct)
	if !ok {
		return
	}
	s.sendMany(rm.RoomConnIDs(), protocol.EvtAnswerMarked, protocol.AnswerMarkedPayload{
		StudentID:    studentID,
		AnswerStatus: status,
	})
}

func (s *ClassroomService) handleStartTimer(rm *room.Room, durationSeconds int) {
	if durationSeconds <= 0 {
		durationSeconds = s.defaultTimerSeconds
	}
	deadline, ok := rm.StartTimer(durationSeconds)
	if !ok {
		return
	}
	s.sendMany(rm.StudentConnIDs(), protocol.EvtTimerStart, protocol.TimerStartPayload{
		DurationSeconds: durationSeconds,
		Deadline:        deadline,
	})
	log.Printf("timer started in room %s (%ds)", rm.Code(), durationSeconds)
}

func (s *ClassroomService) handleSelectStudent(rm *room.Room, studentID string) {
	if !rm.SelectStudent(studentID) {
		return
	}
	s.sendMany(rm.RoomConnIDs(), protocol.EvtSelected, studentID)
	log.Printf("student %s was selected in room %s", studentID, rm.Code())
}

func (s *ClassroomService) handleResetRoom(rm *room.Room) {
	rm.Reset()
	s.sendMany(rm.StudentConnIDs(), protocol.EvtRoomReset, nil)
	log.Printf("room %s was reset", rm.Code())
}

// teardown closes a room after its teacher disconnected: everyone is told
// and the room ceases to exist.
func (s *ClassroomService) teardown(rm *room.Room) {
	code := rm.Code()
	s.sendMany(rm.RoomConnIDs(), protocol.EvtRoomClosed, nil)
	s.registry.Remove(code)

	// The students' bindings are now dangling; drop them so later
	// messages from those connections are cheap no-ops.
	s.mu.Lock()
	for connID, b := range s.conns {
		if b.roomCode == code {
			delete(s.conns, connID)
		}
	}
	s.mu.Unlock()

	log.Printf("room %s closed because teacher left", code)
}

// asTeacher resolves the caller's room and verifies it is that room's
// recorded teacher. Mismatches are logged and dropped, never surfaced.
func (s *ClassroomService) asTeacher(connID, roomCode string, evt protocol.EventType) (*room.Room, bool) {
	s.mu.RLock()
	b, ok := s.conns[connID]
	s.mu.RUnlock()
	if !ok || b.role != model.RoleTeacher || b.roomCode != roomCode {
		log.Printf("drop %s from %s: not the teacher of room %s", evt, connID, roomCode)
		return nil, false
	}
	rm, err := s.registry.Get(roomCode)
	if err != nil {
		return nil, false
	}
	return rm, true
}

// asStudent resolves the caller's room and verifies it is a known student
// of that room.
func (s *ClassroomService) asStudent(connID, roomCode string, evt protocol.EventType) (*room.Room, string, bool) {
	s.mu.RLock()
	b, ok := s.conns[connID]
	s.mu.RUnlock()
	if !ok || b.role != model.RoleStudent || b.roomCode != roomCode {
		log.Printf("drop %s from %s: not a student of room %s", evt, connID, roomCode)
		return nil, "", false
	}
	rm, err := s.registry.Get(roomCode)
	if err != nil {
		return nil, "", false
	}
	return rm, b.studentID, true
}

func (s *ClassroomService) send(connID string, evt protocol.EventType, payload interface{}) {
	env, err := protocol.NewEnvelope(evt, payload)
	if err != nil {
		log.Printf("encode %s: %v", evt, err)
		return
	}
	s.sender.Send(connID, env)
}

func (s *ClassroomService) sendMany(connIDs []string, evt protocol.EventType, payload interface{}) {
	env, err := protocol.NewEnvelope(evt, payload)
	if err != nil {
		log.Printf("encode %s: %v", evt, err)
		return
	}
	for _, connID := range connIDs {
		s.sender.Send(connID, env)
	}
}
