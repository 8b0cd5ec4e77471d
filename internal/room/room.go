package room

import (
	"sync"
	"time"

	"github.com/uripeled2/classroom-participation-app/internal/model"
)

// Phase is the question-round phase of a room.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseQuestionOpen Phase = "question_open"
	PhaseTimerRunning Phase = "timer_running"
	PhaseSelected     Phase = "selected"
)

// Room is the single authority for one classroom session. All state
// transitions happen under the room's own mutex, so two operations on the
// same room never interleave mid-mutation. Rooms are independent
// partitions; operations on distinct rooms have no ordering relationship.
type Room struct {
	mu sync.Mutex

	code    string
	teacher model.Teacher

	// students is keyed by the stable student ID, not the connection ID.
	students  map[string]*model.Student
	connIndex map[string]string // connID -> studentID

	// departed holds records of disconnected students until the next
	// reset or teardown, so a rejoin can reclaim answer and grade.
	departed map[string]*model.Student

	phase    Phase
	selected string // student ID, empty when nobody is selected
}

// New creates a room in the Idle phase owned by the given teacher
// connection.
func New(code, teacherConnID, teacherName string) *Room {
	return &Room{
		code:      code,
		teacher:   model.Teacher{ConnID: teacherConnID, Name: teacherName},
		students:  make(map[string]*model.Student),
		connIndex: make(map[string]string),
		departed:  make(map[string]*model.Student),
		phase:     PhaseIdle,
	}
}

// Code returns the room's shareable code.
func (r *Room) Code() string { return r.code }

// TeacherConnID returns the connection ID of the room's teacher.
func (r *Room) TeacherConnID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.teacher.ConnID
}

// Join adds a fresh student to the roster and returns a copy of its
// record.
func (r *Room) Join(studentID, connID, name string) model.Student {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &model.Student{
		ID:           studentID,
		ConnID:       connID,
		Name:         name,
		Answer:       "",
		AnswerStatus: model.AnswerNone,
	}
	r.students[studentID] = s
	r.connIndex[connID] = studentID
	return *s
}

// Rejoin restores a previously departed student under a new connection,
// keeping its answer and grade. If the student is still live under
// another connection (browser refresh before the old socket timed out)
// the new connection takes the record over and the old one is evicted
// from the index, so its eventual disconnect is a no-op. If no record
// exists at all (for example after a reset claimed the departed one)
// the student rejoins fresh under the same stable ID.
func (r *Room) Rejoin(studentID, connID, name string) (model.Student, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.students[studentID]; ok {
		delete(r.connIndex, s.ConnID)
		s.ConnID = connID
		s.Name = name
		r.connIndex[connID] = studentID
		return *s, true
	}

	if s, ok := r.departed[studentID]; ok {
		delete(r.departed, studentID)
		s.ConnID = connID
		s.Name = name
		s.HasRaisedHand = false
		r.students[studentID] = s
		r.connIndex[connID] = studentID
		return *s, true
	}

	s := &model.Student{
		ID:           studentID,
		ConnID:       connID,
		Name:         name,
		Answer:       "",
		AnswerStatus: model.AnswerNone,
	}
	r.students[studentID] = s
	r.connIndex[connID] = studentID
	return *s, false
}

// Depart removes the student behind connID from the live roster, parking
// its record for a possible rejoin. It reports the departed record and
// whether the connection belonged to a student of this room.
func (r *Room) Depart(connID string) (model.Student, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.connIndex[connID]
	if !ok {
		return model.Student{}, false
	}
	s := r.students[id]
	delete(r.students, id)
	delete(r.connIndex, connID)
	if r.selected == id {
		r.selected = ""
	}
	s.ConnID = ""
	r.departed[id] = s
	return *s, true
}

// StudentByConn resolves a connection ID to the student it belongs to.
func (r *Room) StudentByConn(connID string) (model.Student, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.connIndex[connID]
	if !ok {
		return model.Student{}, false
	}
	return *r.students[id], true
}

// AskQuestion opens a new question round: selection cleared, all hands
// lowered. It is a no-op while a question is already open and reports
// whether anything changed.
func (r *Room) AskQuestion() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == PhaseQuestionOpen || r.phase == PhaseTimerRunning {
		return false
	}
	r.phase = PhaseQuestionOpen
	r.selected = ""
	for _, s := range r.students {
		s.HasRaisedHand = false
	}
	return true
}

// RaiseHand marks the student's hand as raised. Valid only while a
// question is open and the student is known; anything else is silently
// ignored.
func (r *Room) RaiseHand(studentID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseQuestionOpen && r.phase != PhaseTimerRunning {
		return false
	}
	s, ok := r.students[studentID]
	if !ok {
		return false
	}
	s.HasRaisedHand = true
	return true
}

// SubmitAnswer stores the student's latest answer text and unconditionally
// reverts its status to none. Valid in any phase for a known student.
func (r *Room) SubmitAnswer(studentID, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.students[studentID]
	if !ok {
		return false
	}
	s.Answer = text
	s.AnswerStatus = model.AnswerNone
	return true
}

// MarkAnswer records the teacher's verdict on a known student's answer.
func (r *Room) MarkAnswer(studentID string, correct bool) (model.AnswerStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.students[studentID]
	if !ok {
		return model.AnswerNone, false
	}
	if correct {
		s.AnswerStatus = model.AnswerCorrect
	} else {
		s.AnswerStatus = model.AnswerWrong
	}
	return s.AnswerStatus, true
}

// StartTimer moves an open question into the advisory timer sub-state and
// stamps the deadline clients should count down against. The room never
// schedules or acts on the expiry itself.
func (r *Room) StartTimer(durationSeconds int) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseQuestionOpen {
		return time.Time{}, false
	}
	r.phase = PhaseTimerRunning
	return time.Now().Add(time.Duration(durationSeconds) * time.Second), true
}

// SelectStudent records the chosen student and closes the question phase.
// Valid while a round is in progress or after a previous selection (any
// phase except Idle); eligibility is not re-validated, selection authority
// belongs to the caller.
func (r *Room) SelectStudent(studentID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == PhaseIdle {
		return false
	}
	if _, ok := r.students[studentID]; !ok {
		return false
	}
	r.phase = PhaseSelected
	r.selected = studentID
	return true
}

// Reset returns the room to Idle: selection cleared, hands lowered,
// answers and grades wiped, departed records dropped.
func (r *Room) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.phase = PhaseIdle
	r.selected = ""
	for _, s := range r.students {
		s.HasRaisedHand = false
		s.Answer = ""
		s.AnswerStatus = model.AnswerNone
	}
	r.departed = make(map[string]*model.Student)
}

// Phase returns the room's current question-round phase.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// QuestionActive reports whether the room currently accepts hand raises.
func (r *Room) QuestionActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == PhaseQuestionOpen || r.phase == PhaseTimerRunning
}

// SelectedStudent returns the currently selected student ID, empty when
// nobody is selected.
func (r *Room) SelectedStudent() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// Student returns a copy of a roster record.
func (r *Room) Student(studentID string) (model.Student, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[studentID]
	if !ok {
		return model.Student{}, false
	}
	return *s, true
}

// Students returns copies of every live roster record.
func (r *Room) Students() []model.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, *s)
	}
	return out
}

// StudentCount returns the number of connected students.
func (r *Room) StudentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.students)
}

// StudentConnIDs returns the connection IDs of every connected student.
func (r *Room) StudentConnIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.connIndex))
	for connID := range r.connIndex {
		out = append(out, connID)
	}
	return out
}

// RoomConnIDs returns the connection IDs of the teacher plus every
// connected student. Broadcast targeting is computed from this room data,
// never from transport-level group bookkeeping.
func (r *Room) RoomConnIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.connIndex)+1)
	out = append(out, r.teacher.ConnID)
	for connID := range r.connIndex {
		out = append(out, connID)
	}
	return out
}
