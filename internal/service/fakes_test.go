package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/pkg/logger"
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeChatClient 可编程的模型客户端，统计真实调用次数
type fakeChatClient struct {
	mu      sync.Mutex
	calls   int
	reply   string
	err     error
	replyFn func(system, prompt string) (string, error)
}

func (c *fakeChatClient) Chat(ctx context.Context, system, prompt string) (string, error) {
	c.mu.Lock()
	c.calls++
	fn := c.replyFn
	reply, err := c.reply, c.err
	c.mu.Unlock()
	if fn != nil {
		return fn(system, prompt)
	}
	return reply, err
}

func (c *fakeChatClient) ChatStream(ctx context.Context, system, prompt string) (<-chan string, <-chan error) {
	out := make(chan string, 1)
	errs := make(chan error, 1)
	out <- c.reply
	close(out)
	close(errs)
	return out, errs
}

func (c *fakeChatClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newTestGateway(client ChatClient) *AIGateway {
	return NewAIGateway(client, NewResponseCache(time.Minute, nil), time.Second)
}

type fakeSessionStore struct {
	mu       sync.Mutex
	nextID   uint
	sessions map[uint]model.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uint]model.Session)}
}

func (s *fakeSessionStore) Create(session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	session.ID = s.nextID
	s.sessions[session.ID] = *session
	return nil
}

func (s *fakeSessionStore) FindByID(id uint) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &session, nil
}

func (s *fakeSessionStore) UpdateStage(id uint, stage string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	session.Stage = stage
	s.sessions[id] = session
	return &session, nil
}

type fakeQuestionStore struct {
	mu        sync.Mutex
	nextID    uint
	questions map[uint]model.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: make(map[uint]model.Question)}
}

func (s *fakeQuestionStore) CreateBatch(batch []model.Question) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range batch {
		s.nextID++
		batch[i].ID = s.nextID
		s.questions[batch[i].ID] = batch[i]
	}
	return batch, nil
}

func (s *fakeQuestionStore) FindByID(id uint) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (s *fakeQuestionStore) FindBySessionID(sessionID uint) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Question
	for id := uint(1); id <= s.nextID; id++ {
		if q, ok := s.questions[id]; ok && q.SessionID == sessionID {
			out = append(out, q)
		}
	}
	return out, nil
}

// fakeAnswerStore 按 questionId 覆盖写；FindBySessionID 借助题目存储做关联
type fakeAnswerStore struct {
	mu        sync.Mutex
	nextID    uint
	answers   map[uint]model.Answer
	questions *fakeQuestionStore
}

func newFakeAnswerStore(questions *fakeQuestionStore) *fakeAnswerStore {
	return &fakeAnswerStore{answers: make(map[uint]model.Answer), questions: questions}
}

func (s *fakeAnswerStore) Upsert(answer *model.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.answers[answer.QuestionID]; ok {
		answer.ID = existing.ID
	} else {
		s.nextID++
		answer.ID = s.nextID
	}
	s.answers[answer.QuestionID] = *answer
	return nil
}

func (s *fakeAnswerStore) FindByQuestionID(questionID uint) (*model.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.answers[questionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (s *fakeAnswerStore) FindBySessionID(sessionID uint) ([]model.Answer, error) {
	questions, _ := s.questions.FindBySessionID(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Answer
	for _, q := range questions {
		if a, ok := s.answers[q.ID]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeAreaStore struct {
	mu     sync.Mutex
	nextID uint
	areas  map[uint]model.KnowledgeArea
}

func newFakeAreaStore() *fakeAreaStore {
	return &fakeAreaStore{areas: make(map[uint]model.KnowledgeArea)}
}

func (s *fakeAreaStore) Create(area *model.KnowledgeArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	area.ID = s.nextID
	s.areas[area.ID] = *area
	return nil
}

func (s *fakeAreaStore) FindBySessionID(sessionID uint) ([]model.KnowledgeArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.KnowledgeArea
	for id := uint(1); id <= s.nextID; id++ {
		if a, ok := s.areas[id]; ok && a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAreaStore) UpdateProficiency(id uint, proficiency int) (*model.KnowledgeArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.areas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a.Proficiency = proficiency
	s.areas[id] = a
	return &a, nil
}

type fakeEvalStore struct {
	mu    sync.Mutex
	evals map[uint]model.SessionEvaluation
}

func newFakeEvalStore() *fakeEvalStore {
	return &fakeEvalStore{evals: make(map[uint]model.SessionEvaluation)}
}

func (s *fakeEvalStore) Upsert(eval *model.SessionEvaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.evals[eval.SessionID]; ok {
		eval.ID = existing.ID
	} else {
		eval.ID = uint(len(s.evals) + 1)
	}
	s.evals[eval.SessionID] = *eval
	return nil
}

func (s *fakeEvalStore) FindBySessionID(sessionID uint) (*model.SessionEvaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.evals[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

type fakeNoteStore struct {
	mu     sync.Mutex
	nextID uint
	notes  map[uint]model.StudyNote
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: make(map[uint]model.StudyNote)}
}

func (s *fakeNoteStore) Create(note *model.StudyNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	note.ID = s.nextID
	s.notes[note.ID] = *note
	return nil
}

func (s *fakeNoteStore) FindByID(id uint) (*model.StudyNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &n, nil
}
