package util

import "errors"

var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrKnowledgeAreaNotFound = errors.New("knowledge area not found")
	ErrNoteNotFound          = errors.New("note not found")
	ErrNoAnswers             = errors.New("no answered questions in this session")
	ErrInvalidStage          = errors.New("invalid session stage")
	ErrInvalidProficiency    = errors.New("proficiency must be between 0 and 100")
)
