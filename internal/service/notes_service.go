package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"ai_tutor_backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const notesUnavailable = "# Study notes temporarily unavailable\n\n" +
	"We couldn't generate notes for this topic right now. Please try again shortly."

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// NotesService 生成学习笔记并持久化，正文另以 Markdown 文件导出到存储层
type NotesService struct {
	notes   NoteStore
	storage *StorageService
	gateway *AIGateway
}

func NewNotesService(notes NoteStore, storage *StorageService, gateway *AIGateway) *NotesService {
	return &NotesService{
		notes:   notes,
		storage: storage,
		gateway: gateway,
	}
}

// Generate 生成并保存笔记。AI 失败时保存占位文案而不是报错；
// 导出到对象存储是尽力而为，失败只记日志。
func (s *NotesService) Generate(ctx context.Context, topic string, weakAreas []string) (*model.StudyNote, error) {
	key := CacheKey(append([]string{"notes", topic}, weakAreas...)...)
	prompt := buildNotesPrompt(topic, weakAreas)

	content, err := s.gateway.Generate(ctx, "generate_notes", key, tutorSystemPrompt, prompt)
	if err != nil {
		logger.Log.Warn("notes generation failed, storing placeholder",
			zap.String("topic", topic),
			zap.Error(err))
		content = notesUnavailable
	}

	note := &model.StudyNote{
		Topic:     topic,
		WeakAreas: model.StringList(weakAreas),
		Content:   content,
	}

	objectKey := fmt.Sprintf("notes/%s_%d.md", slugify(topic), time.Now().Unix())
	if url, err := s.storage.SaveMarkdown(ctx, objectKey, content); err != nil {
		logger.Log.Warn("notes export to storage failed",
			zap.String("objectKey", objectKey),
			zap.Error(err))
	} else if url != "" {
		note.ObjectKey = objectKey
	}

	if err := s.notes.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NotesService) Get(id uint) (*model.StudyNote, error) {
	note, err := s.notes.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoteNotFound
	}
	return note, err
}

func slugify(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "notes"
	}
	return slug
}
