package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTopicMeta(t *testing.T) {
	t.Run("带元数据", func(t *testing.T) {
		topic, education, difficulty := ParseTopicMeta("Algebra [Education: Beginner, Difficulty: Advanced]")
		assert.Equal(t, "Algebra", topic)
		assert.Equal(t, "Beginner", education)
		assert.Equal(t, "Advanced", difficulty)
	})

	t.Run("裸主题", func(t *testing.T) {
		topic, education, difficulty := ParseTopicMeta("World History")
		assert.Equal(t, "World History", topic)
		assert.Empty(t, education)
		assert.Empty(t, difficulty)
	})

	t.Run("主题中间的方括号不受影响", func(t *testing.T) {
		topic, _, _ := ParseTopicMeta("Arrays [in Go] basics")
		assert.Equal(t, "Arrays [in Go] basics", topic)
	})

	t.Run("多余空白被清理", func(t *testing.T) {
		topic, education, difficulty := ParseTopicMeta("  Fractions  [Education:  Standard , Difficulty:  Standard ]  ")
		assert.Equal(t, "Fractions", topic)
		assert.Equal(t, "Standard", education)
		assert.Equal(t, "Standard", difficulty)
	})
}

func newQuestionFixture(reply string, err error) (*QuestionService, *fakeSessionStore, *fakeQuestionStore, *fakeChatClient) {
	sessions := newFakeSessionStore()
	questions := newFakeQuestionStore()
	answers := newFakeAnswerStore(questions)
	client := &fakeChatClient{reply: reply, err: err}
	svc := NewQuestionService(sessions, questions, answers, newTestGateway(client), 6)
	return svc, sessions, questions, client
}

func TestQuestionServiceGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("会话不存在", func(t *testing.T) {
		svc, _, _, _ := newQuestionFixture("[]", nil)
		_, err := svc.Generate(ctx, 999, "Algebra")
		assert.ErrorIs(t, err, util.ErrSessionNotFound)
	})

	t.Run("正常生成并入库", func(t *testing.T) {
		reply := `[
			{"question": "Solve x + 1 = 3", "difficulty": "easy"},
			{"question": "Factor x^2 - 9", "difficulty": "medium"}
		]`
		svc, sessions, questions, _ := newQuestionFixture(reply, nil)
		session := &model.Session{Topic: "Algebra"}
		require.NoError(t, sessions.Create(session))

		out, err := svc.Generate(ctx, session.ID, "Algebra [Education: Beginner, Difficulty: Standard]")
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.NotZero(t, out[0].ID)
		assert.Equal(t, session.ID, out[0].SessionID)

		stored, err := questions.FindBySessionID(session.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("避开已出过的题", func(t *testing.T) {
		reply := `[
			{"question": "Old question?", "difficulty": "easy"},
			{"question": "New question?", "difficulty": "easy"}
		]`
		svc, sessions, questions, _ := newQuestionFixture(reply, nil)
		session := &model.Session{Topic: "Algebra"}
		require.NoError(t, sessions.Create(session))
		_, err := questions.CreateBatch([]model.Question{
			{SessionID: session.ID, Text: "Old question?", Difficulty: "easy"},
		})
		require.NoError(t, err)

		out, err := svc.Generate(ctx, session.ID, "Algebra")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "New question?", out[0].Text)
	})

	t.Run("模型调用失败外抛", func(t *testing.T) {
		svc, sessions, _, _ := newQuestionFixture("", errors.New("timeout"))
		session := &model.Session{Topic: "Algebra"}
		require.NoError(t, sessions.Create(session))

		_, err := svc.Generate(ctx, session.ID, "Algebra")
		assert.Error(t, err)
	})

	t.Run("没有可用题目算失败", func(t *testing.T) {
		svc, sessions, _, _ := newQuestionFixture("I can't generate questions.", nil)
		session := &model.Session{Topic: "Algebra"}
		require.NoError(t, sessions.Create(session))

		_, err := svc.Generate(ctx, session.ID, "Algebra")
		assert.Error(t, err)
	})
}

func TestQuestionsWithAnswers(t *testing.T) {
	svc, sessions, questions, _ := newQuestionFixture("", nil)
	answers := svc.answers

	session := &model.Session{Topic: "Algebra"}
	require.NoError(t, sessions.Create(session))

	batch, err := questions.CreateBatch([]model.Question{
		{SessionID: session.ID, Text: "Q1", Difficulty: "easy"},
		{SessionID: session.ID, Text: "Q2", Difficulty: "hard"},
	})
	require.NoError(t, err)

	require.NoError(t, answers.Upsert(&model.Answer{
		QuestionID: batch[0].ID,
		UserAnswer: "my answer",
	}))

	out, err := svc.QuestionsWithAnswers(session.ID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].Answer)
	assert.Equal(t, "my answer", out[0].Answer.UserAnswer)
	assert.Nil(t, out[1].Answer)

	_, err = svc.QuestionsWithAnswers(999)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
