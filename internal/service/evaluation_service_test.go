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

type evaluationFixture struct {
	svc       *EvaluationService
	sessions  *fakeSessionStore
	questions *fakeQuestionStore
	answers   *fakeAnswerStore
	evals     *fakeEvalStore
	areas     *fakeAreaStore
	client    *fakeChatClient
}

func newEvaluationFixture(reply string, err error) *evaluationFixture {
	sessions := newFakeSessionStore()
	questions := newFakeQuestionStore()
	answers := newFakeAnswerStore(questions)
	evals := newFakeEvalStore()
	areas := newFakeAreaStore()
	client := &fakeChatClient{reply: reply, err: err}
	gateway := newTestGateway(client)
	knowledge := NewKnowledgeService(areas, nil)
	svc := NewEvaluationService(sessions, questions, answers, evals, knowledge, gateway)
	return &evaluationFixture{
		svc: svc, sessions: sessions, questions: questions,
		answers: answers, evals: evals, areas: areas, client: client,
	}
}

// 建一个含两道已答题的会话
func (f *evaluationFixture) seedAnsweredSession(t *testing.T) *model.Session {
	t.Helper()
	session := &model.Session{Topic: "Algebra"}
	require.NoError(t, f.sessions.Create(session))

	batch, err := f.questions.CreateBatch([]model.Question{
		{SessionID: session.ID, Text: "Solve the equation x + 1 = 3", Difficulty: "easy"},
		{SessionID: session.ID, Text: "Simplify the fraction 4/8", Difficulty: "medium"},
	})
	require.NoError(t, err)

	for i, q := range batch {
		require.NoError(t, f.answers.Upsert(&model.Answer{
			QuestionID: q.ID,
			UserAnswer: []string{"x = 2", "1/2"}[i],
			Evaluation: model.EvaluationResult{Correctness: 0, Feedback: PendingFeedback},
		}))
	}
	return session
}

func TestEvaluateAll(t *testing.T) {
	ctx := context.Background()

	t.Run("会话不存在", func(t *testing.T) {
		f := newEvaluationFixture("", nil)
		_, err := f.svc.EvaluateAll(ctx, 404)
		assert.ErrorIs(t, err, util.ErrSessionNotFound)
	})

	t.Run("一份作答都没有", func(t *testing.T) {
		f := newEvaluationFixture("", nil)
		session := &model.Session{Topic: "Algebra"}
		require.NoError(t, f.sessions.Create(session))
		_, err := f.svc.EvaluateAll(ctx, session.ID)
		assert.ErrorIs(t, err, util.ErrNoAnswers)
	})

	t.Run("模型结果落库并扇出单题更新", func(t *testing.T) {
		reply := `{"totalScore": 75, "feedback": "Nice work",
			"strengths": ["methodical"], "weaknesses": ["rushing"],
			"recommendedAreas": ["Equations"], "individualScores": [90, 60]}`
		f := newEvaluationFixture(reply, nil)
		session := f.seedAnsweredSession(t)

		eval, err := f.svc.EvaluateAll(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 75, eval.TotalScore)
		assert.Equal(t, "Nice work", eval.Feedback)

		stored, err := f.evals.FindBySessionID(session.ID)
		require.NoError(t, err)
		assert.Equal(t, 75, stored.TotalScore)

		answers, err := f.answers.FindBySessionID(session.ID)
		require.NoError(t, err)
		require.Len(t, answers, 2)
		assert.Equal(t, 90, answers[0].Evaluation.Correctness)
		assert.Equal(t, 60, answers[1].Evaluation.Correctness)
		assert.NotEqual(t, PendingFeedback, answers[0].Evaluation.Feedback)
	})

	t.Run("模型失败合成中性结果不报错", func(t *testing.T) {
		f := newEvaluationFixture("", errors.New("model down"))
		session := f.seedAnsweredSession(t)

		eval, err := f.svc.EvaluateAll(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 60, eval.TotalScore)
		assert.NotEmpty(t, eval.Feedback)
		assert.NotEmpty(t, eval.RecommendedAreas)
	})

	t.Run("有历史单题分时合成均值", func(t *testing.T) {
		f := newEvaluationFixture("", errors.New("model down"))
		session := &model.Session{Topic: "Algebra"}
		require.NoError(t, f.sessions.Create(session))

		batch, err := f.questions.CreateBatch([]model.Question{
			{SessionID: session.ID, Text: "Q1", Difficulty: "easy"},
			{SessionID: session.ID, Text: "Q2", Difficulty: "easy"},
		})
		require.NoError(t, err)
		require.NoError(t, f.answers.Upsert(&model.Answer{
			QuestionID: batch[0].ID, UserAnswer: "a",
			Evaluation: model.EvaluationResult{Correctness: 80, Feedback: "Good"},
		}))
		require.NoError(t, f.answers.Upsert(&model.Answer{
			QuestionID: batch[1].ID, UserAnswer: "b",
			Evaluation: model.EvaluationResult{Correctness: 40, Feedback: "Off track"},
		}))

		eval, err := f.svc.EvaluateAll(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 60, eval.TotalScore)
	})

	t.Run("不可解析的回复同样兜底", func(t *testing.T) {
		f := newEvaluationFixture("your test went great, good job!", nil)
		session := f.seedAnsweredSession(t)

		eval, err := f.svc.EvaluateAll(ctx, session.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, eval.TotalScore, 0)
		assert.LessOrEqual(t, eval.TotalScore, 100)
	})

	t.Run("评估后从题目文本推导知识域", func(t *testing.T) {
		reply := `{"totalScore": 70, "feedback": "ok",
			"strengths": ["s"], "weaknesses": ["w"], "recommendedAreas": []}`
		f := newEvaluationFixture(reply, nil)
		session := f.seedAnsweredSession(t)

		_, err := f.svc.EvaluateAll(ctx, session.ID)
		require.NoError(t, err)

		areas, err := f.areas.FindBySessionID(session.ID)
		require.NoError(t, err)
		names := make([]string, 0, len(areas))
		for _, a := range areas {
			names = append(names, a.Name)
			assert.Equal(t, 70, a.Proficiency)
		}
		assert.ElementsMatch(t, []string{"Equations", "Fractions"}, names)
	})
}

func TestEvaluateSession(t *testing.T) {
	reply := `{"totalScore": 82, "feedback": "Strong result",
		"strengths": ["s"], "weaknesses": ["w"], "recommendedAreas": ["r"]}`
	f := newEvaluationFixture(reply, nil)
	session := f.seedAnsweredSession(t)

	result, err := f.svc.EvaluateSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, result.SessionID)
	assert.Equal(t, "Algebra", result.Topic)
	assert.Equal(t, 82, result.Score)
	assert.Len(t, result.Questions, 2)
	assert.Len(t, result.Answers, 2)
}

func TestCorrectAnswers(t *testing.T) {
	ctx := context.Background()

	t.Run("每道题一个答案", func(t *testing.T) {
		f := newEvaluationFixture("The correct answer is x = 2.", nil)
		session := f.seedAnsweredSession(t)

		out, err := f.svc.CorrectAnswers(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, ca := range out {
			assert.NotZero(t, ca.QuestionID)
			assert.Equal(t, "The correct answer is x = 2.", ca.CorrectAnswer)
		}
	})

	t.Run("单题失败换致歉文案整体不失败", func(t *testing.T) {
		f := newEvaluationFixture("", errors.New("model down"))
		session := f.seedAnsweredSession(t)

		out, err := f.svc.CorrectAnswers(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, ca := range out {
			assert.Equal(t, correctAnswerUnavailable, ca.CorrectAnswer)
		}
	})

	t.Run("会话不存在", func(t *testing.T) {
		f := newEvaluationFixture("", nil)
		_, err := f.svc.CorrectAnswers(ctx, 404)
		assert.ErrorIs(t, err, util.ErrSessionNotFound)
	})
}
