package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture() (*SessionService, *fakeSessionStore, *fakeAreaStore, *fakeEvalStore) {
	sessions := newFakeSessionStore()
	areas := newFakeAreaStore()
	evals := newFakeEvalStore()
	return NewSessionService(sessions, areas, evals), sessions, areas, evals
}

func TestSessionCreate(t *testing.T) {
	svc, _, _, _ := newSessionFixture()

	t.Run("默认进入分析阶段", func(t *testing.T) {
		session, err := svc.Create(1, "Algebra", "")
		require.NoError(t, err)
		assert.Equal(t, model.StageAnalysis, session.Stage)
		assert.NotZero(t, session.ID)
	})

	t.Run("指定合法阶段", func(t *testing.T) {
		session, err := svc.Create(1, "Algebra", model.StageTeaching)
		require.NoError(t, err)
		assert.Equal(t, model.StageTeaching, session.Stage)
	})

	t.Run("非法阶段拒绝", func(t *testing.T) {
		_, err := svc.Create(1, "Algebra", "daydreaming")
		assert.ErrorIs(t, err, util.ErrInvalidStage)
	})
}

func TestSessionGet(t *testing.T) {
	svc, _, areas, evals := newSessionFixture()

	session, err := svc.Create(1, "Algebra", "")
	require.NoError(t, err)

	t.Run("评估尚不存在", func(t *testing.T) {
		detail, err := svc.Get(session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, detail.Session.ID)
		assert.Nil(t, detail.Evaluation)
	})

	t.Run("附带知识域和评估", func(t *testing.T) {
		require.NoError(t, areas.Create(&model.KnowledgeArea{SessionID: session.ID, Name: "Equations", Proficiency: 60}))
		require.NoError(t, evals.Upsert(&model.SessionEvaluation{SessionID: session.ID, TotalScore: 75}))

		detail, err := svc.Get(session.ID)
		require.NoError(t, err)
		require.Len(t, detail.KnowledgeAreas, 1)
		require.NotNil(t, detail.Evaluation)
		assert.Equal(t, 75, detail.Evaluation.TotalScore)
	})

	t.Run("会话不存在", func(t *testing.T) {
		_, err := svc.Get(404)
		assert.ErrorIs(t, err, util.ErrSessionNotFound)
	})
}

func TestSessionUpdateStage(t *testing.T) {
	svc, _, _, _ := newSessionFixture()

	session, err := svc.Create(1, "Algebra", "")
	require.NoError(t, err)

	updated, err := svc.UpdateStage(session.ID, model.StageFeedback)
	require.NoError(t, err)
	assert.Equal(t, model.StageFeedback, updated.Stage)

	_, err = svc.UpdateStage(session.ID, "bogus")
	assert.ErrorIs(t, err, util.ErrInvalidStage)

	_, err = svc.UpdateStage(404, model.StageFeedback)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
