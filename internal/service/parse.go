package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"encoding/json"
	"strings"
)

// QuestionAnswerPair 整卷评估提示词的输入单元
type QuestionAnswerPair struct {
	Question string
	Answer   string
}

// GeneratedQuestion 模型返回的单道题，入库前的中间形态
type GeneratedQuestion struct {
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
}

// BatchEvaluation 整卷评估的解析结果
type BatchEvaluation struct {
	TotalScore       int       `json:"totalScore"`
	Feedback         string    `json:"feedback"`
	Strengths        []string  `json:"strengths"`
	Weaknesses       []string  `json:"weaknesses"`
	RecommendedAreas []string  `json:"recommendedAreas"`
	IndividualScores []float64 `json:"individualScores"`
}

// StudyBreakRecommendation 休息建议
type StudyBreakRecommendation struct {
	ActivityType string   `json:"activityType"`
	Duration     int      `json:"duration"`
	Description  string   `json:"description"`
	Benefits     []string `json:"benefits"`
	Steps        []string `json:"steps"`
}

// extractBalanced 从自由文本中取出第一个括号配平的 JSON 片段。
// 模型经常在 JSON 前后夹带说明文字，所以永远不做整段严格解析。
func extractBalanced(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func extractJSONArray(text string) (string, bool) {
	return extractBalanced(text, '[', ']')
}

func extractJSONObject(text string) (string, bool) {
	return extractBalanced(text, '{', '}')
}

// parseGeneratedQuestions 解析生成的题目。单条不合法只丢弃该条，不让整批失败；
// JSON 完全取不出来时退化为按行扫描。
func parseGeneratedQuestions(raw string, existing []string, max int) []GeneratedQuestion {
	var parsed []GeneratedQuestion

	if arr, ok := extractJSONArray(raw); ok {
		if err := json.Unmarshal([]byte(arr), &parsed); err != nil {
			parsed = nil
		}
	}
	if parsed == nil {
		parsed = scanQuestionLines(raw)
	}

	seen := make(map[string]bool, len(existing))
	for _, q := range existing {
		seen[normalizeQuestionText(q)] = true
	}

	out := make([]GeneratedQuestion, 0, len(parsed))
	for _, q := range parsed {
		q.Question = strings.TrimSpace(q.Question)
		q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
		if q.Question == "" || !model.ValidDifficulty(q.Difficulty) {
			continue
		}
		key := normalizeQuestionText(q.Question)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// scanQuestionLines 行扫描兜底：找同时含 "Question" 和难度关键词的行
func scanQuestionLines(raw string) []GeneratedQuestion {
	var out []GeneratedQuestion
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "question") {
			continue
		}

		difficulty := ""
		for _, d := range []string{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
			if strings.Contains(lower, d) {
				difficulty = d
				break
			}
		}
		if difficulty == "" {
			continue
		}

		text := strings.Trim(line, "-*# \t")
		if idx := strings.Index(text, ":"); idx >= 0 && idx < len(text)-1 {
			text = strings.TrimSpace(text[idx+1:])
		}
		if text == "" {
			continue
		}
		out = append(out, GeneratedQuestion{Question: text, Difficulty: difficulty})
	}
	return out
}

func normalizeQuestionText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// fallbackEvaluation 评估失败时的中性兜底，绝不把错误抛到终端用户
func fallbackEvaluation() model.EvaluationResult {
	return model.EvaluationResult{
		Correctness: 50,
		Feedback:    "We could not fully evaluate this answer. A tutor-style review is unavailable right now.",
		Strengths:   model.StringList{"Submission received"},
		Weaknesses:  model.StringList{"Evaluation process encountered an error"},
	}
}

// parseEvaluation 解析单题评估；任何解析失败都退化为中性评分
func parseEvaluation(raw string) model.EvaluationResult {
	obj, ok := extractJSONObject(raw)
	if !ok {
		return fallbackEvaluation()
	}

	var parsed struct {
		Correctness *float64 `json:"correctness"`
		Feedback    string   `json:"feedback"`
		Strengths   []string `json:"strengths"`
		Weaknesses  []string `json:"weaknesses"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil || parsed.Correctness == nil {
		return fallbackEvaluation()
	}

	result := model.EvaluationResult{
		Correctness: util.Clamp(int(*parsed.Correctness)),
		Feedback:    parsed.Feedback,
		Strengths:   model.StringList(parsed.Strengths),
		Weaknesses:  model.StringList(parsed.Weaknesses),
	}
	if result.Feedback == "" {
		result.Feedback = "Answer reviewed."
	}
	return result
}

// parseBatchEvaluation 解析整卷评估。totalScore 必须是数字、
// strengths/weaknesses 必须是数组，否则视为不可用
func parseBatchEvaluation(raw string) (BatchEvaluation, bool) {
	obj, ok := extractJSONObject(raw)
	if !ok {
		return BatchEvaluation{}, false
	}

	var parsed struct {
		TotalScore       *float64  `json:"totalScore"`
		Feedback         string    `json:"feedback"`
		Strengths        []string  `json:"strengths"`
		Weaknesses       []string  `json:"weaknesses"`
		RecommendedAreas []string  `json:"recommendedAreas"`
		IndividualScores []float64 `json:"individualScores"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return BatchEvaluation{}, false
	}
	if parsed.TotalScore == nil || parsed.Strengths == nil || parsed.Weaknesses == nil {
		return BatchEvaluation{}, false
	}

	return BatchEvaluation{
		TotalScore:       util.Clamp(int(*parsed.TotalScore)),
		Feedback:         parsed.Feedback,
		Strengths:        capList(parsed.Strengths, 3),
		Weaknesses:       capList(parsed.Weaknesses, 3),
		RecommendedAreas: capList(parsed.RecommendedAreas, 3),
		IndividualScores: parsed.IndividualScores,
	}, true
}

func capList(list []string, max int) []string {
	if len(list) > max {
		return list[:max]
	}
	return list
}

// parseTeachingReply 全文即讲解正文；从提示语（follow-up / understanding /
// check your）之后的行里收集带问号的句子作为追问
func parseTeachingReply(raw string) (string, []string) {
	var followUps []string
	cueSeen := false

	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)
		if !cueSeen {
			if strings.Contains(lower, "follow-up") ||
				strings.Contains(lower, "understanding") ||
				strings.Contains(lower, "check your") {
				cueSeen = true
			}
			continue
		}
		if strings.Contains(line, "?") {
			followUps = append(followUps, strings.Trim(strings.TrimSpace(line), "-*0123456789. \t"))
		}
	}

	return raw, followUps
}

// parseStudyBreak 解析休息建议；失败时给固定的轻量活动
func parseStudyBreak(raw string) StudyBreakRecommendation {
	fallback := StudyBreakRecommendation{
		ActivityType: "stretching",
		Duration:     5,
		Description:  "Stand up, stretch, and look away from the screen for a few minutes.",
		Benefits:     []string{"Reduces eye strain", "Improves focus"},
		Steps:        []string{"Stand up and stretch your arms", "Look out a window for 30 seconds", "Take five slow breaths"},
	}

	obj, ok := extractJSONObject(raw)
	if !ok {
		return fallback
	}

	var parsed StudyBreakRecommendation
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil || parsed.ActivityType == "" {
		return fallback
	}
	if parsed.Duration <= 0 {
		parsed.Duration = 5
	}
	return parsed
}
