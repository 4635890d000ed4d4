package service

import (
	"fmt"
	"strings"
)

// 教育程度/难度档位，来自前端在 topic 尾部附加的元数据
const (
	LevelBeginner = "Beginner"
	LevelStandard = "Standard"
	LevelAdvanced = "Advanced"
)

const tutorSystemPrompt = "You are an experienced, encouraging tutor for an education platform. " +
	"Follow the output format instructions exactly."

// difficultyDistribution 按难度档位给出 easy/medium/hard 的题量倾斜
func difficultyDistribution(level string, total int) (easy, medium, hard int) {
	switch level {
	case LevelBeginner:
		easy, medium, hard = 4, 2, 0
	case LevelAdvanced:
		easy, medium, hard = 0, 2, 4
	default:
		easy, medium, hard = 2, 2, 2
	}
	// 配比按默认 6 题设计，总数不同则等比缩放
	if total > 0 && total != easy+medium+hard {
		sum := easy + medium + hard
		easy = easy * total / sum
		hard = hard * total / sum
		medium = total - easy - hard
	}
	return
}

func buildQuestionPrompt(topic string, existing []string, education, difficulty string, count int) string {
	easy, medium, hard := difficultyDistribution(difficulty, count)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d quiz questions about %q for a %s-level student.\n", count, topic, nonEmpty(education, "Standard"))
	fmt.Fprintf(&b, "Difficulty mix: %d easy, %d medium, %d hard.\n", easy, medium, hard)
	b.WriteString("Return ONLY a JSON array where each element is {\"question\": string, \"difficulty\": \"easy\"|\"medium\"|\"hard\"}.\n")

	if len(existing) > 0 {
		b.WriteString("The student has already seen the following questions. Do NOT repeat or paraphrase any of them:\n")
		for _, q := range existing {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}

	return b.String()
}

func buildEvaluationPrompt(questionText, userAnswer string) string {
	return fmt.Sprintf(
		"Evaluate the student's answer to the question below.\n"+
			"Question: %s\n"+
			"Student answer: %s\n"+
			"Return ONLY a JSON object: {\"correctness\": number from 0 to 100, \"feedback\": string, "+
			"\"strengths\": [string], \"weaknesses\": [string]}.",
		questionText, userAnswer)
}

func buildBatchEvaluationPrompt(topic string, pairs []QuestionAnswerPair) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate this completed test on %q as a whole.\n", topic)
	for i, p := range pairs {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, p.Question, i+1, p.Answer)
	}
	b.WriteString("Return ONLY a JSON object: {\"totalScore\": number from 0 to 100, \"feedback\": string, " +
		"\"strengths\": [up to 3 strings], \"weaknesses\": [up to 3 strings], " +
		"\"recommendedAreas\": [up to 3 strings], " +
		"\"individualScores\": [one number per question, in order]}.")
	return b.String()
}

func buildTeachingPrompt(topic, question string) string {
	return fmt.Sprintf(
		"You are teaching a student about %q. The student asked: %s\n"+
			"Give an engaging, clear explanation with a concrete example. "+
			"Finish with 1-2 follow-up questions to check your student's understanding, "+
			"introduced by a line like \"Follow-up questions:\".",
		topic, question)
}

func buildNotesPrompt(topic string, weakAreas []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write thorough study notes in Markdown about %q.\n", topic)
	b.WriteString("Cover: key definitions, core principles, worked examples, " +
		"a description of a helpful visual/diagram, and common misconceptions.\n")
	if len(weakAreas) > 0 {
		fmt.Fprintf(&b, "Pay special attention to these areas the student struggles with: %s.\n",
			strings.Join(weakAreas, ", "))
	}
	return b.String()
}

func buildCorrectAnswerPrompt(questionText string) string {
	return fmt.Sprintf(
		"Provide the correct answer to the following quiz question, in 2-4 sentences, "+
			"written so a student can learn from it:\n%s", questionText)
}

func buildStudyBreakPrompt(sessionMinutes int, topic, lastBreakType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A student has been studying %q for %d minutes and needs a short break.\n", topic, sessionMinutes)
	if lastBreakType != "" {
		fmt.Fprintf(&b, "Their previous break was %q, so suggest something different.\n", lastBreakType)
	}
	b.WriteString("Return ONLY a JSON object: {\"activityType\": string, \"duration\": number of minutes, " +
		"\"description\": string, \"benefits\": [string], \"steps\": [string]}.")
	return b.String()
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
