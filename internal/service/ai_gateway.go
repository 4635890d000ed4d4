package service

import (
	"ai_tutor_backend/pkg/monitoring"
	"context"
	"time"
)

// AIGateway 把缓存查询、超时控制和指标采集收拢到一次模型调用里。
// 错误原样抛给调用方，由各调用点决定自己的用户侧兜底值。
type AIGateway struct {
	client  ChatClient
	cache   *ResponseCache
	timeout time.Duration
}

func NewAIGateway(client ChatClient, cache *ResponseCache, timeout time.Duration) *AIGateway {
	return &AIGateway{
		client:  client,
		cache:   cache,
		timeout: timeout,
	}
}

// Generate 缓存命中直接返回模型原文；未命中时在固定超时内调用模型
func (g *AIGateway) Generate(ctx context.Context, operation, cacheKey, system, prompt string) (string, error) {
	return g.cache.GetOrCompute(ctx, cacheKey, func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		start := time.Now()
		reply, err := g.client.Chat(callCtx, system, prompt)
		monitoring.AIRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		monitoring.AIRequestCounter.WithLabelValues(operation, outcome).Inc()

		return reply, err
	})
}

// Stream 绕过缓存直接透传模型的流式输出
func (g *AIGateway) Stream(ctx context.Context, operation, system, prompt string) (<-chan string, <-chan error) {
	monitoring.AIRequestCounter.WithLabelValues(operation, "stream").Inc()
	return g.client.ChatStream(ctx, system, prompt)
}
