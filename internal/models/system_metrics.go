package models

import "time"

// SystemMetrics is a lightweight snapshot of runtime counters for the metrics summary endpoint.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	AIGenerations            uint64    `json:"ai_generations"`
	AIFailures               uint64    `json:"ai_failures"`
	AverageAIDurationMs      float64   `json:"average_ai_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
