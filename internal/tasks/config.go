package tasks

import (
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
)

// Config holds configuration for the task queue system.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// MaxRetries is the maximum number of attempts for failed tasks. Default: 3
	MaxRetries int

	// RetryDelay is the backoff duration between attempts. Default: 30s
	RetryDelay time.Duration

	// TaskTimeout is the timeout for a single task execution. Default: 2m
	TaskTimeout time.Duration

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration

	// RetentionDuration is how long to keep completed tasks. Default: 24h
	RetentionDuration time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        30 * time.Second,
		TaskTimeout:       2 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = def.MaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = def.RetryDelay
	}
	if c.TaskTimeout <= 0 {
		c.TaskTimeout = def.TaskTimeout
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = def.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	if c.RetentionDuration <= 0 {
		c.RetentionDuration = def.RetentionDuration
	}
	return c
}

// backlite reads a queue's settings from the task type's Config method, so
// the retry policy of the running client is kept here.
var (
	policyMu sync.RWMutex
	policy   = DefaultConfig()
)

func setPolicy(cfg Config) {
	policyMu.Lock()
	policy = cfg
	policyMu.Unlock()
}

func currentPolicy() Config {
	policyMu.RLock()
	defer policyMu.RUnlock()
	return policy
}

// queueConfig applies the client's retry policy to the queue called name.
// Task data is kept only for failed tasks.
func queueConfig(name string) backlite.QueueConfig {
	p := currentPolicy()
	return backlite.QueueConfig{
		Name:        name,
		MaxAttempts: p.MaxRetries,
		Backoff:     p.RetryDelay,
		Timeout:     p.TaskTimeout,
		Retention: &backlite.Retention{
			Duration:   p.RetentionDuration,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}
