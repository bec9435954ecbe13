package config

import "time"

type WorkerConfig struct {
	EventWorkers           int
	ArchiveWorkers         int
	PollInterval           time.Duration
	MaxConsecutiveFailures int
}

// DefaultWorkerConfig returns worker settings from environment variables
func DefaultWorkerConfig() *WorkerConfig {
	return &WorkerConfig{
		EventWorkers:           getEnvIntWithDefault("EVENT_WORKER_COUNT", 1),
		ArchiveWorkers:         getEnvIntWithDefault("ARCHIVE_WORKER_COUNT", 1),
		PollInterval:           getEnvDurationWithDefault("WORKER_POLL_INTERVAL", 5*time.Second),
		MaxConsecutiveFailures: getEnvIntWithDefault("EVENT_WORKER_MAX_RECEIVE_FAILURES", 5),
	}
}
