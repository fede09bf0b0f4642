package utils

import "time"

// DefaultWorkers is deliberately small; the download backends throttle
// aggressive clients, so chunk-level concurrency is the only rate limiting.
const DefaultWorkers = 4

const TempDirName = ".cratedl-temp"

type HTTPClientConfig struct {
	Timeout       time.Duration
	KATimeout     time.Duration
	ProxyURL      string
	ProxyUsername string
	ProxyPassword string
	UserAgent     string
	Headers       map[string]string
}
