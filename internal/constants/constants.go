package constants

import "time"

const (
	HitFlushInterval = 60 * time.Second
	TelemetryTimeout = 10 * time.Second
	ImageScanTimeout = 10 * time.Second
)

const (
	MaxUploadBytes = 5 << 20
)

const (
	ShutdownTimeout = 5 * time.Second
)
