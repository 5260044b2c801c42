package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "doctor_portal"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	DefaultTokenTTL = 24 * time.Hour

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMailFromEmail = "noreply@doctorsportal.example"
	DefaultMailFromName  = "Doctors Portal"
)
