package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvAccessTokenSecret = "ACCESS_TOKEN_SECRET"
	EnvTokenTTL          = "TOKEN_TTL"

	EnvStripeSecretKey = "STRIPE_SECRET_KEY"

	EnvMailjetPublicKey  = "MJ_APIKEY_PUBLIC"
	EnvMailjetPrivateKey = "MJ_APIKEY_PRIVATE"
	EnvMailFromEmail     = "MAIL_FROM_EMAIL"
	EnvMailFromName      = "MAIL_FROM_NAME"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
