package config

var (
	AppVersion             = "v1.0.0"
	AppPort                = "3000"
	AppDebug               = false
	AppBasicAuthCredential []string
	AppBasePath            = ""
	AppTrustedProxies      []string
	AppCorsAllowedOrigins  = []string{"http://localhost:3000"}

	PathStorages = "storages"
	PathUploads  = "statics/uploads"

	DBURI = "file:storages/linkforge.db?_journal_mode=WAL&_foreign_keys=on"

	// AI providers
	GeminiAPIKey     string
	GeminiModel      = "gemini-2.5-flash"
	GeminiImageModel = "gemini-2.0-flash-preview-image-generation"
	OpenAIAPIKey     string
	OpenAIImageModel = "dall-e-3"

	// LinkedIn publishing. Without an access token the publisher runs
	// in simulation mode and returns synthetic post IDs.
	LinkedInAccessToken string
	LinkedInAuthorURN   string
	LinkedInAPIBase     = "https://api.linkedin.com/v2"

	// Posts above this length get truncated in the LinkedIn feed
	// preview; generation aims below it.
	PostContentCharBudget = 1300

	// Publish worker pool
	PublishWorkerPoolSize  = 4
	PublishWorkerQueueSize = 64
)
