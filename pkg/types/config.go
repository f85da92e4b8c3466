package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Session tokens are HS256 JWTs signed with this secret and carried in an
	// encrypted cookie.
	JWTSecret        string `envconfig:"JWT_SECRET"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`

	// Avatar storage
	S3BucketName    string `envconfig:"S3_BUCKET_NAME" default:"rokto-avatars"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`

	// Bootstrap admin created by the seed command when absent
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}
