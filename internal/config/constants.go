// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "lingolearn"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort    = ":8080"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultReviewLimit   = 20
	DefaultExerciseCount = 10
	DefaultAllowedOrigin = "http://localhost:3000"
)
