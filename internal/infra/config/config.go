// internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	GCPCreds                 string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Firebase Auth token exchange (securetoken endpoint)
	FirebaseAPIKey       string
	FirebaseRefreshToken string

	// Polling intervals
	ChatPollInterval  time.Duration
	OrderPollInterval time.Duration

	// Local-only storage (cart persistence)
	LocalDataDir string

	// Outbound mail
	SendGridAPIKey string
	MailFrom       string

	// Optional push fan-out target
	FCMDeviceToken string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "homeplate-marketplace")

	return &Config{
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		FirebaseAPIKey:       os.Getenv("FIREBASE_API_KEY"),
		FirebaseRefreshToken: os.Getenv("FIREBASE_REFRESH_TOKEN"),

		// observed defaults: chat polls every 5s, order lists every 15s
		ChatPollInterval:  getenvSeconds("CHAT_POLL_INTERVAL_SECONDS", 5),
		OrderPollInterval: getenvSeconds("ORDER_POLL_INTERVAL_SECONDS", 15),

		LocalDataDir: getenvDefault("LOCAL_DATA_DIR", ".homeplate"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenvDefault("MAIL_FROM", "noreply@homeplate.app"),

		FCMDeviceToken: os.Getenv("FCM_DEVICE_TOKEN"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvSeconds(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}
