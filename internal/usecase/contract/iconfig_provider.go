package usecasecontract

import "time"

// IConfigProvider exposes the configuration values use cases depend on.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetRefreshTokenExpiry() time.Duration
	GetInboxLimit() int
	GetDeletionStaleAfter() time.Duration
}
