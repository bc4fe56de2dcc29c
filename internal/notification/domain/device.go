package domain

import "time"

// Environment selects which APNs backend a device's token belongs to.
type Environment string

const (
	EnvSandbox    Environment = "sandbox"
	EnvProduction Environment = "production"
)

// DeviceRegistration is one push token owned by an email. The token is
// the identity: re-registering the same token refreshes its metadata
// and reactivates it. Rows are deactivated rather than deleted so the
// registration history stays auditable.
type DeviceRegistration struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Email       string      `json:"email" gorm:"index;not null"`
	DeviceToken string      `json:"-" gorm:"uniqueIndex;not null"` // Don't expose token in JSON
	Platform    string      `json:"platform"`
	Environment Environment `json:"environment" gorm:"default:production"`
	AppVersion  string      `json:"appVersion"`
	OSVersion   string      `json:"osVersion"`
	IsActive    bool        `json:"isActive" gorm:"default:true"`
	LastUsedAt  time.Time   `json:"lastUsedAt"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NotificationLog records one successfully delivered logical
// notification (at least one device accepted it).
type NotificationLog struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"index;not null"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Payload   string    `json:"payload"` // JSON-encoded custom payload
	CreatedAt time.Time `json:"createdAt"`
}
