package notification

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"campusboard-backend/internal/notification/domain"
	"campusboard-backend/internal/notification/repository"
	"campusboard-backend/pkg/apns"

	"github.com/google/uuid"
)

const (
	// replyThreadID groups all reply notifications in the notification
	// center.
	replyThreadID = "pinboard-replies"

	// previewLength bounds the message preview carried in the payload.
	previewLength = 140

	defaultPushTimeout = 10 * time.Second
)

// Pusher sends one notification to one device. Satisfied by *apns.Client.
type Pusher interface {
	Push(ctx context.Context, n apns.Notification) error
}

// Dispatcher owns device registrations and fans a logical notification
// out to every active device of a recipient. Individual device failures
// are logged and isolated; a push is never allowed to fail its caller.
type Dispatcher struct {
	devices repository.DeviceRepository
	logs    repository.NotificationLogRepository
	client  Pusher
	timeout time.Duration

	// defaultEnvironment is applied to registrations that omit one, so
	// sandbox deployments route tokens to the sandbox backend.
	defaultEnvironment domain.Environment

	// replyExpiry bounds how long APNs may hold an undelivered reply
	// push; a notification about an expired pin is stale.
	replyExpiry time.Duration
}

// NewDispatcher creates a dispatcher. A nil client disables delivery:
// every notify call becomes a safe no-op returning 0.
func NewDispatcher(devices repository.DeviceRepository, logs repository.NotificationLogRepository, client Pusher, defaultEnvironment domain.Environment, replyExpiry time.Duration) *Dispatcher {
	if defaultEnvironment != domain.EnvSandbox {
		defaultEnvironment = domain.EnvProduction
	}
	return &Dispatcher{
		devices:            devices,
		logs:               logs,
		client:             client,
		timeout:            defaultPushTimeout,
		defaultEnvironment: defaultEnvironment,
		replyExpiry:        replyExpiry,
	}
}

// IsConfigured reports whether push credentials were provided.
func (d *Dispatcher) IsConfigured() bool {
	return d.client != nil
}

// RegisterDevice upserts a device token for an email. Idempotent. An
// omitted environment takes the configured default; anything other than
// sandbox or production is coerced to production.
func (d *Dispatcher) RegisterDevice(email, token, platform string, environment domain.Environment, appVersion, osVersion string) error {
	if environment == "" {
		environment = d.defaultEnvironment
	}
	if environment != domain.EnvSandbox {
		environment = domain.EnvProduction
	}
	return d.devices.Upsert(email, token, platform, environment, appVersion, osVersion)
}

// UnregisterDevice deactivates the (email, token) pair. Idempotent.
func (d *Dispatcher) UnregisterDevice(email, token string) error {
	return d.devices.Deactivate(email, token)
}

// NotifyReply pushes a "new reply" notification to every active device
// of the receiver and returns how many devices accepted it. Repeated
// replies to the same pin share a collapse id so they coalesce.
func (d *Dispatcher) NotifyReply(receiverEmail, senderEmail, pinID, messageText, messageID, senderAuthor string) int {
	if !d.IsConfigured() {
		return 0
	}

	sender := senderDescriptor(senderAuthor, senderEmail)
	title := "New reply from " + sender
	body := "Someone answered your pin on the board"

	payload := map[string]string{
		"type":        "pin_reply",
		"pinId":       pinID,
		"messageId":   messageID,
		"senderEmail": senderEmail,
		"preview":     preview(messageText, previewLength),
	}

	var expiration time.Time
	if d.replyExpiry > 0 {
		expiration = time.Now().Add(d.replyExpiry)
	}
	return d.fanOut(receiverEmail, title, body, "pin-"+pinID, expiration, payload)
}

// Broadcast pushes an arbitrary title/body either to one email or to
// every distinct email with at least one active device. Privileged.
func (d *Dispatcher) Broadcast(title, body, targetEmail string) int {
	if !d.IsConfigured() {
		return 0
	}

	payload := map[string]string{"type": "announcement"}
	if targetEmail != "" {
		return d.fanOut(targetEmail, title, body, "", time.Time{}, payload)
	}

	emails, err := d.devices.DistinctActiveEmails()
	if err != nil {
		log.Printf("[Dispatch] Failed to list broadcast recipients: %v", err)
		return 0
	}

	delivered := 0
	for _, email := range emails {
		delivered += d.fanOut(email, title, body, "", time.Time{}, payload)
	}
	return delivered
}

// fanOut sends one logical notification to all active devices of an
// email, concurrently, each send bounded by its own timeout. Returns
// the number of devices that accepted the push.
func (d *Dispatcher) fanOut(email, title, body, collapseID string, expiration time.Time, payload map[string]string) int {
	registrations, err := d.devices.FindActiveByEmail(email)
	if err != nil {
		log.Printf("[Dispatch] Failed to load devices for %s: %v", email, err)
		return 0
	}
	if len(registrations) == 0 {
		return 0
	}

	var delivered int64
	var wg sync.WaitGroup
	for _, registration := range registrations {
		wg.Add(1)
		go func(reg domain.DeviceRegistration) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()

			err := d.client.Push(ctx, apns.Notification{
				DeviceToken: reg.DeviceToken,
				Sandbox:     reg.Environment == domain.EnvSandbox,
				Title:       title,
				Body:        body,
				Sound:       "default",
				ThreadID:    replyThreadID,
				CollapseID:  collapseID,
				Expiration:  expiration,
				Data:        payload,
			})
			if err != nil {
				log.Printf("[Dispatch] Push to device %s failed: %v", tokenTail(reg.DeviceToken), err)
				return
			}
			atomic.AddInt64(&delivered, 1)
		}(registration)
	}
	wg.Wait()

	if delivered > 0 {
		d.audit(email, title, body, payload)
	}
	return int(delivered)
}

func (d *Dispatcher) audit(email, title, body string, payload map[string]string) {
	if d.logs == nil {
		return
	}
	encoded, _ := json.Marshal(payload)
	err := d.logs.Create(&domain.NotificationLog{
		ID:        uuid.New().String(),
		Email:     email,
		Title:     title,
		Body:      body,
		Payload:   string(encoded),
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Printf("[Dispatch] Failed to record notification audit entry: %v", err)
	}
}

// senderDescriptor prefers the explicit author name, falling back to a
// title-cased rendering of the email's local part ("jane.doe" -> "Jane Doe").
func senderDescriptor(author, email string) string {
	if name := strings.TrimSpace(author); name != "" {
		return name
	}

	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}

	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(words) == 0 {
		return "Someone"
	}
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// preview truncates to max runes, appending an ellipsis when cut.
func preview(text string, max int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "…"
}

func tokenTail(token string) string {
	if len(token) <= 8 {
		return token
	}
	return "..." + token[len(token)-8:]
}
