package apns

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/net/http2"
)

const (
	productionHost = "https://api.push.apple.com"
	sandboxHost    = "https://api.sandbox.push.apple.com"

	// Apple accepts provider tokens between 20 and 60 minutes old;
	// refresh ours well inside that window.
	tokenLifetime = 50 * time.Minute
)

// Client wraps token-based APNs delivery. A single client signs and
// sends pushes for one app (key id + team id + bundle id).
type Client struct {
	keyID      string
	teamID     string
	topic      string
	signingKey *ecdsa.PrivateKey

	httpClient *http.Client

	productionHost string
	sandboxHost    string

	mu             sync.Mutex
	bearer         string
	bearerIssuedAt time.Time
}

// Notification is one push to one device.
type Notification struct {
	DeviceToken string
	Sandbox     bool

	Title      string
	Body       string
	Sound      string
	ThreadID   string
	CollapseID string
	Expiration time.Time

	// Data is merged into the payload next to the aps dictionary.
	Data map[string]string
}

// NewClient parses the .p8 signing key and prepares an HTTP/2 client.
// All four credential fields are required.
func NewClient(keyID, teamID, bundleID, privateKeyPEM string) (*Client, error) {
	if keyID == "" || teamID == "" || bundleID == "" || privateKeyPEM == "" {
		return nil, fmt.Errorf("apns: key id, team id, bundle id and private key are all required")
	}

	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("apns: failed to parse signing key: %w", err)
	}

	return &Client{
		keyID:      keyID,
		teamID:     teamID,
		topic:      bundleID,
		signingKey: key,
		httpClient: &http.Client{
			Transport: &http2.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
		productionHost: productionHost,
		sandboxHost:    sandboxHost,
	}, nil
}

// providerToken returns a cached ES256 bearer token, re-signing only
// once the cached one has aged out of its validity window.
func (c *Client) providerToken(now time.Time) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bearer != "" && now.Sub(c.bearerIssuedAt) < tokenLifetime {
		return c.bearer, nil
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": c.teamID,
		"iat": now.Unix(),
	})
	token.Header["kid"] = c.keyID

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", fmt.Errorf("apns: failed to sign provider token: %w", err)
	}

	c.bearer = signed
	c.bearerIssuedAt = now
	return signed, nil
}

// Push sends a single notification and returns an error unless APNs
// answers with a 2xx status.
func (c *Client) Push(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(buildPayload(n))
	if err != nil {
		return fmt.Errorf("apns: failed to encode payload: %w", err)
	}

	bearer, err := c.providerToken(time.Now())
	if err != nil {
		return err
	}

	host := c.productionHost
	if n.Sandbox {
		host = c.sandboxHost
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, host+"/3/device/"+n.DeviceToken, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("apns: failed to build request: %w", err)
	}

	req.Header.Set("authorization", "bearer "+bearer)
	req.Header.Set("apns-topic", c.topic)
	req.Header.Set("apns-push-type", "alert")
	req.Header.Set("content-type", "application/json")
	if n.CollapseID != "" {
		req.Header.Set("apns-collapse-id", n.CollapseID)
	}
	if !n.Expiration.IsZero() {
		req.Header.Set("apns-expiration", fmt.Sprintf("%d", n.Expiration.Unix()))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apns: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("apns: push rejected with status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}

func buildPayload(n Notification) map[string]interface{} {
	alert := map[string]string{
		"title": n.Title,
		"body":  n.Body,
	}

	aps := map[string]interface{}{
		"alert": alert,
	}
	if n.Sound != "" {
		aps["sound"] = n.Sound
	}
	if n.ThreadID != "" {
		aps["thread-id"] = n.ThreadID
	}

	payload := map[string]interface{}{"aps": aps}
	for k, v := range n.Data {
		payload[k] = v
	}
	return payload
}
