// Package clerk holds the webhook payloads sent by Clerk and the Svix
// signature check that guards them.
package clerk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	EventUserCreated = "user.created"

	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"

	secretPrefix = "whsec_"
	tolerance    = 5 * time.Minute
)

var (
	ErrMissingHeaders   = errors.New("clerk: missing svix headers")
	ErrInvalidSignature = errors.New("clerk: invalid webhook signature")
	ErrTimestamp        = errors.New("clerk: webhook timestamp outside tolerance")
)

type Event struct {
	Type string   `json:"type"`
	Data UserData `json:"data"`
}

type UserData struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Username       string         `json:"username"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
}

type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// Verifier checks Svix signatures with the endpoint signing secret.
type Verifier struct {
	key []byte
	now func() time.Time
}

// NewVerifier decodes a "whsec_..." signing secret.
func NewVerifier(secret string) (*Verifier, error) {
	raw := strings.TrimPrefix(secret, secretPrefix)
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("clerk: decode signing secret: %w", err)
	}
	return &Verifier{key: key, now: time.Now}, nil
}

// WithClock overrides time.Now, for tests.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Verify checks the svix headers against body.
func (v *Verifier) Verify(header http.Header, body []byte) error {
	id := header.Get(HeaderID)
	ts := header.Get(HeaderTimestamp)
	sigs := header.Get(HeaderSignature)
	if id == "" || ts == "" || sigs == "" {
		return ErrMissingHeaders
	}

	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrTimestamp
	}
	sent := time.Unix(sec, 0)
	if d := v.now().Sub(sent); d > tolerance || d < -tolerance {
		return ErrTimestamp
	}

	expected := v.Sign(id, sent, body)
	for _, candidate := range strings.Fields(sigs) {
		version, sig, ok := strings.Cut(candidate, ",")
		if !ok || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// Sign computes the v1 signature for a message.
func (v *Verifier) Sign(id string, ts time.Time, body []byte) string {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(id + "." + strconv.FormatInt(ts.Unix(), 10) + "."))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
