package models

import (
	"encoding/json"
	"time"
)

// Capability is one named permission an embed token may hold.
type Capability string

const (
	CapSessionCreate Capability = "session:create"
	CapSessionPlay   Capability = "session:play"
	CapConfigRead    Capability = "config:read"
)

// CapabilitySet is the parsed form of a token's permissions document.
type CapabilitySet map[Capability]struct{}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// EmbedToken is a partner-scoped bearer credential. Revocation is
// deletion of the row; there is no status flag.
type EmbedToken struct {
	ID          int64           `json:"id"` // Primary key
	Token       string          `json:"-"`  // unique secret, never serialized
	PartnerID   int64           `json:"partner_id"`
	Permissions json.RawMessage `json:"permissions"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// permissionsDoc is the wire shape of the permissions column. expires_at
// is optional; the data model itself has no expiry field.
type permissionsDoc struct {
	Capabilities []string   `json:"capabilities"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// ParsePermissions turns the raw permissions document into a capability
// set, once, at token load time. Malformed documents and expired tokens
// yield the empty set: a broken permission blob never grants anything.
func ParsePermissions(raw json.RawMessage, now time.Time) CapabilitySet {
	set := CapabilitySet{}

	var doc permissionsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return set
	}
	if doc.ExpiresAt != nil && !now.Before(*doc.ExpiresAt) {
		return set
	}

	for _, c := range doc.Capabilities {
		set[Capability(c)] = struct{}{}
	}
	return set
}

// Capabilities parses this token's permissions document, fail closed.
func (t *EmbedToken) Capabilities(now time.Time) CapabilitySet {
	return ParsePermissions(t.Permissions, now)
}
