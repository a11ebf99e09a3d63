package models

import "time"

// ResourceType identifies what kind of resource a share link unlocks.
type ResourceType string

const (
	ResourceTypeProject ResourceType = "project"
	ResourceTypeInvoice ResourceType = "invoice"
	ResourceTypeQuote   ResourceType = "quote"
	ResourceTypeHosting ResourceType = "hosting"
)

// Valid reports whether rt is a known resource type.
func (rt ResourceType) Valid() bool {
	switch rt {
	case ResourceTypeProject, ResourceTypeInvoice, ResourceTypeQuote, ResourceTypeHosting:
		return true
	}
	return false
}

// ShareLink pairs an unguessable token with one protected resource and the
// bcrypt hash of its PIN. Immutable once issued; PIN rotation is not
// supported.
type ShareLink struct {
	Token        string
	ResourceType ResourceType
	ResourceID   string
	PinHash      []byte
	CreatedAt    time.Time
}
