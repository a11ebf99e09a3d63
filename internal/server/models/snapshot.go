package models

import "time"

// ProjectInfo is the denormalized project header included in snapshots.
type ProjectInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"clientName"`
}

// HostingAccount is read-only hosting data shown in the shared view.
type HostingAccount struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Domain    string    `json:"domain"`
	Plan      string    `json:"plan"`
	Active    bool      `json:"active"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ResourceSnapshot is the denormalized copy of server state returned by a
// successful PIN verification. For a project link all sections are filled;
// for narrower links only the matching section is. The snapshot is a read
// cache on the client side and is allowed to go stale until re-verified.
type ResourceSnapshot struct {
	ResourceType ResourceType      `json:"resourceType"`
	ResourceID   string            `json:"resourceId"`
	Project      *ProjectInfo      `json:"project,omitempty"`
	Invoices     []*Invoice        `json:"invoices,omitempty"`
	Quotes       []*Quote          `json:"quotes,omitempty"`
	Hosting      []*HostingAccount `json:"hosting,omitempty"`
	VerifiedAt   time.Time         `json:"verifiedAt"`
}
