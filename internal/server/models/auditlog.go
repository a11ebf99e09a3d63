package models

import "time"

// RunMode distinguishes timer-driven scheduler runs from admin-triggered ones.
type RunMode string

const (
	RunModeAuto   RunMode = "auto"
	RunModeManual RunMode = "manual"
)

// GenerationDetail records the outcome of one attempted template in a run.
// Amount is in minor currency units.
type GenerationDetail struct {
	TemplateID       string `json:"templateId"`
	ProjectName      string `json:"projectName"`
	InvoiceID        string `json:"invoiceId,omitempty"`
	NewInvoiceNumber string `json:"newInvoiceNumber,omitempty"`
	Amount           int64  `json:"amount,omitempty"`
	Error            string `json:"error,omitempty"`
}

// GenerationLogEntry is the immutable audit record of one scheduler run.
// Success is true only if every attempted template succeeded;
// GeneratedCount is the number of invoices actually created.
type GenerationLogEntry struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Type           RunMode            `json:"type"`
	GeneratedCount int                `json:"generatedCount"`
	Success        bool               `json:"success"`
	Error          string             `json:"error,omitempty"`
	Details        []GenerationDetail `json:"details"`
}
