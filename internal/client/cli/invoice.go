package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/billgate/internal/client/models"
	"github.com/dmitrijs2005/billgate/internal/client/services"
)

// formatAmount renders cents as a decimal money string, e.g. "120.50 EUR".
func formatAmount(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
}

// parseAmount converts a decimal money string like "120.50" or "120" into
// cents. At most two fractional digits are accepted.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	whole, frac, _ := strings.Cut(s, ".")

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("invalid amount: %q", s)
	}

	if frac == "" {
		return w * 100, nil
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount: %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid amount: %q", s)
	}
	if len(frac) == 1 {
		f *= 10
	}
	return w*100 + f, nil
}

// projectID resolves the project the unlocked view belongs to. Project links
// carry it directly; other links derive it from the exposed invoices.
func (a *App) projectID() (string, error) {
	snap := a.session.Snapshot
	if snap.ResourceType == models.ResourceTypeProject {
		return snap.ResourceID, nil
	}
	if len(snap.Invoices) > 0 {
		return snap.Invoices[0].ProjectID, nil
	}
	return "", fmt.Errorf("current view exposes no invoices")
}

// updateSnapshotInvoice refreshes the in-memory snapshot after a confirmed
// mutation so 'show' reflects the new state without a re-verification.
func (a *App) updateSnapshotInvoice(inv *models.Invoice) {
	if inv == nil {
		return
	}
	for i, existing := range a.session.Snapshot.Invoices {
		if existing.ID == inv.ID {
			a.session.Snapshot.Invoices[i] = inv
			return
		}
	}
}

func (a *App) reportMutation(result *services.MutationResult) {
	if result.State == services.SyncStatePendingSync {
		log.Println("Could not reach the server; the change was NOT confirmed. Run the command again later, the retry is safe.")
		return
	}
	a.updateSnapshotInvoice(result.Invoice)
	log.Printf("Invoice %s is now %s", result.Invoice.Number, result.Invoice.Status)
	if result.PartialPayment {
		log.Printf("Warning: payment covers only %s of %s",
			formatAmount(result.Invoice.PaidAmount, result.Invoice.Currency),
			formatAmount(result.Invoice.TotalAmount, result.Invoice.Currency))
	}
}

// Pay prompts for an invoice id, amount and paid date and marks the invoice
// paid. A transport failure is reported as pending sync, never as success.
func (a *App) Pay(ctx context.Context) error {
	if !a.isUnlocked() {
		log.Println("No view is unlocked, use 'open' first")
		return nil
	}
	projectID, err := a.projectID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	invoiceID, err := getSimpleText(a.reader, "Enter invoice id", os.Stdout)
	if err != nil {
		return err
	}
	amountText, err := getSimpleText(a.reader, "Enter amount paid (e.g. 120.50)", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := parseAmount(amountText)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	dateText, err := getSimpleText(a.reader, "Enter paid date (YYYY-MM-DD, empty for today)", os.Stdout)
	if err != nil {
		return err
	}
	paidDate := time.Now()
	if dateText != "" {
		paidDate, err = time.Parse("2006-01-02", dateText)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
	}

	result, err := a.invoices.Pay(ctx, projectID, invoiceID, amount, paidDate)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.reportMutation(result)
	return nil
}

// Cancel prompts for an invoice id and voids it.
func (a *App) Cancel(ctx context.Context) error {
	if !a.isUnlocked() {
		log.Println("No view is unlocked, use 'open' first")
		return nil
	}
	projectID, err := a.projectID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	invoiceID, err := getSimpleText(a.reader, "Enter invoice id", os.Stdout)
	if err != nil {
		return err
	}

	result, err := a.invoices.Cancel(ctx, projectID, invoiceID)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.reportMutation(result)
	return nil
}

// Document fetches the PDF for an invoice. With an output path it downloads
// the file; with an empty path it just prints the presigned URL.
func (a *App) Document(ctx context.Context) error {
	if !a.isUnlocked() {
		log.Println("No view is unlocked, use 'open' first")
		return nil
	}
	projectID, err := a.projectID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	invoiceID, err := getSimpleText(a.reader, "Enter invoice id", os.Stdout)
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Enter output path (empty to print the URL)", os.Stdout)
	if err != nil {
		return err
	}

	if path == "" {
		url, err := a.invoices.DocumentURL(ctx, projectID, invoiceID)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
		log.Printf("Document URL: %s", url)
		return nil
	}

	if err := a.invoices.Download(ctx, projectID, invoiceID, path); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	log.Printf("Document saved to: %s", path)
	return nil
}
