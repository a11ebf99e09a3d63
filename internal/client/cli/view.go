package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/billgate/internal/client/models"
	"github.com/dmitrijs2005/billgate/internal/common"
)

// getSimpleText and getPIN are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPIN = GetPIN

func (a *App) isUnlocked() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.session.ResourceType, a.session.Token)
}

// Open unlocks a shared view. It first tries the locally cached session; on
// a miss (or expiry) it prompts for the PIN and runs the canonical server
// verification, which restarts the session window.
func (a *App) Open(ctx context.Context) error {
	resourceType, err := getSimpleText(a.reader, "Enter resource type (project/invoice/quote/hosting)", os.Stdout)
	if err != nil {
		return err
	}
	token, err := getSimpleText(a.reader, "Enter share link token", os.Stdout)
	if err != nil {
		return err
	}

	rt := models.ResourceType(resourceType)

	session, err := a.gate.Unlock(ctx, rt, token)
	if err != nil {
		if !errors.Is(err, common.ErrSessionExpired) {
			log.Printf("error: %v", err)
			return err
		}

		pin, err := getPIN(os.Stdout)
		if err != nil {
			return err
		}

		session, err = a.gate.VerifyPIN(ctx, rt, token, pin, a.language)
		if err != nil {
			log.Printf("Verification unsuccessful: %s", err.Error())
			return err
		}
		log.Println("Verified")
	} else {
		log.Println("Unlocked from cached session")
	}

	a.session = session
	return nil
}

// Show prints the unlocked snapshot: the project header plus whichever of
// invoices, quotes and hosting accounts the share link exposes.
func (a *App) Show(ctx context.Context) error {
	if !a.isUnlocked() {
		log.Println("No view is unlocked, use 'open' first")
		return nil
	}

	snap := a.session.Snapshot
	now := time.Now()

	if snap.Project != nil {
		log.Printf("Project: %s (%s)", snap.Project.Name, snap.Project.ClientName)
	}

	for _, inv := range snap.Invoices {
		overdue := ""
		if inv.IsOverdue(now) {
			overdue = " OVERDUE"
		}
		log.Printf("Invoice %s  %s  due %s  %s%s",
			inv.Number, formatAmount(inv.TotalAmount, inv.Currency),
			inv.DueDate.Format("2006-01-02"), inv.Status, overdue)
		if inv.PaidAmount > 0 && inv.PaidAmount < inv.TotalAmount {
			log.Printf("  partially paid: %s", formatAmount(inv.PaidAmount, inv.Currency))
		}
		for _, item := range inv.Items {
			log.Printf("  %s x%d @ %s", item.Description, item.Quantity, formatAmount(item.UnitPrice, inv.Currency))
		}
	}

	for _, q := range snap.Quotes {
		expired := ""
		if q.IsExpired(now) {
			expired = " EXPIRED"
		}
		log.Printf("Quote %s  %s  valid until %s  %s%s",
			q.Number, formatAmount(q.TotalAmount, q.Currency),
			q.ValidUntil.Format("2006-01-02"), q.Status, expired)
	}

	for _, h := range snap.Hosting {
		state := "inactive"
		if h.Active {
			state = "active"
		}
		log.Printf("Hosting %s  plan %s  %s  expires %s",
			h.Domain, h.Plan, state, h.ExpiresAt.Format("2006-01-02"))
	}

	log.Printf("Verified at: %s", snap.VerifiedAt.Format(time.RFC3339))
	return nil
}

// Logout drops the cached session. The share link itself stays valid and can
// be opened again with the PIN.
func (a *App) Logout(ctx context.Context) error {
	if !a.isUnlocked() {
		return nil
	}
	if err := a.gate.Logout(ctx, a.session.ResourceType, a.session.Token); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.session = nil
	return nil
}
