package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/billgate/internal/client/models"
	"github.com/dmitrijs2005/billgate/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/billgate/internal/client/sessioncache"
	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeClient scripts the API surface for service tests.
type fakeClient struct {
	verifyCalls   int
	verifySnap    *models.ResourceSnapshot
	verifyErr     error
	updateInvoice *models.Invoice
	updatePartial bool
	updateErr     error
	updateCalls   int
	lastIdemKey   string
	documentURL   string
	documentErr   error
}

func (f *fakeClient) Verify(ctx context.Context, resourceType models.ResourceType, token, pin string) (*models.ResourceSnapshot, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifySnap, nil
}

func (f *fakeClient) UpdateInvoiceStatus(ctx context.Context, projectID, invoiceID string, status models.InvoiceStatus, paidAmount int64, paidDate *string, idemKey string) (*models.Invoice, bool, error) {
	f.updateCalls++
	f.lastIdemKey = idemKey
	if f.updateErr != nil {
		return nil, false, f.updateErr
	}
	return f.updateInvoice, f.updatePartial, nil
}

func (f *fakeClient) GetDocumentURL(ctx context.Context, projectID, invoiceID string) (string, error) {
	if f.documentErr != nil {
		return "", f.documentErr
	}
	return f.documentURL, nil
}

func (f *fakeClient) Close() error { return nil }

func newCache(t *testing.T) *sessioncache.Cache {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE sessions (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	return sessioncache.NewCache(sessions.NewSQLiteRepository(db))
}

func testSnapshot() *models.ResourceSnapshot {
	return &models.ResourceSnapshot{
		ResourceType: models.ResourceTypeProject,
		ResourceID:   "p1",
		Project:      &models.ProjectInfo{ID: "p1", Name: "Site", ClientName: "ACME"},
		VerifiedAt:   time.Now(),
	}
}

func TestUnlock_MissReturnsSessionExpired(t *testing.T) {
	gate := NewAccessGate(&fakeClient{}, newCache(t))

	_, err := gate.Unlock(context.Background(), models.ResourceTypeProject, "tok1")
	require.ErrorIs(t, err, common.ErrSessionExpired)
}

func TestVerifyPIN_WriteThroughThenUnlockHitsCache(t *testing.T) {
	api := &fakeClient{verifySnap: testSnapshot()}
	gate := NewAccessGate(api, newCache(t))
	ctx := context.Background()

	session, err := gate.VerifyPIN(ctx, models.ResourceTypeProject, "tok1", "1234", "en")
	require.NoError(t, err)
	require.Equal(t, "p1", session.Snapshot.ResourceID)
	require.Equal(t, 1, api.verifyCalls)

	// Unlock now succeeds without another server call, and the cached
	// record carries the session metadata.
	unlocked, err := gate.Unlock(ctx, models.ResourceTypeProject, "tok1")
	require.NoError(t, err)
	require.Equal(t, "ACME", unlocked.Snapshot.Project.ClientName)
	require.Equal(t, "en", unlocked.Language)
	require.Equal(t, "1234", unlocked.PIN)
	require.Equal(t, 1, api.verifyCalls)
}

func TestVerifyPIN_BadFormatFailsFast(t *testing.T) {
	api := &fakeClient{verifySnap: testSnapshot()}
	gate := NewAccessGate(api, newCache(t))

	_, err := gate.VerifyPIN(context.Background(), models.ResourceTypeProject, "tok1", "12ab", "en")
	require.ErrorIs(t, err, common.ErrInvalidPin)
	require.Equal(t, 0, api.verifyCalls)
}

func TestVerifyPIN_ServerRejectionNotCached(t *testing.T) {
	api := &fakeClient{verifyErr: common.ErrInvalidPin}
	gate := NewAccessGate(api, newCache(t))
	ctx := context.Background()

	_, err := gate.VerifyPIN(ctx, models.ResourceTypeProject, "tok1", "9999", "en")
	require.ErrorIs(t, err, common.ErrInvalidPin)

	_, err = gate.Unlock(ctx, models.ResourceTypeProject, "tok1")
	require.ErrorIs(t, err, common.ErrSessionExpired)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	api := &fakeClient{verifySnap: testSnapshot()}
	gate := NewAccessGate(api, newCache(t))
	ctx := context.Background()

	_, err := gate.VerifyPIN(ctx, models.ResourceTypeProject, "tok1", "1234", "en")
	require.NoError(t, err)

	require.NoError(t, gate.Logout(ctx, models.ResourceTypeProject, "tok1"))

	_, err = gate.Unlock(ctx, models.ResourceTypeProject, "tok1")
	require.ErrorIs(t, err, common.ErrSessionExpired)
}
