package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/billgate/internal/client/client"
	"github.com/dmitrijs2005/billgate/internal/client/config"
	"github.com/dmitrijs2005/billgate/internal/client/models"
	"github.com/dmitrijs2005/billgate/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/billgate/internal/client/services"
	"github.com/dmitrijs2005/billgate/internal/client/sessioncache"

	_ "modernc.org/sqlite"
)

// accessGate and invoiceService are the slices of the services layer the CLI
// uses; tests substitute stubs.
type accessGate interface {
	Unlock(ctx context.Context, resourceType models.ResourceType, token string) (*models.Session, error)
	VerifyPIN(ctx context.Context, resourceType models.ResourceType, token, pin, language string) (*models.Session, error)
	Logout(ctx context.Context, resourceType models.ResourceType, token string) error
}

type invoiceService interface {
	Pay(ctx context.Context, projectID, invoiceID string, amount int64, paidDate time.Time) (*services.MutationResult, error)
	Cancel(ctx context.Context, projectID, invoiceID string) (*services.MutationResult, error)
	DocumentURL(ctx context.Context, projectID, invoiceID string) (string, error)
	Download(ctx context.Context, projectID, invoiceID, path string) error
}

type App struct {
	config   *config.Config
	gate     accessGate
	invoices invoiceService
	session  *models.Session
	language string
	reader   *bufio.Reader
	db       *sql.DB
	api      client.Client
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	cache := sessioncache.NewCache(sessions.NewSQLiteRepository(db))
	gate := services.NewAccessGate(apiClient, cache)
	inv := services.NewInvoiceService(apiClient)

	return &App{
		config:   c,
		gate:     gate,
		invoices: inv,
		language: c.Language,
		reader:   bufio.NewReader(os.Stdin),
		db:       db,
		api:      apiClient,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.api.Close()
		_ = a.db.Close()
	}()

	log.Println("Welcome to BillGate CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	runREPL(ctx, a, a.getStatus, scanner)
}
