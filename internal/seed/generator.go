// Package seed populates or purges the dashboard collections with plausible
// random records for development and testing. It writes straight through the
// document store adapter, bypassing the CRUD engine.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/patisserie-app/admin/internal/domain/models"
	"github.com/patisserie-app/admin/internal/engine"
	"github.com/patisserie-app/admin/internal/schema"
	"github.com/patisserie-app/admin/internal/store"
)

// Generator builds bounded-random records and keeps a human-readable log of
// every batch for the dashboard's utility panel.
type Generator struct {
	store  store.DocumentStore
	logger *zap.Logger
	rng    *rand.Rand
	now    func() time.Time

	mu  sync.Mutex
	log []string
}

// New returns a generator with a time-seeded rng.
func New(ds store.DocumentStore, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		store:  ds,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// Log returns a copy of the panel log lines accumulated so far.
func (g *Generator) Log() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.log...)
}

func (g *Generator) logf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	g.mu.Lock()
	g.log = append(g.log, fmt.Sprintf("%s: %s", g.now().Format("15:04:05"), message))
	g.mu.Unlock()
	g.logger.Info(message)
}

// Generate writes count random records of the given type. Unknown types fail
// with schema.ErrUnknownRecordType.
func (g *Generator) Generate(ctx context.Context, recordType string, count int) error {
	switch recordType {
	case store.CollectionProducts:
		return g.generateProducts(ctx, count)
	case store.CollectionStock:
		return g.generateStock(ctx, count)
	case store.CollectionTransactions:
		return g.generateTransactions(ctx, count)
	case store.CollectionEmployees:
		return g.generateEmployees(ctx, count)
	case store.CollectionReportsArchive:
		return g.generateReports(ctx, count)
	case store.CollectionWeeklyTemplates:
		return g.generateWeeklyTemplates(ctx, count)
	default:
		return fmt.Errorf("%w: %s", schema.ErrUnknownRecordType, recordType)
	}
}

// GenerateAll runs every generator in a fixed sequence at the default
// counts. The first failure aborts the remaining steps; it is logged, not
// re-thrown.
func (g *Generator) GenerateAll(ctx context.Context) {
	g.logf("Starting test data generation...")

	steps := []struct {
		recordType string
		count      int
	}{
		{store.CollectionProducts, defaultProducts},
		{store.CollectionStock, defaultStock},
		{store.CollectionTransactions, defaultTransactions},
		{store.CollectionEmployees, defaultEmployees},
		{store.CollectionReportsArchive, defaultReports},
		{store.CollectionWeeklyTemplates, defaultWeeklyTemplates},
	}

	for _, step := range steps {
		if err := g.Generate(ctx, step.recordType, step.count); err != nil {
			g.logf("✗ Error: %v", err)
			return
		}
	}

	g.logf("✓ All test data generated successfully!")
}

// DeleteAllCollections purges the six collections after one confirmation.
// Collections go sequentially; deletes within a collection fan out
// concurrently, and a failing collection aborts the rest.
func (g *Generator) DeleteAllCollections(ctx context.Context, confirm engine.ConfirmFunc) error {
	if confirm == nil || !confirm("Are you sure you want to delete ALL test data? This action cannot be undone.") {
		return engine.ErrConfirmationDeclined
	}

	g.logf("Starting deletion of all test data...")

	for _, collection := range store.AllCollections() {
		docs, err := g.store.List(ctx, collection)
		if err != nil {
			g.logf("✗ Error: %v", err)
			return err
		}

		eg, gctx := errgroup.WithContext(ctx)
		for _, doc := range docs {
			doc := doc
			eg.Go(func() error {
				return g.store.Delete(gctx, collection, doc.ID)
			})
		}
		if err := eg.Wait(); err != nil {
			g.logf("✗ Error: %v", err)
			return err
		}

		g.logf("✓ Deleted all from %s", collection)
	}

	g.logf("✓ All test data deleted successfully!")
	return nil
}

func (g *Generator) generateProducts(ctx context.Context, count int) error {
	g.logf("Generating %d products...", count)
	for i := 0; i < count; i++ {
		product := models.Product{
			Name:          fmt.Sprintf("%s %d", productNames[g.rng.Intn(len(productNames))], i+1),
			Price:         g.rng.Float64()*5 + 1,
			PiecesPerTray: g.rng.Intn(30) + 5,
			TargetValue:   float64(g.rng.Intn(50) + 1),
			TargetType:    g.targetType(),
		}
		if _, err := g.store.Create(ctx, store.CollectionProducts, product.Fields()); err != nil {
			return fmt.Errorf("generate products: %w", err)
		}
	}
	g.logf("✓ Generated %d products", count)
	return nil
}

func (g *Generator) generateStock(ctx context.Context, count int) error {
	g.logf("Generating %d stock items...", count)

	// Best-effort referential plausibility: sample real products when any
	// exist, otherwise fabricate a placeholder pair.
	existing, err := g.store.List(ctx, store.CollectionProducts)
	if err != nil {
		return fmt.Errorf("generate stock: list products: %w", err)
	}

	for i := 0; i < count; i++ {
		date := g.now().AddDate(0, 0, -g.rng.Intn(7))

		var productID, productName string
		if len(existing) > 0 {
			picked := existing[g.rng.Intn(len(existing))]
			productID = picked.ID
			productName, _ = picked.Fields["name"].(string)
		} else {
			productID = "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
			productName = productNames[g.rng.Intn(len(productNames))]
		}

		stock := models.Stock{
			ProductID:           productID,
			ProductName:         productName,
			PiecesPerTray:       g.rng.Intn(20) + 5,
			TargetType:          string(g.targetType()),
			Percentage:          g.rng.Intn(100),
			Date:                date.Format("2006-01-02"),
			CreatedAt:           date.Format(time.RFC3339),
			UpdatedAt:           g.now().Format(time.RFC3339),
			TotalItemsProduced:  g.rng.Intn(200) + 10,
			PlateausInFreezer:   g.rng.Intn(30),
			PlateausHolding:     g.rng.Intn(10),
			PlateausReadyToSell: g.rng.Intn(20),
			ItemsInPOS:          g.rng.Intn(50),
			ItemsSoldToday:      g.rng.Intn(30),
		}
		if _, err := g.store.Create(ctx, store.CollectionStock, stock.Fields()); err != nil {
			return fmt.Errorf("generate stock: %w", err)
		}
	}
	g.logf("✓ Generated %d stock items", count)
	return nil
}

func (g *Generator) generateTransactions(ctx context.Context, count int) error {
	g.logf("Generating %d transactions...", count)
	for i := 0; i < count; i++ {
		// Expenses outnumber income roughly 7:3, like a real register.
		txType := models.TransactionIncome
		if g.rng.Float64() > 0.3 {
			txType = models.TransactionExpense
		}

		tx := models.Transaction{
			Montant:     float64(g.rng.Intn(200) + 10),
			Raison:      transactionReasons[g.rng.Intn(len(transactionReasons))],
			Type:        txType,
			Timestamp:   g.now().AddDate(0, 0, -g.rng.Intn(30)),
			CashierID:   fmt.Sprintf("cashier_%d", g.rng.Intn(5)+1),
			CashierName: cashierNames[g.rng.Intn(len(cashierNames))],
		}
		if _, err := g.store.Create(ctx, store.CollectionTransactions, tx.Fields()); err != nil {
			return fmt.Errorf("generate transactions: %w", err)
		}
	}
	g.logf("✓ Generated %d transactions", count)
	return nil
}

func (g *Generator) generateEmployees(ctx context.Context, count int) error {
	g.logf("Generating %d employees...", count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s %d", employeeNames[g.rng.Intn(len(employeeNames))], i+1)

		var employee models.Employee
		if g.rng.Float64() > 0.5 {
			pin := fmt.Sprintf("%04d", g.rng.Intn(9000)+1000)
			employee = models.NewCashier(name, pin)
		} else {
			employee = models.NewBaker(name)
		}

		if _, err := g.store.Create(ctx, store.CollectionEmployees, employee.Fields()); err != nil {
			return fmt.Errorf("generate employees: %w", err)
		}
	}
	g.logf("✓ Generated %d employees", count)
	return nil
}

func (g *Generator) generateReports(ctx context.Context, count int) error {
	g.logf("Generating %d reports...", count)
	for i := 0; i < count; i++ {
		date := g.now().AddDate(0, 0, -i)
		totalSales := g.rng.Float64() * 500
		totalExpenses := g.rng.Float64() * 300
		totalIncome := g.rng.Float64() * 200

		report := models.ReportArchive{
			Date:          date.Format("2006-01-02"),
			FileName:      fmt.Sprintf("report_%s.pdf", date.Format("2006-01-02")),
			CreatedAt:     date,
			TotalSales:    totalSales,
			TotalExpenses: totalExpenses,
			TotalIncome:   totalIncome,
			FinalTotal:    totalSales + totalIncome - totalExpenses,
			CashiersCount: g.rng.Intn(10) + 1,
			SavedLocally:  g.rng.Float64() > 0.3,
		}
		if _, err := g.store.Create(ctx, store.CollectionReportsArchive, report.Fields()); err != nil {
			return fmt.Errorf("generate reports: %w", err)
		}
	}
	g.logf("✓ Generated %d reports", count)
	return nil
}

func (g *Generator) generateWeeklyTemplates(ctx context.Context, count int) error {
	g.logf("Generating %d weekly templates...", count)
	for i := 0; i < count; i++ {
		selected := productNames[:g.rng.Intn(5)+3]

		schedules := make([]models.ProductSchedule, 0, len(selected))
		for _, name := range selected {
			schedules = append(schedules, models.ProductSchedule{
				ProductID:      fmt.Sprintf("product_%s_%d", strings.ReplaceAll(strings.ToLower(name), " ", "_"), i),
				Monday:         g.rng.Intn(50) + 10,
				Tuesday:        g.rng.Intn(50) + 10,
				Wednesday:      g.rng.Intn(50) + 10,
				Thursday:       g.rng.Intn(50) + 10,
				Friday:         g.rng.Intn(50) + 10,
				Saturday:       g.rng.Intn(50) + 10,
				Sunday:         g.rng.Intn(50) + 10,
				RepetitiveDays: models.Weekdays[:5],
				UpdatedAt:      g.now(),
			})
		}

		template := models.WeeklyTemplate{
			EmployeeID: fmt.Sprintf("employee_%d", g.rng.Intn(10)+1),
			Products:   schedules,
		}
		if _, err := g.store.Create(ctx, store.CollectionWeeklyTemplates, template.Fields()); err != nil {
			return fmt.Errorf("generate weekly templates: %w", err)
		}
	}
	g.logf("✓ Generated %d weekly templates", count)
	return nil
}

func (g *Generator) targetType() models.TargetType {
	if g.rng.Float64() > 0.5 {
		return models.TargetPieces
	}
	return models.TargetPlateaux
}
