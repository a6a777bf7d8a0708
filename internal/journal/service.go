package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/garagemaster/backend/pkg/config"
	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/logger"
)

// Entry kinds written by the till.
const (
	KindSale     = "sale"
	KindDayStart = "day_start"
	KindDayEnd   = "day_end"
)

// Service mirrors till activity into the journal: one formatted text block
// per sale, day start and day end. Writes are best-effort and never fail the
// business operation that triggered them; failures are aggregated and logged.
type Service interface {
	RecordSale(ctx context.Context, sale *models.Sale)
	RecordDayStart(ctx context.Context, session *models.Session)
	RecordDayEnd(ctx context.Context, report *models.DayEndReport)
	List(ctx context.Context, kind string, limit int) ([]models.JournalEntry, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
	dir  string
	shop config.ShopConfig
}

// NewService builds a journal service. dir may be empty to disable the
// plain-text file mirror.
func NewService(repo Repository, logg *logger.Logger, dir string, shop config.ShopConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("journal repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, dir: dir, shop: shop}, nil
}

func (s *service) RecordSale(ctx context.Context, sale *models.Sale) {
	if sale == nil {
		return
	}
	s.record(ctx, KindSale, formatSale(s.shop, sale))
}

func (s *service) RecordDayStart(ctx context.Context, session *models.Session) {
	if session == nil {
		return
	}
	content := fmt.Sprintf("DAY STARTED %s | float %s",
		session.StartTime.Format("2006-01-02 15:04"),
		session.FloatCash.StringFixed(2))
	s.record(ctx, KindDayStart, content)
}

func (s *service) RecordDayEnd(ctx context.Context, report *models.DayEndReport) {
	if report == nil {
		return
	}
	s.record(ctx, KindDayEnd, formatDayEnd(report))
}

func (s *service) List(ctx context.Context, kind string, limit int) ([]models.JournalEntry, error) {
	return s.repo.List(ctx, kind, limit)
}

func (s *service) record(ctx context.Context, kind, content string) {
	entry := &models.JournalEntry{
		ID:      uuid.New(),
		Kind:    kind,
		Content: content,
	}

	err := s.repo.Create(ctx, entry)
	if s.dir != "" {
		err = multierr.Append(err, s.appendToFile(content))
	}
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "journal_kind", kind), "journal write failed", err)
	}
}

func (s *service) appendToFile(content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("journal-%s.txt", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(content + "\n\n"); err != nil {
		return err
	}
	return nil
}

func formatSale(shop config.ShopConfig, sale *models.Sale) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | INVOICE #%d | %s\n", shop.Name, sale.InvoiceNo, sale.SoldAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Vehicle %s | Customer %s (%s)\n", orDash(sale.VehicleNo), sale.CustomerName, orDash(sale.CustomerPhone))
	for _, line := range sale.Lines {
		fmt.Fprintf(&b, "  %-28s x%-3d %10s\n", line.Name, line.Qty,
			line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty))).StringFixed(2))
	}
	fmt.Fprintf(&b, "Subtotal %s | Discount %s | TOTAL %s\n",
		sale.Subtotal.StringFixed(2), sale.Discount.StringFixed(2), sale.Total.StringFixed(2))
	if sale.PaymentMethod == "cash" {
		fmt.Fprintf(&b, "Cash %s | Change %s", sale.CashReceived.StringFixed(2), sale.Balance.StringFixed(2))
	} else {
		fmt.Fprintf(&b, "ON CREDIT | Outstanding %s", sale.Balance.StringFixed(2))
	}
	return b.String()
}

func formatDayEnd(report *models.DayEndReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "DAY END %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Sales %s (cash %s / credit %s)\n",
		report.TotalSales.StringFixed(2), report.CashSales.StringFixed(2), report.CreditSales.StringFixed(2))
	fmt.Fprintf(&b, "Float %s | Expenses %s | Expected %s\n",
		report.Float.StringFixed(2), report.Expenses.StringFixed(2), report.Expected.StringFixed(2))
	fmt.Fprintf(&b, "Counted %s | Variance %s\n",
		report.CashInHand.StringFixed(2), report.Variance.StringFixed(2))
	fmt.Fprintf(&b, "Gross profit %s | Net profit %s",
		report.GrossProfit.StringFixed(2), report.NetProfit.StringFixed(2))
	return b.String()
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
