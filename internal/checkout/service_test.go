package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

type stubCheckoutRepo struct {
	session     *models.Session
	parts       map[uuid.UUID]*models.Part
	services    map[uuid.UUID]*models.ServiceItem
	customers   map[string]*models.Customer
	creditSales map[uuid.UUID]*models.Sale
	createdSale *models.Sale
	vehicleNo   string
	vehiclePh   string
}

func (s *stubCheckoutRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubCheckoutRepo) FindOpenSessionByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	if s.session == nil || s.session.UserID != userID || s.session.Status != enums.SessionStatusOpen {
		return nil, gorm.ErrRecordNotFound
	}
	return s.session, nil
}

func (s *stubCheckoutRepo) NextInvoiceNo(ctx context.Context, sessionID uuid.UUID) (int, error) {
	if s.session == nil || s.session.ID != sessionID || s.session.Status != enums.SessionStatusOpen {
		return 0, gorm.ErrRecordNotFound
	}
	s.session.InvoiceCounter++
	return s.session.InvoiceCounter, nil
}

func (s *stubCheckoutRepo) FindPart(ctx context.Context, id uuid.UUID) (*models.Part, error) {
	part, ok := s.parts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return part, nil
}

func (s *stubCheckoutRepo) DecrementStock(ctx context.Context, partID uuid.UUID, qty int) error {
	part, ok := s.parts[partID]
	if !ok || part.Stock < qty {
		return gorm.ErrRecordNotFound
	}
	part.Stock -= qty
	return nil
}

func (s *stubCheckoutRepo) FindServiceItem(ctx context.Context, id uuid.UUID) (*models.ServiceItem, error) {
	item, ok := s.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubCheckoutRepo) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	customer, ok := s.customers[phone]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (s *stubCheckoutRepo) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	if s.customers == nil {
		s.customers = make(map[string]*models.Customer)
	}
	s.customers[customer.Phone] = customer
	return nil
}

func (s *stubCheckoutRepo) FindUnpaidCreditSales(ctx context.Context, ids []uuid.UUID) ([]models.Sale, error) {
	var sales []models.Sale
	for _, id := range ids {
		sale, ok := s.creditSales[id]
		if !ok || sale.IsPaid || sale.PaymentMethod != enums.PaymentMethodCredit {
			continue
		}
		sales = append(sales, *sale)
	}
	return sales, nil
}

func (s *stubCheckoutRepo) MarkSalesPaid(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var affected int64
	for _, id := range ids {
		sale, ok := s.creditSales[id]
		if !ok || sale.IsPaid || sale.PaymentMethod != enums.PaymentMethodCredit {
			continue
		}
		sale.IsPaid = true
		affected++
	}
	return affected, nil
}

func (s *stubCheckoutRepo) CreateSale(ctx context.Context, sale *models.Sale) error {
	s.createdSale = sale
	return nil
}

func (s *stubCheckoutRepo) UpsertVehicle(ctx context.Context, vehicleNo, customerPhone string) error {
	s.vehicleNo = vehicleNo
	s.vehiclePh = customerPhone
	return nil
}

type stubCheckoutTx struct{}

func (stubCheckoutTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubSaleJournal struct {
	sales []*models.Sale
}

func (s *stubSaleJournal) RecordSale(ctx context.Context, sale *models.Sale) {
	s.sales = append(s.sales, sale)
}

type stubMetrics struct {
	checkouts map[string]int
	observed  int
}

func (s *stubMetrics) IncCheckout(method string) {
	if s.checkouts == nil {
		s.checkouts = make(map[string]int)
	}
	s.checkouts[method]++
}

func (s *stubMetrics) ObserveCheckoutDuration(duration time.Duration) {
	s.observed++
}

func newCheckoutFixture(t *testing.T) (*stubCheckoutRepo, *stubSaleJournal, *stubMetrics, Service, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	repo := &stubCheckoutRepo{
		session: &models.Session{
			ID:     uuid.New(),
			UserID: userID,
			Status: enums.SessionStatusOpen,
		},
		parts:       map[uuid.UUID]*models.Part{},
		services:    map[uuid.UUID]*models.ServiceItem{},
		customers:   map[string]*models.Customer{},
		creditSales: map[uuid.UUID]*models.Sale{},
	}
	journal := &stubSaleJournal{}
	metrics := &stubMetrics{}
	svc, err := NewService(repo, stubCheckoutTx{}, journal, metrics, 100)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return repo, journal, metrics, svc, userID
}

func TestCommitCashSale(t *testing.T) {
	repo, journal, metrics, svc, userID := newCheckoutFixture(t)

	partID := uuid.New()
	repo.parts[partID] = &models.Part{
		ID:          partID,
		PartName:    "Oil filter",
		Price:       decimal.NewFromInt(1500),
		BuyingPrice: decimal.NewFromInt(1000),
		Stock:       4,
	}
	serviceID := uuid.New()
	repo.services[serviceID] = &models.ServiceItem{
		ID:   serviceID,
		Name: "Oil change",
		Cost: decimal.NewFromInt(2000),
	}

	result, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:        userID,
		VehicleNo:     "CAB-1234",
		CustomerName:  "Nimal",
		CustomerPhone: "0771234567",
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindPart, PartID: &partID, Qty: 2},
			{Kind: enums.SaleLineKindService, ServiceID: &serviceID, Qty: 1},
		},
		Discount:      decimal.NewFromInt(500),
		PaymentMethod: enums.PaymentMethodCash,
		CashReceived:  decimal.NewFromInt(5000),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}

	sale := result.Sale
	if sale.InvoiceNo != 1 {
		t.Fatalf("expected invoice 1, got %d", sale.InvoiceNo)
	}
	// subtotal 2*1500 + 2000 = 5000, total 4500
	if !sale.Subtotal.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected subtotal %s", sale.Subtotal)
	}
	if !sale.Total.Equal(decimal.NewFromInt(4500)) {
		t.Fatalf("unexpected total %s", sale.Total)
	}
	// profit = total - part cost = 4500 - 2000 = 2500
	if !sale.Profit.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("unexpected profit %s", sale.Profit)
	}
	if !sale.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected balance %s", sale.Balance)
	}
	if !sale.IsPaid {
		t.Fatal("cash sale must be paid")
	}
	if repo.parts[partID].Stock != 2 {
		t.Fatalf("expected stock 2, got %d", repo.parts[partID].Stock)
	}
	// earned = floor(4500/100) = 45
	if result.EarnedPoints != 45 {
		t.Fatalf("unexpected earned points %d", result.EarnedPoints)
	}
	customer := repo.customers["0771234567"]
	if customer == nil || customer.Points != 45 {
		t.Fatalf("unexpected customer state %+v", customer)
	}
	if repo.vehicleNo != "CAB-1234" {
		t.Fatalf("expected vehicle upsert, got %q", repo.vehicleNo)
	}
	if len(journal.sales) != 1 {
		t.Fatalf("expected sale journaled, got %d", len(journal.sales))
	}
	if metrics.checkouts["cash"] != 1 || metrics.observed != 1 {
		t.Fatalf("unexpected metrics %+v", metrics)
	}
}

func TestCommitCashShortageRecordsNegativeBalance(t *testing.T) {
	repo, _, _, svc, userID := newCheckoutFixture(t)

	partID := uuid.New()
	repo.parts[partID] = &models.Part{
		ID:          partID,
		PartName:    "Oil filter",
		Price:       decimal.NewFromInt(1500),
		BuyingPrice: decimal.NewFromInt(1000),
		Stock:       4,
	}

	result, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:    userID,
		VehicleNo: "CAB-1234",
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindPart, PartID: &partID, Qty: 1},
		},
		PaymentMethod: enums.PaymentMethodCash,
		CashReceived:  decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}

	sale := result.Sale
	if !sale.Balance.Equal(decimal.NewFromInt(-500)) {
		t.Fatalf("expected balance -500, got %s", sale.Balance)
	}
	if !sale.CashReceived.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected cash received %s", sale.CashReceived)
	}
	if !sale.IsPaid {
		t.Fatal("cash sale must be paid")
	}
	if repo.createdSale == nil {
		t.Fatal("sale must be persisted")
	}
}

func TestCommitRequiresVehicleNumber(t *testing.T) {
	repo, _, _, svc, userID := newCheckoutFixture(t)

	partID := uuid.New()
	repo.parts[partID] = &models.Part{
		ID:    partID,
		Price: decimal.NewFromInt(1500),
		Stock: 4,
	}

	for _, vehicleNo := range []string{"", "   "} {
		_, err := svc.Commit(context.Background(), CheckoutInput{
			UserID:    userID,
			VehicleNo: vehicleNo,
			Lines: []CartLineInput{
				{Kind: enums.SaleLineKindPart, PartID: &partID, Qty: 1},
			},
			PaymentMethod: enums.PaymentMethodCash,
			CashReceived:  decimal.NewFromInt(1500),
		})
		if err == nil {
			t.Fatalf("expected validation error for vehicle %q", vehicleNo)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if repo.createdSale != nil {
		t.Fatal("sale must not be created")
	}
}

func TestCommitInsufficientStock(t *testing.T) {
	repo, journal, _, svc, userID := newCheckoutFixture(t)

	partID := uuid.New()
	repo.parts[partID] = &models.Part{
		ID:          partID,
		PartName:    "Brake pad",
		Price:       decimal.NewFromInt(3000),
		BuyingPrice: decimal.NewFromInt(2000),
		Stock:       1,
	}

	_, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:    userID,
		VehicleNo: "CAB-1234",
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindPart, PartID: &partID, Qty: 2},
		},
		PaymentMethod: enums.PaymentMethodCash,
		CashReceived:  decimal.NewFromInt(10000),
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unexpected error %v", err)
	}
	if repo.createdSale != nil {
		t.Fatal("sale must not be created")
	}
	if len(journal.sales) != 0 {
		t.Fatal("nothing should be journaled")
	}
}

func TestCommitCreditSale(t *testing.T) {
	repo, _, metrics, svc, userID := newCheckoutFixture(t)

	serviceID := uuid.New()
	repo.services[serviceID] = &models.ServiceItem{
		ID:   serviceID,
		Name: "Full service",
		Cost: decimal.NewFromInt(8000),
	}

	result, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:        userID,
		VehicleNo:     "KL-9012",
		CustomerPhone: "0719998888",
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindService, ServiceID: &serviceID, Qty: 1},
		},
		PaymentMethod: enums.PaymentMethodCredit,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}

	sale := result.Sale
	if sale.IsPaid {
		t.Fatal("credit sale must be unpaid")
	}
	if !sale.Balance.Equal(decimal.NewFromInt(8000)) {
		t.Fatalf("unexpected balance %s", sale.Balance)
	}
	if !sale.CashReceived.IsZero() {
		t.Fatalf("unexpected cash received %s", sale.CashReceived)
	}
	if metrics.checkouts["credit"] != 1 {
		t.Fatalf("unexpected metrics %+v", metrics.checkouts)
	}
}

func TestCommitCreditRequiresPhone(t *testing.T) {
	_, _, _, svc, userID := newCheckoutFixture(t)

	partID := uuid.New()
	_, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:    userID,
		VehicleNo: "CAB-1234",
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindPart, PartID: &partID, Qty: 1},
		},
		PaymentMethod: enums.PaymentMethodCredit,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCommitRedeemMoreThanBalance(t *testing.T) {
	repo, _, _, svc, userID := newCheckoutFixture(t)

	repo.customers["0771112222"] = &models.Customer{
		ID:     uuid.New(),
		Phone:  "0771112222",
		Points: 10,
	}
	serviceID := uuid.New()
	repo.services[serviceID] = &models.ServiceItem{
		ID:   serviceID,
		Name: "Wash",
		Cost: decimal.NewFromInt(1000),
	}

	_, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:        userID,
		VehicleNo:     "WP-4455",
		CustomerPhone: "0771112222",
		RedeemPoints:  50,
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindService, ServiceID: &serviceID, Qty: 1},
		},
		PaymentMethod: enums.PaymentMethodCash,
		CashReceived:  decimal.NewFromInt(1000),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCommitRedeemDeductsPoints(t *testing.T) {
	repo, _, _, svc, userID := newCheckoutFixture(t)

	repo.customers["0771112222"] = &models.Customer{
		ID:     uuid.New(),
		Phone:  "0771112222",
		Points: 200,
	}
	serviceID := uuid.New()
	repo.services[serviceID] = &models.ServiceItem{
		ID:   serviceID,
		Name: "Wash",
		Cost: decimal.NewFromInt(1000),
	}

	result, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:        userID,
		VehicleNo:     "WP-4455",
		CustomerPhone: "0771112222",
		RedeemPoints:  100,
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindService, ServiceID: &serviceID, Qty: 1},
		},
		PaymentMethod: enums.PaymentMethodCash,
		CashReceived:  decimal.NewFromInt(900),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}

	// total = 1000 - 100 redeemed = 900; earned = floor(900/100) = 9
	if !result.Sale.Total.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("unexpected total %s", result.Sale.Total)
	}
	if result.EarnedPoints != 9 {
		t.Fatalf("unexpected earned %d", result.EarnedPoints)
	}
	if result.CustomerPoints != 109 {
		t.Fatalf("unexpected points %d", result.CustomerPoints)
	}
}

func TestCommitCreditSettlement(t *testing.T) {
	repo, _, _, svc, userID := newCheckoutFixture(t)

	oldSaleID := uuid.New()
	repo.creditSales[oldSaleID] = &models.Sale{
		ID:            oldSaleID,
		Total:         decimal.NewFromInt(3000),
		PaymentMethod: enums.PaymentMethodCredit,
	}
	serviceID := uuid.New()
	repo.services[serviceID] = &models.ServiceItem{
		ID:   serviceID,
		Name: "Tune up",
		Cost: decimal.NewFromInt(2000),
	}

	result, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:        userID,
		VehicleNo:     "NC-7788",
		CustomerPhone: "0765554444",
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindService, ServiceID: &serviceID, Qty: 1},
			{Kind: enums.SaleLineKindCreditSettlement, SettledSaleIDs: []uuid.UUID{oldSaleID}},
		},
		PaymentMethod: enums.PaymentMethodCash,
		CashReceived:  decimal.NewFromInt(5000),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}

	if !repo.creditSales[oldSaleID].IsPaid {
		t.Fatal("settled sale must be marked paid")
	}
	// subtotal = 2000 + 3000 settled
	if !result.Sale.Subtotal.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected subtotal %s", result.Sale.Subtotal)
	}
	// settlement carries no margin: profit = 5000 - 3000 = 2000
	if !result.Sale.Profit.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("unexpected profit %s", result.Sale.Profit)
	}
}

func TestCommitSettlementAlreadyPaid(t *testing.T) {
	repo, _, _, svc, userID := newCheckoutFixture(t)

	oldSaleID := uuid.New()
	repo.creditSales[oldSaleID] = &models.Sale{
		ID:            oldSaleID,
		Total:         decimal.NewFromInt(3000),
		PaymentMethod: enums.PaymentMethodCredit,
		IsPaid:        true,
	}

	_, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:    userID,
		VehicleNo: "NC-7788",
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindCreditSettlement, SettledSaleIDs: []uuid.UUID{oldSaleID}},
		},
		PaymentMethod: enums.PaymentMethodCash,
		CashReceived:  decimal.NewFromInt(5000),
	})
	if err == nil {
		t.Fatal("expected conflict")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCommitWithoutOpenSession(t *testing.T) {
	repo, _, _, svc, userID := newCheckoutFixture(t)
	repo.session.Status = enums.SessionStatusClosed

	partID := uuid.New()
	repo.parts[partID] = &models.Part{ID: partID, Stock: 5, Price: decimal.NewFromInt(100)}

	_, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:    userID,
		VehicleNo: "CAB-1234",
		Lines: []CartLineInput{
			{Kind: enums.SaleLineKindPart, PartID: &partID, Qty: 1},
		},
		PaymentMethod: enums.PaymentMethodCash,
		CashReceived:  decimal.NewFromInt(100),
	})
	if err == nil {
		t.Fatal("expected state conflict")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCommitEmptyCart(t *testing.T) {
	_, _, _, svc, userID := newCheckoutFixture(t)

	_, err := svc.Commit(context.Background(), CheckoutInput{
		UserID:        userID,
		VehicleNo:     "CAB-1234",
		PaymentMethod: enums.PaymentMethodCash,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}
