package handler

import (
	"context"
	"io"
	"lending-api/internal/api/middleware"
	"lending-api/internal/domain/loan"
	"lending-api/internal/domain/product"
	"lending-api/internal/domain/user"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	customerActor   = &user.User{ID: 10, Email: "nika@mail.ge", Role: user.RoleCustomer, Salary: decimal.NewFromInt(5000)}
	accountantActor = &user.User{ID: 1, Email: "acc@mail.ge", Role: user.RoleAccountant}
)

// withRoute attaches chi URL params and the authenticated caller to r.
func withRoute(r *http.Request, actor *user.User, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if actor != nil {
		ctx = middleware.WithActor(ctx, actor)
	}
	return r.WithContext(ctx)
}

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateFastLoan(ctx context.Context, actor *user.User, amount decimal.Decimal, period loan.Period, currency loan.Currency) (*loan.Loan, error) {
	args := m.Called(ctx, actor, amount, period, currency)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanService) CreateInstallmentLoan(ctx context.Context, actor *user.User, productID int64, period loan.Period, currency loan.Currency) (*loan.Loan, error) {
	args := m.Called(ctx, actor, productID, period, currency)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanService) CreateAutoLoan(ctx context.Context, actor *user.User, carModel string, period loan.Period, currency loan.Currency) (*loan.Car, *loan.Loan, error) {
	args := m.Called(ctx, actor, carModel, period, currency)
	c, _ := args.Get(0).(*loan.Car)
	l, _ := args.Get(1).(*loan.Loan)
	return c, l, args.Error(2)
}

func (m *MockLoanService) GetLoan(ctx context.Context, actor *user.User, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, actor, loanID)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanService) ListLoans(ctx context.Context, actor *user.User, status *loan.Status) ([]*loan.Loan, error) {
	args := m.Called(ctx, actor, status)
	l, _ := args.Get(0).([]*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanService) AcceptLoan(ctx context.Context, actor *user.User, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, actor, loanID)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanService) DeclineLoan(ctx context.Context, actor *user.User, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, actor, loanID)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanService) DeleteLoan(ctx context.Context, actor *user.User, loanID int64) error {
	return m.Called(ctx, actor, loanID).Error(0)
}

func (m *MockLoanService) ModifyLoan(ctx context.Context, actor *user.User, loanID int64, terms loan.ModifyTerms) (*loan.Loan, error) {
	args := m.Called(ctx, actor, loanID, terms)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanService) PayOneMonthDue(ctx context.Context, actor *user.User, loanID int64) (*loan.MonthlyPayment, error) {
	args := m.Called(ctx, actor, loanID)
	p, _ := args.Get(0).(*loan.MonthlyPayment)
	return p, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Authenticate(ctx context.Context, userID int64) (*user.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*user.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, actor *user.User, email string) (*user.User, error) {
	args := m.Called(ctx, actor, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserService) BlockUser(ctx context.Context, actor *user.User, email string) (*user.User, error) {
	args := m.Called(ctx, actor, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserService) UnblockUser(ctx context.Context, actor *user.User, email string) (*user.User, error) {
	args := m.Called(ctx, actor, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserService) MakeAccountant(ctx context.Context, actor *user.User, email string) (*user.User, error) {
	args := m.Called(ctx, actor, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProduct(ctx context.Context, productID int64) (*product.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]*product.Product)
	return p, args.Error(1)
}
