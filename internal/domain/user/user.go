package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleAccountant Role = "ACCOUNTANT"
)

// SystemAccountantID identifies the scheduler when it acts on loans without a human caller.
const SystemAccountantID int64 = 0

type User struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Salary    decimal.Decimal `json:"salary"`
	Role      Role            `json:"role"`
	IsBlocked bool            `json:"isBlocked"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (u *User) IsAccountant() bool {
	return u != nil && u.Role == RoleAccountant
}

func (u *User) Block() {
	if !u.IsBlocked {
		u.IsBlocked = true
		u.UpdatedAt = time.Now()
	}
}

func (u *User) Unblock() {
	if u.IsBlocked {
		u.IsBlocked = false
		u.UpdatedAt = time.Now()
	}
}

func (u *User) Promote() {
	if u.Role != RoleAccountant {
		u.Role = RoleAccountant
		u.UpdatedAt = time.Now()
	}
}

// SystemAccountant is the acting user for scheduled jobs.
func SystemAccountant() *User {
	return &User{ID: SystemAccountantID, Email: "system@lending-api", Role: RoleAccountant}
}
