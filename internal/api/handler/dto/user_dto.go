package dto

import (
	"lending-api/internal/domain/product"
	"lending-api/internal/domain/user"
	"strconv"
	"time"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Salary    string    `json:"salary"`
	Role      string    `json:"role"`
	IsBlocked bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *user.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        strconv.FormatInt(u.ID, 10),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Salary:    formatMoney(u.Salary),
		Role:      string(u.Role),
		IsBlocked: u.IsBlocked,
		CreatedAt: u.CreatedAt,
	}
}

type ProductResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

func NewProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:    strconv.FormatInt(p.ID, 10),
		Title: p.Title,
		Price: formatMoney(p.Price),
	}
}
