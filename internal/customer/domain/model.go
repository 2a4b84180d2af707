package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Customer is the minimal member record the engine needs; profile
// editing and search live elsewhere.
type Customer struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	FirstName string       `json:"first_name" gorm:"type:varchar(120);not null"`
	LastName  string       `json:"last_name" gorm:"type:varchar(120);not null"`
	Email     string       `json:"email" gorm:"type:varchar(255);index"`
	IsActive  bool         `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (Customer) TableName() string { return "customers" }

type Repository interface {
	// FindByID returns (nil, nil) when no such customer exists, so
	// callers can tell "not found" apart from a store failure.
	FindByID(ctx context.Context, id snowflake.ID) (*Customer, error)
}
