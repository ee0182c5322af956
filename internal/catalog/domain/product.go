package domain

import (
	"time"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

type Product struct {
	ID          string
	Name        string
	Description string
	Price       money.Money
	ImageURL    string
	Category    string
	CreatedAt   time.Time
}
