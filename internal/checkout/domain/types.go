package domain

import "github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"

type SummaryLine struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice money.Money
	LineTotal money.Money
}

type OrderSummary struct {
	Lines []SummaryLine
	Total money.Money
}

type CheckoutResult struct {
	OrderID     string
	WhatsAppURL string
	Summary     OrderSummary
}
