package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	authdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

// Message renders the pt-BR order text sent to the store over WhatsApp.
// One line per product with quantity and line total, grand total at the
// bottom. Lines and total come from the same priced summary, so the text
// stays internally consistent even when catalog prices moved after the
// items were added to the cart.
func Message(user authdomain.User, summary domain.OrderSummary) string {
	var b strings.Builder

	b.WriteString("🛍️ *NOVO PEDIDO - STG CATALOG*\n\n")
	fmt.Fprintf(&b, "👤 *Cliente:* %s\n", user.DisplayName())
	fmt.Fprintf(&b, "📧 *Email:* %s\n\n", user.Email)
	b.WriteString("📦 *PRODUTOS:*\n")

	for _, line := range summary.Lines {
		fmt.Fprintf(&b, "- %s - Qtd: %d - %s\n",
			line.Name, line.Quantity, money.FormatBRL(line.LineTotal.Amount))
	}

	fmt.Fprintf(&b, "\n💰 *TOTAL: %s*\n\n", money.FormatBRL(summary.Total.Amount))
	b.WriteString("---\nPedido realizado via STG Catalog")

	return b.String()
}

// URL wraps the message into a wa.me link for the given phone number.
func URL(phone string, user authdomain.User, summary domain.OrderSummary) string {
	return "https://wa.me/" + phone + "?text=" + escape(Message(user, summary))
}

// escape percent-encodes the message; spaces become %20, never +, matching
// the link format WhatsApp clients expect.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
