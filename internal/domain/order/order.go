// Package order models WooCommerce orders as delivered by webhooks and
// the REST listing API.
package order

import (
	"fmt"

	"github.com/orderdocs/backend/internal/domain/shared"
)

// CreatedVia values distinguishing how an order entered the store.
const (
	CreatedViaAdmin    = "admin"
	CreatedViaCheckout = "checkout"
)

// Contact is a billing or shipping address block.
type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// FullName returns the contact's display name.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// IsEmpty reports whether the block carries no usable destination.
func (c Contact) IsEmpty() bool {
	return c.FirstName == "" && c.LastName == "" && c.Address1 == ""
}

// LineItem is one purchased product line.
type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    any    `json:"price"`
	Total    string `json:"total"`
}

// MetaEntry is a free-form key/value pair attached to the order.
// WooCommerce serializes values loosely (string, number, nested object),
// so Value is kept untyped and stringified on access.
type MetaEntry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// ValueString returns the metadata value as a string.
func (m MetaEntry) ValueString() string {
	if s, ok := m.Value.(string); ok {
		return s
	}
	if m.Value == nil {
		return ""
	}
	if f, ok := m.Value.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(m.Value)
}

// Order is an order record as received from WooCommerce. It is treated
// as immutable within one processing run; derived display values are
// computed separately and never written back.
type Order struct {
	ID                 int64       `json:"id"`
	DateCreated        string      `json:"date_created"`
	CreatedVia         string      `json:"created_via"`
	Status             string      `json:"status"`
	Total              string      `json:"total"`
	PaymentMethodTitle string      `json:"payment_method_title"`
	Billing            Contact     `json:"billing"`
	Shipping           Contact     `json:"shipping"`
	LineItems          []LineItem  `json:"line_items"`
	MetaData           []MetaEntry `json:"meta_data"`
}

// Validate rejects orders that cannot be rendered. An order without an
// identifier is not a valid order.
func (o *Order) Validate() error {
	if o == nil || o.ID == 0 {
		return shared.ErrOrderInvalid
	}
	return nil
}

// TotalItemCount sums the quantities of all line items.
func (o *Order) TotalItemCount() int {
	total := 0
	for _, item := range o.LineItems {
		total += item.Quantity
	}
	return total
}

// RequiresShipping reports whether the order carries a shipping
// destination and therefore needs physical dispatch.
func (o *Order) RequiresShipping() bool {
	return !o.Shipping.IsEmpty()
}
