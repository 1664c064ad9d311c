package migration

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

// orderStatuses is the full source-to-target order status table. Every source
// status must appear here; an unmapped status is a hard error at lookup time,
// never passed through.
var orderStatuses = map[string]string{
	"pending":    "pending",
	"processing": "pending",
	"on-hold":    "hold",
	"completed":  "complete",
	"cancelled":  "canceled",
	"refunded":   "canceled",
	"failed":     "canceled",
	"trash":      "canceled",
}

func translateStatus(status string) (string, error) {
	target, ok := orderStatuses[status]
	if !ok {
		return "", fmt.Errorf("unknown order status %q", status)
	}
	return target, nil
}

// parseDecimal parses a numeric-as-string field. Empty or malformed values
// are treated as zero.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseAmount(s string) float64 {
	return parseDecimal(s).InexactFloat64()
}

// parseAmountPtr is parseAmount for optional fields; empty stays unset.
func parseAmountPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	f := parseAmount(s)
	return &f
}

func parseZip(s string) *int {
	if s == "" {
		return nil
	}
	zip, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &zip
}

// categoryFromWoo maps a source category onto a target payload. Active is
// forced true on creation.
func categoryFromWoo(cat *woocommerce.Category) swell.Category {
	return swell.Category{
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		Active:      true,
	}
}

// productFromWoo maps a source product onto a target payload. The category
// reference is resolved from the first listed source category only; caller
// supplied field mappings are copied last and may override built-in fields.
func productFromWoo(p *woocommerce.Product, categoryIDs map[string]string, customFields []FieldMap) swell.Product {
	product := swell.Product{
		Migrate:        true,
		Name:           p.Name,
		SKU:            p.SKU,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          parseAmount(p.Price),
		SalePrice:      parseAmountPtr(p.SalePrice),
		ShipmentWeight: parseAmountPtr(p.Weight),
		Active:         p.Status == "publish",
	}

	if len(p.Categories) > 0 {
		product.CategoryID = categoryIDs[p.Categories[0].Slug]
	}

	if len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for i, tag := range p.Tags {
			tags[i] = tag.Name
		}
		product.Tags = tags
	}

	// Attributes become select-style options; each allowed value becomes an
	// option value.
	if len(p.Attributes) > 0 {
		options := make([]swell.ProductOption, len(p.Attributes))
		for i, attr := range p.Attributes {
			values := make([]swell.OptionValue, len(attr.Options))
			for j, option := range attr.Options {
				values[j] = swell.OptionValue{Name: option}
			}
			options[i] = swell.ProductOption{
				Name:      attr.Name,
				InputType: "select",
				Values:    values,
			}
		}
		product.Options = options
	}

	// Dimensions are included only when a height is present.
	if p.Dimensions != nil && p.Dimensions.Height != "" {
		product.ShipmentDimensions = &swell.Dimensions{
			Length: parseAmount(p.Dimensions.Length),
			Width:  parseAmount(p.Dimensions.Width),
			Height: parseAmount(p.Dimensions.Height),
		}
	}

	// A null stock quantity means the source store does not track stock for
	// this product; leave tracking off.
	if p.StockQuantity != nil {
		product.StockTracking = true
		product.StockLevel = p.StockQuantity
	}

	if len(customFields) > 0 {
		product.Extra = make(map[string]interface{}, len(customFields))
		for _, field := range customFields {
			if value, ok := p.Field(field.Source); ok {
				product.Extra[field.Target] = value
			}
		}
	}

	return product
}

// accountFromCustomer maps a source customer onto a target account payload.
func accountFromCustomer(c *woocommerce.Customer) swell.Account {
	accountType := "individual"
	if c.Billing != nil && c.Billing.Company != "" {
		accountType = "business"
	}

	account := swell.Account{
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Type:      accountType,
	}

	// Business accounts display the company name.
	if accountType == "business" {
		account.Name = c.Billing.Company
	}
	if c.Billing != nil {
		account.Phone = c.Billing.Phone
	}

	account.Billing = addressFromWoo(c.Billing, true)
	account.Shipping = addressFromWoo(c.Shipping, false)

	return account
}

// addressFromWoo maps a source address 1:1 with the postal code parsed to a
// number. The phone is carried on billing addresses only.
func addressFromWoo(a *woocommerce.Address, includePhone bool) *swell.Address {
	if a == nil {
		return nil
	}

	address := &swell.Address{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		Zip:       parseZip(a.Postcode),
		Country:   a.Country,
	}
	if includePhone {
		address.Phone = a.Phone
	}
	return address
}

// orderFromWoo maps a source order onto a target payload. Line items resolve
// to target product IDs where possible; unresolved references leave the
// product reference unset rather than dropping the line.
func orderFromWoo(o *woocommerce.Order, productIDs map[int]string, accountIDs map[int]string) (swell.Order, error) {
	status, err := translateStatus(o.Status)
	if err != nil {
		return swell.Order{}, fmt.Errorf("order %d: %w", o.ID, err)
	}

	items := make([]swell.OrderItem, len(o.LineItems))
	for i, line := range o.LineItems {
		items[i] = swell.OrderItem{
			ProductID:  productIDs[line.ProductID],
			Price:      line.Price,
			Quantity:   line.Quantity,
			PriceTotal: parseAmount(line.Total),
			TaxTotal:   parseAmount(line.TotalTax),
		}
	}

	grandTotal := parseDecimal(o.Total)
	taxTotal := parseDecimal(o.TotalTax)
	shippingTotal := parseDecimal(o.ShippingTotal)
	shippingTax := parseDecimal(o.ShippingTax)

	// The source platform has no explicit sub total; it is derived from the
	// other totals so the financial identity holds on the target.
	subTotal := grandTotal.Sub(taxTotal).Sub(shippingTotal)

	paid := o.Status == "completed" || o.Status == "processing"
	delivered := o.Status == "completed"

	number, _ := strconv.Atoi(o.Number)

	order := swell.Order{
		Migrate:     true,
		Number:      number,
		DateCreated: o.DateCreated,
		Status:      status,
		AccountID:   accountIDs[o.CustomerID],

		Items:    items,
		Billing:  addressFromWoo(o.Billing, true),
		Shipping: addressFromWoo(o.Shipping, false),

		TaxTotal:                 taxTotal.InexactFloat64(),
		SubTotal:                 subTotal.InexactFloat64(),
		GrandTotal:               grandTotal.InexactFloat64(),
		ShipmentTotal:            shippingTotal.InexactFloat64(),
		ShipmentPrice:            shippingTotal.Sub(shippingTax).InexactFloat64(),
		ShipmentTaxIncludedTotal: shippingTotal.InexactFloat64(),
		ShipmentDelivery:         len(o.ShippingLines) > 0,

		Paid:          paid,
		PaymentMarked: paid,

		DeliveryMarked: delivered,
		Delivered:      delivered,
	}

	// A negative balance means the customer owes money; the sign convention
	// must be preserved exactly.
	if paid {
		order.PaymentTotal = grandTotal.InexactFloat64()
		order.PaymentBalance = 0
	} else {
		order.PaymentTotal = 0
		order.PaymentBalance = grandTotal.Neg().InexactFloat64()
	}

	return order, nil
}
