package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storemigrate/internal/services/woocommerce"
)

func TestOrderStatusMappingExhaustive(t *testing.T) {
	expected := map[string]string{
		"pending":    "pending",
		"processing": "pending",
		"on-hold":    "hold",
		"completed":  "complete",
		"cancelled":  "canceled",
		"refunded":   "canceled",
		"failed":     "canceled",
		"trash":      "canceled",
	}

	for source, target := range expected {
		got, err := translateStatus(source)
		require.NoError(t, err, source)
		assert.Equal(t, target, got, source)
	}
}

func TestUnknownOrderStatusIsHardError(t *testing.T) {
	_, err := translateStatus("checkout-draft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkout-draft")
}

func TestOrderSubTotalDerivedFromOtherTotals(t *testing.T) {
	order, err := orderFromWoo(&woocommerce.Order{
		Status:        "completed",
		Total:         "100",
		TotalTax:      "8",
		ShippingTotal: "10",
	}, nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 82, order.SubTotal, 1e-9)
	assert.InDelta(t, order.GrandTotal, order.SubTotal+order.TaxTotal+order.ShipmentTotal, 1e-9)
}

func TestPaymentBalanceSign(t *testing.T) {
	unpaid, err := orderFromWoo(&woocommerce.Order{Status: "pending", Total: "50"}, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, -50, unpaid.PaymentBalance, 1e-9)
	assert.Zero(t, unpaid.PaymentTotal)
	assert.False(t, unpaid.Paid)

	paid, err := orderFromWoo(&woocommerce.Order{Status: "completed", Total: "50"}, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, paid.PaymentBalance)
	assert.InDelta(t, 50, paid.PaymentTotal, 1e-9)
	assert.True(t, paid.Paid)
	assert.True(t, paid.Delivered)
	assert.True(t, paid.DeliveryMarked)
}

func TestOrderShipmentPriceExcludesShippingTax(t *testing.T) {
	order, err := orderFromWoo(&woocommerce.Order{
		Status:        "processing",
		Total:         "20",
		ShippingTotal: "5.50",
		ShippingTax:   "0.50",
	}, nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 5, order.ShipmentPrice, 1e-9)
	assert.InDelta(t, 5.50, order.ShipmentTaxIncludedTotal, 1e-9)
	assert.True(t, order.Paid, "processing orders count as paid")
	assert.False(t, order.Delivered)
}

func TestOrderLineItemsKeepUnresolvedReferences(t *testing.T) {
	order, err := orderFromWoo(&woocommerce.Order{
		Status: "pending",
		Total:  "30",
		LineItems: []woocommerce.LineItem{
			{ProductID: 1, Quantity: 2, Price: 10, Total: "20", TotalTax: "1"},
			{ProductID: 2, Quantity: 1, Price: 10, Total: "10"},
		},
	}, map[int]string{1: "prod-1"}, nil)
	require.NoError(t, err)

	require.Len(t, order.Items, 2, "unresolved lines are kept, not dropped")
	assert.Equal(t, "prod-1", order.Items[0].ProductID)
	assert.InDelta(t, 20, order.Items[0].PriceTotal, 1e-9)
	assert.InDelta(t, 1, order.Items[0].TaxTotal, 1e-9)
	assert.Empty(t, order.Items[1].ProductID)
}

func TestOrderMarkedAsMigrated(t *testing.T) {
	order, err := orderFromWoo(&woocommerce.Order{Status: "pending", Total: "1", Number: "1042"}, nil, nil)
	require.NoError(t, err)
	assert.True(t, order.Migrate)
	assert.Equal(t, 1042, order.Number)
}

func TestAccountTypeFromBillingCompany(t *testing.T) {
	business := accountFromCustomer(&woocommerce.Customer{
		Email:     "biz@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Billing:   &woocommerce.Address{Company: "Analytical Engines", Phone: "555-1234", Postcode: "90210"},
	})
	assert.Equal(t, "business", business.Type)
	assert.Equal(t, "Analytical Engines", business.Name)
	assert.Equal(t, "555-1234", business.Phone)
	require.NotNil(t, business.Billing)
	assert.Equal(t, "555-1234", business.Billing.Phone)
	require.NotNil(t, business.Billing.Zip)
	assert.Equal(t, 90210, *business.Billing.Zip)

	individual := accountFromCustomer(&woocommerce.Customer{
		Email:   "solo@example.com",
		Billing: &woocommerce.Address{Phone: "555-9999"},
	})
	assert.Equal(t, "individual", individual.Type)
	assert.Empty(t, individual.Name)
}

func TestShippingAddressOmitsPhone(t *testing.T) {
	account := accountFromCustomer(&woocommerce.Customer{
		Shipping: &woocommerce.Address{City: "Berlin", Phone: "555-0000"},
	})
	require.NotNil(t, account.Shipping)
	assert.Empty(t, account.Shipping.Phone)
	assert.Equal(t, "Berlin", account.Shipping.City)
}

func TestNonNumericPostcodeStaysUnset(t *testing.T) {
	account := accountFromCustomer(&woocommerce.Customer{
		Billing: &woocommerce.Address{Postcode: "EC1A 1BB"},
	})
	require.NotNil(t, account.Billing)
	assert.Nil(t, account.Billing.Zip)
}

func TestProductFromWoo(t *testing.T) {
	stock := 7
	product := productFromWoo(&woocommerce.Product{
		Name:          "Trail Shoe",
		SKU:           "TS-1",
		Slug:          "trail-shoe",
		Price:         "129.99",
		SalePrice:     "99.99",
		Weight:        "0.8",
		Status:        "publish",
		StockQuantity: &stock,
		Tags:          []woocommerce.Tag{{Name: "outdoor"}, {Name: "running"}},
		Categories:    []woocommerce.CategoryRef{{Slug: "shoes"}, {Slug: "sale"}},
		Attributes: []woocommerce.Attribute{
			{Name: "Size", Options: []string{"42", "43"}},
		},
		Dimensions: &woocommerce.Dimensions{Length: "30", Width: "12", Height: "11"},
	}, map[string]string{"shoes": "cat-1", "sale": "cat-2"}, nil)

	assert.True(t, product.Migrate)
	assert.InDelta(t, 129.99, product.Price, 1e-9)
	require.NotNil(t, product.SalePrice)
	assert.InDelta(t, 99.99, *product.SalePrice, 1e-9)
	assert.True(t, product.Active)
	assert.Equal(t, "cat-1", product.CategoryID, "only the first listed category is used")
	assert.Equal(t, []string{"outdoor", "running"}, product.Tags)

	require.Len(t, product.Options, 1)
	assert.Equal(t, "select", product.Options[0].InputType)
	require.Len(t, product.Options[0].Values, 2)
	assert.Equal(t, "42", product.Options[0].Values[0].Name)

	require.NotNil(t, product.ShipmentDimensions)
	assert.InDelta(t, 11, product.ShipmentDimensions.Height, 1e-9)

	assert.True(t, product.StockTracking)
	require.NotNil(t, product.StockLevel)
	assert.Equal(t, 7, *product.StockLevel)
}

func TestProductDimensionsRequireHeight(t *testing.T) {
	product := productFromWoo(&woocommerce.Product{
		Slug:       "flat",
		Dimensions: &woocommerce.Dimensions{Length: "30", Width: "12"},
	}, nil, nil)
	assert.Nil(t, product.ShipmentDimensions)
}

func TestProductWithoutStockQuantityLeavesTrackingOff(t *testing.T) {
	product := productFromWoo(&woocommerce.Product{Slug: "untracked"}, nil, nil)
	assert.False(t, product.StockTracking)
	assert.Nil(t, product.StockLevel)
}

func TestProductDraftStatusIsInactive(t *testing.T) {
	product := productFromWoo(&woocommerce.Product{Slug: "draft", Status: "draft"}, nil, nil)
	assert.False(t, product.Active)
}

func TestProductCustomFieldsCopiedByName(t *testing.T) {
	var wooProduct woocommerce.Product
	err := wooProduct.UnmarshalJSON([]byte(`{"id":1,"slug":"x","name":"X","my_field":"hello"}`))
	require.NoError(t, err)

	product := productFromWoo(&wooProduct, nil, []FieldMap{
		{Source: "my_field", Target: "content_field"},
		{Source: "name", Target: "name"},
	})

	assert.Equal(t, "hello", product.Extra["content_field"])
	assert.Equal(t, "X", product.Extra["name"], "custom mappings may override built-in fields")
}

func TestCategoryForcedActive(t *testing.T) {
	category := categoryFromWoo(&woocommerce.Category{
		Name:        "Shoes",
		Slug:        "shoes",
		Description: "all shoes",
	})
	assert.True(t, category.Active)
	assert.Equal(t, "shoes", category.Slug)
	assert.Empty(t, category.ID)
}

func TestParseAmountZeroOnEmpty(t *testing.T) {
	assert.Zero(t, parseAmount(""))
	assert.Zero(t, parseAmount("not-a-number"))
	assert.InDelta(t, 12.5, parseAmount("12.50"), 1e-9)
	assert.Nil(t, parseAmountPtr(""))
}
