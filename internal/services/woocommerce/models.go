package woocommerce

import "encoding/json"

// Product represents a WooCommerce product. Money and measurement fields come
// over the wire as strings.
type Product struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	SKU           string      `json:"sku"`
	Description   string      `json:"description"`
	Price         string      `json:"price"`
	SalePrice     string      `json:"sale_price"`
	Status        string      `json:"status"`
	Weight        string      `json:"weight"`
	StockQuantity *int        `json:"stock_quantity"`
	Tags          []Tag       `json:"tags"`
	Categories    []CategoryRef `json:"categories"`
	Attributes    []Attribute `json:"attributes"`
	Dimensions    *Dimensions `json:"dimensions"`
	Images        []Image     `json:"images"`

	// Extra holds every top-level field of the wire record, so custom fields
	// can be read by name without a schema change.
	Extra map[string]interface{} `json:"-"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &a.Extra); err != nil {
		return err
	}
	*p = Product(a)
	return nil
}

// MarshalJSON re-emits the raw record when it is available, so snapshot files
// round-trip custom fields losslessly.
func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.Extra) > 0 {
		return json.Marshal(p.Extra)
	}
	type alias Product
	return json.Marshal(alias(p))
}

// Field looks up a top-level field of the wire record by name.
func (p *Product) Field(name string) (interface{}, bool) {
	v, ok := p.Extra[name]
	return v, ok
}

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Attribute struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

type Image struct {
	ID   int    `json:"id"`
	Src  string `json:"src"`
	Name string `json:"name"`
	Alt  string `json:"alt"`
}

// Category represents a WooCommerce product category.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Parent      int    `json:"parent"`
	Description string `json:"description"`
}

// Customer represents a WooCommerce customer.
type Customer struct {
	ID        int      `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Billing   *Address `json:"billing"`
	Shipping  *Address `json:"shipping"`
}

// Address is shared by customers and orders. Postcode comes over the wire as
// a string.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Order represents a WooCommerce order. All totals are strings on the wire.
type Order struct {
	ID            int            `json:"id"`
	Number        string         `json:"number"`
	Status        string         `json:"status"`
	DateCreated   string         `json:"date_created"`
	CustomerID    int            `json:"customer_id"`
	Total         string         `json:"total"`
	TotalTax      string         `json:"total_tax"`
	ShippingTotal string         `json:"shipping_total"`
	ShippingTax   string         `json:"shipping_tax"`
	LineItems     []LineItem     `json:"line_items"`
	Billing       *Address       `json:"billing"`
	Shipping      *Address       `json:"shipping"`
	ShippingLines []ShippingLine `json:"shipping_lines"`
}

type LineItem struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     string  `json:"total"`
	TotalTax  string  `json:"total_tax"`
}

type ShippingLine struct {
	ID          int    `json:"id"`
	MethodTitle string `json:"method_title"`
	MethodID    string `json:"method_id"`
	Total       string `json:"total"`
}
