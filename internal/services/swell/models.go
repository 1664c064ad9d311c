package swell

import "encoding/json"

// Category is a Swell category payload/record.
type Category struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
}

// Product is a Swell product payload/record. Migrated products carry the
// $migrate marker so the store can tell them apart from organic records.
type Product struct {
	ID          string  `json:"id,omitempty"`
	Migrate     bool    `json:"$migrate,omitempty"`
	Name        string  `json:"name,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Slug        string  `json:"slug,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	SalePrice   *float64 `json:"sale_price,omitempty"`
	CategoryID  string  `json:"category_id,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Active      bool    `json:"active"`

	ShipmentWeight     *float64    `json:"shipment_weight,omitempty"`
	ShipmentDimensions *Dimensions `json:"shipment_dimensions,omitempty"`

	StockTracking bool `json:"stock_tracking,omitempty"`
	StockLevel    *int `json:"stock_level,omitempty"`

	Options []ProductOption `json:"options,omitempty"`
	Images  []ProductImage  `json:"images,omitempty"`

	// Extra carries caller-mapped custom fields. They are merged into the
	// payload after the built-in fields and may override them.
	Extra map[string]interface{} `json:"-"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	base, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return base, nil
	}
	var merged map[string]interface{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

type ProductOption struct {
	Name      string        `json:"name"`
	InputType string        `json:"input_type"`
	Values    []OptionValue `json:"values"`
}

type OptionValue struct {
	Name string `json:"name"`
}

type ProductImage struct {
	Caption string `json:"caption,omitempty"`
	File    File   `json:"file"`
}

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Account is a Swell customer account payload/record.
type Account struct {
	ID        string   `json:"id,omitempty"`
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Name      string   `json:"name,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Type      string   `json:"type,omitempty"`
	Billing   *Address `json:"billing,omitempty"`
	Shipping  *Address `json:"shipping,omitempty"`
}

// Address is Swell's address shape. Zip is numeric.
type Address struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address1,omitempty"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       *int   `json:"zip,omitempty"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Order is a Swell order payload/record.
type Order struct {
	ID          string `json:"id,omitempty"`
	Migrate     bool   `json:"$migrate,omitempty"`
	Number      int    `json:"number,omitempty"`
	DateCreated string `json:"date_created,omitempty"`
	Status      string `json:"status,omitempty"`
	AccountID   string `json:"account_id,omitempty"`

	Items    []OrderItem `json:"items,omitempty"`
	Billing  *Address    `json:"billing,omitempty"`
	Shipping *Address    `json:"shipping,omitempty"`

	TaxTotal                 float64 `json:"tax_total"`
	SubTotal                 float64 `json:"sub_total"`
	GrandTotal               float64 `json:"grand_total"`
	ShipmentTotal            float64 `json:"shipment_total"`
	ShipmentPrice            float64 `json:"shipment_price"`
	ShipmentTaxIncludedTotal float64 `json:"shipment_tax_included_total"`
	ShipmentDelivery         bool    `json:"shipment_delivery"`

	Paid           bool    `json:"paid"`
	PaymentMarked  bool    `json:"payment_marked"`
	PaymentTotal   float64 `json:"payment_total"`
	PaymentBalance float64 `json:"payment_balance"`

	DeliveryMarked bool `json:"delivery_marked"`
	Delivered      bool `json:"delivered"`
}

// OrderItem is one order line. ProductID is empty when the source product has
// no counterpart on the target store.
type OrderItem struct {
	ProductID  string  `json:"product_id,omitempty"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	PriceTotal float64 `json:"price_total"`
	TaxTotal   float64 `json:"tax_total"`
}

// File is a Swell file-storage record.
type File struct {
	ID          string `json:"id,omitempty"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	URL         string `json:"url,omitempty"`
}

// FileUpload is the payload for POST /:files.
type FileUpload struct {
	Data        FileData `json:"data"`
	Filename    string   `json:"filename"`
	ContentType string   `json:"content_type"`
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
}

type FileData struct {
	Binary string `json:"$binary"`
	Type   string `json:"$type"`
}

// BatchItem is one operation of a POST /:batch call.
type BatchItem struct {
	URL    string      `json:"url"`
	Method string      `json:"method"`
	Data   interface{} `json:"data,omitempty"`
}

// ListResponse is Swell's paged list shape.
type ListResponse struct {
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results"`
}
