package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Catalog field names as stored in the document store.
const (
	FieldID          = "_id"
	FieldProductName = "productName"
	FieldProductType = "productType"
	FieldDescription = "description"
	FieldCost        = "cost"
	FieldTags        = "tags"
	FieldInCart      = "inCart"
	FieldQuantity    = "quantity"
)

// Product is a catalog record. The engine only reads products.
type Product struct {
	ID          string  `json:"_id"`
	ProductName string  `json:"productName"`
	ProductType string  `json:"productType"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Tags        string  `json:"tags"` // comma-delimited
	InCart      bool    `json:"inCart"`
	Quantity    int     `json:"quantity"`
}

// Document is the embedding-ready projection of a Product.
// Fields holds the projected values keyed by field name, in raw JSON form.
type Document struct {
	ID     string
	Fields map[string]json.RawMessage
	Order  []string // projection order, used to render Text
}

// Field returns a projected field as a plain string.
// JSON strings are unquoted, other values are returned as their JSON text.
func (d Document) Field(name string) (string, bool) {
	raw, ok := d.Fields[name]
	if !ok || len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	if string(raw) == "null" {
		return "", false
	}
	return string(raw), true
}

// Text renders the document as "field: value" lines in projection order.
// This is the unit that gets embedded and handed to the generation service.
func (d Document) Text() string {
	var sb strings.Builder
	for _, name := range d.Order {
		v, ok := d.Field(name)
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %s", name, v)
	}
	return sb.String()
}

// ScoredDocument is a retrieval hit.
type ScoredDocument struct {
	Document Document
	Score    float64
}
