package types

import (
	"bytes"
	"fmt"
	"strconv"
)

// ObjectID is an identifier assigned by the Grocy server.
// Depending on the server version, id fields arrive either as JSON numbers
// or as numeric strings, so decoding accepts both
type ObjectID int

// UnmarshalJSON implements json.Unmarshaler
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = 0
		return nil
	}

	parsed, err := strconv.Atoi(string(trimmed))
	if err != nil {
		return fmt.Errorf("object id '%s' is not numeric", string(data))
	}

	*id = ObjectID(parsed)
	return nil
}

// QuantityUnit is a unit object as returned by GET objects/quantity_units
type QuantityUnit struct {
	ID         ObjectID `json:"id"`
	Name       string   `json:"name"`
	NamePlural string   `json:"name_plural"`
}

// Location is a storage location object as returned by GET objects/locations
type Location struct {
	ID          ObjectID `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// ProductGroup is a product group object as returned by GET objects/product_groups
type ProductGroup struct {
	ID          ObjectID `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// NewQuantityUnit is the request body for POST objects/quantity_units
type NewQuantityUnit struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	NamePlural  string `json:"name_plural"`
}

// NewLocation is the request body for POST objects/locations
type NewLocation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewProductGroup is the request body for POST objects/product_groups
type NewProductGroup struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewProduct is the request body for POST objects/products.
// EnableTareWeightHandling is an integer because Grocy stores its
// boolean columns as 0/1
type NewProduct struct {
	Name                     string  `json:"name"`
	Description              string  `json:"description"`
	LocationID               int     `json:"location_id"`
	QuantityUnitIDStock      int     `json:"qu_id_stock"`
	QuantityUnitIDPurchase   int     `json:"qu_id_purchase"`
	MinStockAmount           float64 `json:"min_stock_amount"`
	ProductGroupID           int     `json:"product_group_id"`
	EnableTareWeightHandling int     `json:"enable_tare_weight_handling"`
}

// CreatedObjectResponse is the response body returned by the
// POST objects/{entity} endpoints.
// The id is a pointer so that a response missing the field
// can be told apart from an id of zero
type CreatedObjectResponse struct {
	CreatedObjectID *ObjectID `json:"created_object_id"`
}
