package grocy

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/timotheicorneille/grocy-products/types"
)

// Header carrying the static Grocy API key on every request
const apiKeyHeader = "GROCY-API-KEY"

// Client is a thin client for the Grocy REST API.
// All requests go to {baseURL}/api/{endpoint} with the fixed
// API key and content type headers attached
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a new instance of the client
// (doesn't make any network calls)
func NewClient(baseURL string, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Performs a request against the API and decodes the JSON response into out.
// A nil out or an empty response body skips decoding
// (some write endpoints return no body)
func (c *Client) do(ctx context.Context, method string, endpoint string, body interface{}, out interface{}) error {
	url := c.baseURL + "/api/" + endpoint

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "could not encode request body for %s /api/%s", method, endpoint)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return errors.Wrapf(err, "could not build request %s /api/%s", method, endpoint)
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request %s /api/%s failed", method, endpoint)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "could not read response from %s /api/%s", method, endpoint)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return NewAPIError(method, endpoint, res.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	err = json.Unmarshal(data, out)
	if err != nil {
		return NewMalformedResponseError(endpoint, err.Error())
	}

	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

// QuantityUnits lists all quantity units known to the server
func (c *Client) QuantityUnits(ctx context.Context) ([]types.QuantityUnit, error) {
	var units []types.QuantityUnit
	err := c.get(ctx, "objects/quantity_units", &units)
	if err != nil {
		return nil, err
	}

	return units, nil
}

// Locations lists all storage locations known to the server
func (c *Client) Locations(ctx context.Context) ([]types.Location, error) {
	var locations []types.Location
	err := c.get(ctx, "objects/locations", &locations)
	if err != nil {
		return nil, err
	}

	return locations, nil
}

// ProductGroups lists all product groups known to the server
func (c *Client) ProductGroups(ctx context.Context) ([]types.ProductGroup, error) {
	var groups []types.ProductGroup
	err := c.get(ctx, "objects/product_groups", &groups)
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// Issues a create request and extracts the newly assigned identifier.
// A success response without a created_object_id field means the remote
// contract changed and is reported as a MalformedResponseError
func (c *Client) createObject(ctx context.Context, endpoint string, body interface{}) (int, error) {
	var res types.CreatedObjectResponse
	err := c.post(ctx, endpoint, body, &res)
	if err != nil {
		return 0, err
	}

	if res.CreatedObjectID == nil {
		return 0, NewMalformedResponseError(endpoint, "missing created_object_id field")
	}

	return int(*res.CreatedObjectID), nil
}

// CreateQuantityUnit creates a quantity unit and returns its new identifier
func (c *Client) CreateQuantityUnit(ctx context.Context, unit types.NewQuantityUnit) (int, error) {
	return c.createObject(ctx, "objects/quantity_units", unit)
}

// CreateLocation creates a storage location and returns its new identifier
func (c *Client) CreateLocation(ctx context.Context, location types.NewLocation) (int, error) {
	return c.createObject(ctx, "objects/locations", location)
}

// CreateProductGroup creates a product group and returns its new identifier
func (c *Client) CreateProductGroup(ctx context.Context, group types.NewProductGroup) (int, error) {
	return c.createObject(ctx, "objects/product_groups", group)
}

// CreateProduct creates a product and returns its new identifier
func (c *Client) CreateProduct(ctx context.Context, product types.NewProduct) (int, error) {
	return c.createObject(ctx, "objects/products", product)
}
