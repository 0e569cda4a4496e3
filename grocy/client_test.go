package grocy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timotheicorneille/grocy-products/types"
)

func testServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestClientSendsFixedHeaders(t *testing.T) {
	var gotPath, gotKey, gotContentType string
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("GROCY-API-KEY")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte("[]"))
	})

	// A trailing slash on the base address must not double up in the URL
	client := NewClient(server.URL+"/", "secret-key", 5*time.Second)
	_, err := client.Locations(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/api/objects/locations", gotPath)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClientErrorIncludesResponseBody(t *testing.T) {
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_message":"invalid api key"}`))
	})

	client := NewClient(server.URL, "wrong-key", 5*time.Second)
	_, err := client.QuantityUnits(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Contains(t, err.Error(), "objects/quantity_units")
}

func TestClientEmptyResponseBody(t *testing.T) {
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := NewClient(server.URL, "key", 5*time.Second)
	err := client.post(context.Background(), "objects/locations", nil, nil)
	assert.NoError(t, err)
}

func TestCreateQuantityUnit(t *testing.T) {
	var gotBody []byte
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"created_object_id":17}`))
	})

	client := NewClient(server.URL, "key", 5*time.Second)
	id, err := client.CreateQuantityUnit(context.Background(), types.NewQuantityUnit{
		Name:        "kg",
		Description: "Unit kg",
		NamePlural:  "kgs",
	})
	require.NoError(t, err)
	assert.Equal(t, 17, id)
	assert.JSONEq(t, `{"name":"kg","description":"Unit kg","name_plural":"kgs"}`, string(gotBody))
}

func TestCreateReturnsStringID(t *testing.T) {
	// Some Grocy versions return the new id as a numeric string
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"created_object_id":"42"}`))
	})

	client := NewClient(server.URL, "key", 5*time.Second)
	id, err := client.CreateLocation(context.Background(), types.NewLocation{Name: "Fridge"})
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestCreateMissingIDIsMalformed(t *testing.T) {
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	client := NewClient(server.URL, "key", 5*time.Second)
	_, err := client.CreateProductGroup(context.Background(), types.NewProductGroup{Name: "Dairy"})
	require.Error(t, err)

	var malformed *MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
	assert.Contains(t, err.Error(), "created_object_id")
}

func TestCreateUndecodableBodyIsMalformed(t *testing.T) {
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	client := NewClient(server.URL, "key", 5*time.Second)
	_, err := client.CreateProduct(context.Background(), types.NewProduct{Name: "Milk"})
	require.Error(t, err)

	var malformed *MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
}

func TestClientConnectionError(t *testing.T) {
	// Point at a server that is already closed
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "key", time.Second)
	_, err := client.ProductGroups(context.Background())
	assert.Error(t, err)
}
