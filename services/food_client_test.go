package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samuelurones28/Proyecto/config"
	"github.com/samuelurones28/Proyecto/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFoodServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/product/8480000.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":1,"product":{"product_name":"Yogur Griego","serving_quantity":"125","nutriments":{"energy-kcal_100g":97,"proteins_100g":"9","carbohydrates_100g":3.9,"fat_100g":5}}}`))
	})
	mux.HandleFunc("/api/v0/product/1111.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
	})
	mux.HandleFunc("/api/v0/product/2222.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":1,"product":{"nutriments":{}}}`))
	})
	mux.HandleFunc("/api/v0/product/5000.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFoodClientLookupBarcode(t *testing.T) {
	srv := newFoodServer(t)
	client := NewFoodClient(config.FoodConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
	ctx := context.Background()

	product, err := client.LookupBarcode(ctx, " 8480000 ")
	require.NoError(t, err)
	assert.Equal(t, "8480000", product.Barcode)
	assert.Equal(t, "Yogur Griego", product.Nombre)
	assert.Equal(t, 125.0, product.PesoPorcion)
	assert.Equal(t, 125.0, product.Cantidad, "serving size becomes the default quantity")
	assert.Equal(t, models.Macros{Kcal: 97, P: 9, C: 3.9, F: 5}, product.Macros100g)

	product, err = client.LookupBarcode(ctx, "2222")
	require.NoError(t, err)
	assert.Equal(t, "Producto", product.Nombre)
	assert.Equal(t, 100.0, product.Cantidad)

	_, err = client.LookupBarcode(ctx, "1111")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = client.LookupBarcode(ctx, "9999")
	assert.ErrorIs(t, err, models.ErrNotFound, "404 from the mux")

	_, err = client.LookupBarcode(ctx, "5000")
	assert.ErrorIs(t, err, models.ErrNetwork)

	_, err = client.LookupBarcode(ctx, "  ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestFoodClientUnreachable(t *testing.T) {
	srv := newFoodServer(t)
	srv.Close()
	client := NewFoodClient(config.FoodConfig{BaseURL: srv.URL})
	_, err := client.LookupBarcode(context.Background(), "8480000")
	assert.ErrorIs(t, err, models.ErrNetwork)
}
