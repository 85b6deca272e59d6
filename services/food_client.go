package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samuelurones28/Proyecto/config"
	"github.com/samuelurones28/Proyecto/models"
)

// FoodClient looks products up by barcode.
type FoodClient interface {
	LookupBarcode(ctx context.Context, barcode string) (*models.FoodProduct, error)
}

type openFoodFactsClient struct {
	baseURL string
	http    *http.Client
}

// NewFoodClient creates an OpenFoodFacts client.
func NewFoodClient(cfg config.FoodConfig) FoodClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://world.openfoodfacts.org"
	}
	return &openFoodFactsClient{baseURL: base, http: &http.Client{Timeout: timeout}}
}

// flexFloat decodes numbers that the API sometimes sends as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		*f = flexFloat(v)
	}
	return nil
}

type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName     string    `json:"product_name"`
		ServingQuantity flexFloat `json:"serving_quantity"`
		Nutriments      struct {
			EnergyKcal100g    flexFloat `json:"energy-kcal_100g"`
			Proteins100g      flexFloat `json:"proteins_100g"`
			Carbohydrates100g flexFloat `json:"carbohydrates_100g"`
			Fat100g           flexFloat `json:"fat_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

func (c *openFoodFactsClient) LookupBarcode(ctx context.Context, barcode string) (*models.FoodProduct, error) {
	code := strings.TrimSpace(barcode)
	if code == "" {
		return nil, fmt.Errorf("%w: barcode is empty", models.ErrValidation)
	}
	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("ERROR: [FoodClient] Lookup of %s failed: %v", code, err)
		return nil, fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: product %s", models.ErrNotFound, code)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: food database returned status %d", models.ErrNetwork, resp.StatusCode)
	}

	var body offResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode product %s: %v", models.ErrNetwork, code, err)
	}
	if body.Status != 1 {
		return nil, fmt.Errorf("%w: product %s", models.ErrNotFound, code)
	}

	p := body.Product
	product := &models.FoodProduct{
		Barcode:     code,
		Nombre:      p.ProductName,
		PesoPorcion: float64(p.ServingQuantity),
		Cantidad:    100,
		Macros100g: models.Macros{
			Kcal: float64(p.Nutriments.EnergyKcal100g),
			P:    float64(p.Nutriments.Proteins100g),
			C:    float64(p.Nutriments.Carbohydrates100g),
			F:    float64(p.Nutriments.Fat100g),
		},
	}
	if product.Nombre == "" {
		product.Nombre = "Producto"
	}
	if product.PesoPorcion > 0 {
		product.Cantidad = product.PesoPorcion
	}
	return product, nil
}
