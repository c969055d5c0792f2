package handlers_test

import (
	"net/http"
	"testing"
)

func TestPriceSuggestionAPI(t *testing.T) {
	app, _, _ := newTestApp(t)

	// Good condition (0.70) on a premium brand (1.10)
	resp := doJSON(t, app, http.MethodPost, "/api/v1/price-suggestion",
		`{"original_price":1000,"condition":"Good","brand_tier":"premium"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["suggested_price"] != 770.00 {
		t.Fatalf("want 770, got %v", body["suggested_price"])
	}

	// brand tier defaults to medium when omitted
	resp = doJSON(t, app, http.MethodPost, "/api/v1/price-suggestion",
		`{"original_price":200,"condition":"New"}`)
	if body := decodeBody(t, resp); body["suggested_price"] != 190.00 {
		t.Fatalf("want 190 for New/medium, got %v", body["suggested_price"])
	}

	// unknown condition falls back rather than erroring
	resp = doJSON(t, app, http.MethodPost, "/api/v1/price-suggestion",
		`{"original_price":100,"condition":"Mint","brand_tier":"budget"}`)
	if body := decodeBody(t, resp); body["suggested_price"] != 63.00 {
		t.Fatalf("want 63 for fallback condition, got %v", body["suggested_price"])
	}
}

func TestPriceSuggestionRequiresOriginalPrice(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/price-suggestion",
		`{"condition":"Good","brand_tier":"medium"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}
