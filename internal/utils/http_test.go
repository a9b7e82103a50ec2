package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decode(t *testing.T, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	var v struct {
		Title string `json:"title"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	return rec, DecodeJSON(rec, req, &v)
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return body["message"]
}

func TestDecodeJSON(t *testing.T) {
	if _, err := decode(t, `{"title":"T1"}`); err != nil {
		t.Fatalf("valid body: %v", err)
	}
	if _, err := decode(t, ""); err != nil {
		t.Fatalf("empty body should be accepted: %v", err)
	}

	rec, err := decode(t, `{"title":`)
	if err == nil || rec.Code != http.StatusBadRequest || message(t, rec) != "Invalid JSON" {
		t.Fatalf("malformed body: got %d %q (%v)", rec.Code, rec.Body.String(), err)
	}
}

func TestDecodeJSONBodyTooLarge(t *testing.T) {
	body := `{"title":"` + strings.Repeat("a", MaxBodyBytes+1) + `"}`

	rec, err := decode(t, body)
	if err == nil {
		t.Fatal("expected an error for an oversized body")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	if message(t, rec) != "Request body too large" {
		t.Fatalf("unexpected message %q", message(t, rec))
	}
}
