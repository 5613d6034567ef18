package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/values" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"values": [[], ["", "duty", "2024-09-05"], ["", "Ivanov Ivan Ivanovich", 45539]]}`)
	}))
	defer srv.Close()

	g, err := NewClient(srv.URL).Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Cell(1, 2); got != "2024-09-05" {
		t.Errorf("cell (1,2) = %q", got)
	}
	// Numbers arrive as float64 and must stringify without a tail.
	if got := g.Cell(2, 2); got != "45539" {
		t.Errorf("cell (2,2) = %q", got)
	}
}

func TestClientReadErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Read(context.Background()); err == nil {
		t.Fatal("expected error on bad status")
	}
}

func TestClientReadGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"error": "range locked"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Read(context.Background())
	if err == nil {
		t.Fatal("expected gateway error to surface")
	}
}

func TestClientWriteCell(t *testing.T) {
	var gotPath, gotValue, gotInput string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Error(err)
		}
		gotValue = body["value"]
		gotInput = body["input"]
	}))
	defer srv.Close()

	err := NewClient(srv.URL).WriteCell(context.Background(), "C3", "night")
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/values/C3" {
		t.Errorf("path = %q", gotPath)
	}
	if gotValue != "night" || gotInput != "user" {
		t.Errorf("payload = %q/%q", gotValue, gotInput)
	}
}

func TestClientWriteCellBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).WriteCell(context.Background(), "C3", "night"); err == nil {
		t.Fatal("expected error on bad status")
	}
}
