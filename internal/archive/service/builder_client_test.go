package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBuilderClientBuild(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/build" {
			t.Errorf("path = %q, want /build", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"project": "Tower",
			"walls": 3,
			"report": {"file_name": "Tower.ifc", "valid": true, "violations": []},
			"step": "ISO-10303-21;"
		}`))
	}))
	defer srv.Close()

	client := NewBuilderClient(srv.URL)
	result, err := client.Build([]byte(`{"segments":[]}`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if gotBody != `{"segments":[]}` {
		t.Errorf("forwarded body = %q", gotBody)
	}
	if result.Project != "Tower" || result.Walls != 3 {
		t.Errorf("result = %+v", result)
	}
	if !result.Report.Valid || result.Report.FileName != "Tower.ifc" {
		t.Errorf("report = %+v", result.Report)
	}
	if result.Step != "ISO-10303-21;" {
		t.Errorf("step = %q", result.Step)
	}
	if len(result.ReportRaw) == 0 {
		t.Error("raw report not captured")
	}
}

func TestBuilderClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model is busy, retry later"}`, http.StatusConflict)
	}))
	defer srv.Close()

	if _, err := NewBuilderClient(srv.URL).Build([]byte(`{}`)); err == nil {
		t.Fatal("expected error for 409 upstream")
	}
}

func TestBuilderClientEmptyURL(t *testing.T) {
	if _, err := NewBuilderClient("").Build([]byte(`{}`)); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
