package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestDecodeJSONRejectsUnknownAndTrailing(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	decode := func(body string) error {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		return DecodeJSON(httptest.NewRecorder(), r, &v)
	}

	if err := decode(`{"name":"ok"}`); err != nil || v.Name != "ok" {
		t.Fatalf("expected clean decode, got %v (%q)", err, v.Name)
	}
	if err := decode(`{"name":"ok","extra":1}`); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if err := decode(`{"name":"a"}{"name":"b"}`); err == nil {
		t.Fatalf("expected trailing object error")
	}
}

func TestParseLimitOffset(t *testing.T) {
	limit, offset, err := ParseLimitOffset(url.Values{}, 20, 100)
	if err != nil || limit != 20 || offset != 0 {
		t.Fatalf("defaults: got %d %d %v", limit, offset, err)
	}

	limit, offset, err = ParseLimitOffset(url.Values{"limit": {"500"}, "offset": {"3"}}, 20, 100)
	if err != nil || limit != 100 || offset != 3 {
		t.Fatalf("clamped: got %d %d %v", limit, offset, err)
	}

	if _, _, err := ParseLimitOffset(url.Values{"offset": {"-1"}}, 20, 100); err == nil {
		t.Fatalf("expected invalid offset")
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := Page(items, 2, 1); len(got) != 2 || got[0] != 2 {
		t.Fatalf("window: got %v", got)
	}
	if got := Page(items, 10, 4); len(got) != 1 || got[0] != 5 {
		t.Fatalf("clamped: got %v", got)
	}
	if got := Page(items, 2, 9); len(got) != 0 {
		t.Fatalf("past end: got %v", got)
	}
}
