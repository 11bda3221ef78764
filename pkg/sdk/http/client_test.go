package http

import (
	"context"
	"encoding/json"
	"io"
	netHTTP "net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoRequest(t *testing.T) {
	t.Run("methods pass through, including OPTIONS", func(t *testing.T) {
		for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"} {
			var got string
			server := httptest.NewServer(netHTTP.HandlerFunc(func(w netHTTP.ResponseWriter, r *netHTTP.Request) {
				got = r.Method
				w.WriteHeader(netHTTP.StatusOK)
			}))

			c := NewClient(time.Second)
			if _, err := c.DoRequest(context.Background(), method, server.URL, nil); err != nil {
				t.Fatalf("%s: unexpected error: %v", method, err)
			}
			if got != method {
				t.Errorf("server saw %s, want %s", got, method)
			}
			server.Close()
		}
	})

	t.Run("headers, params and body", func(t *testing.T) {
		var gotHeader, gotQuery string
		var gotBody map[string]any
		server := httptest.NewServer(netHTTP.HandlerFunc(func(w netHTTP.ResponseWriter, r *netHTTP.Request) {
			gotHeader = r.Header.Get("X-Custom")
			gotQuery = r.URL.Query().Get("flag")
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, &gotBody)
			w.WriteHeader(netHTTP.StatusOK)
		}))
		defer server.Close()

		c := NewClient(time.Second)
		_, err := c.DoRequest(context.Background(), "post", server.URL, &RequestOptions{
			Headers: map[string]string{"X-Custom": "yes"},
			Params:  map[string]any{"flag": true},
			JSON:    map[string]any{"a": 1},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotHeader != "yes" {
			t.Errorf("header = %q", gotHeader)
		}
		if gotQuery != "true" {
			t.Errorf("query flag = %q, want true", gotQuery)
		}
		if gotBody["a"] != float64(1) {
			t.Errorf("body = %v", gotBody)
		}
	})

	t.Run("non-2xx is not a transport error", func(t *testing.T) {
		server := httptest.NewServer(netHTTP.HandlerFunc(func(w netHTTP.ResponseWriter, r *netHTTP.Request) {
			w.WriteHeader(netHTTP.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
		}))
		defer server.Close()

		c := NewClient(time.Second)
		resp, err := c.DoRequest(context.Background(), "GET", server.URL, nil)
		if err != nil {
			t.Fatalf("status codes should not error at this layer: %v", err)
		}
		if resp.StatusCode() != netHTTP.StatusBadGateway {
			t.Errorf("status = %d, want 502", resp.StatusCode())
		}
		if string(resp.Body()) != "bad gateway" {
			t.Errorf("body = %q", resp.Body())
		}
	})
}

func TestToValues(t *testing.T) {
	v := toValues(map[string]any{
		"s":    "x",
		"n":    7,
		"b":    false,
		"list": []string{"a", "b"},
	})

	if v["s"][0] != "x" || v["n"][0] != "7" || v["b"][0] != "false" {
		t.Errorf("toValues = %v", v)
	}
	if len(v["list"]) != 2 {
		t.Errorf("list = %v, want both values kept", v["list"])
	}
}
