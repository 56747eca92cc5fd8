package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/400brands/brand-doctor/internal/domain/brand"
)

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/41.58.1.1/json/", r.URL.Path)
		_, _ = w.Write([]byte(`{"ip":"41.58.1.1","city":"Accra","region":"Greater Accra","country_name":"Ghana","country_code":"GH"}`))
	}))
	defer srv.Close()

	loc := NewIPAPI(srv.URL+"/", time.Second).Resolve(context.Background(), "41.58.1.1")
	assert.Equal(t, brand.Location{CountryName: "Ghana", CountryCode: "GH", City: "Accra", Region: "Greater Accra"}, loc)
}

func TestResolve_PrivateIPUsesSelfLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/", r.URL.Path)
		_, _ = w.Write([]byte(`{"city":"Nairobi","country_name":"Kenya","country_code":"KE"}`))
	}))
	defer srv.Close()

	loc := NewIPAPI(srv.URL, time.Second).Resolve(context.Background(), "192.168.1.20")
	assert.Equal(t, "Kenya", loc.CountryName)
	assert.False(t, loc.Fallback)
}

func TestResolve_Fallback(t *testing.T) {
	want := brand.DefaultLocation
	want.Fallback = true

	tests := map[string]http.HandlerFunc{
		"api error body": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"garbage": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
		"empty country": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		},
	}
	for name, h := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			loc := NewIPAPI(srv.URL, time.Second).Resolve(context.Background(), "8.8.8.8")
			assert.Equal(t, want, loc)
			assert.Equal(t, "Nigeria", loc.CountryName)
			assert.Equal(t, "Lagos", loc.City)
		})
	}
}

func TestResolve_Unreachable(t *testing.T) {
	loc := NewIPAPI("http://127.0.0.1:1", 100*time.Millisecond).Resolve(context.Background(), "")
	assert.True(t, loc.Fallback)
	assert.Equal(t, "NG", loc.CountryCode)
}

func TestIsPublic(t *testing.T) {
	assert.True(t, isPublic("8.8.8.8"))
	assert.False(t, isPublic("127.0.0.1"))
	assert.False(t, isPublic("10.1.2.3"))
	assert.False(t, isPublic("::1"))
	assert.False(t, isPublic("not-an-ip"))
}
