package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/400brands/brand-doctor/internal/domain/brand"
)

// IPAPI resolves locations with the ipapi.co JSON endpoint.
type IPAPI struct {
	baseURL string
	client  *http.Client
}

func NewIPAPI(baseURL string, timeout time.Duration) *IPAPI {
	return &IPAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type ipapiResponse struct {
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
	Region      string `json:"region"`
}

// Resolve never fails. Lookup errors return brand.DefaultLocation with Fallback set.
func (g *IPAPI) Resolve(ctx context.Context, clientIP string) brand.Location {
	loc, err := g.lookup(ctx, clientIP)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("ip", clientIP).Msg("geolocation failed")
		fb := brand.DefaultLocation
		fb.Fallback = true
		return fb
	}
	return loc
}

func (g *IPAPI) lookup(ctx context.Context, clientIP string) (brand.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint(clientIP), nil)
	if err != nil {
		return brand.Location{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return brand.Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return brand.Location{}, fmt.Errorf("ipapi returned %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return brand.Location{}, fmt.Errorf("decode ipapi response: %w", err)
	}
	if body.Error {
		return brand.Location{}, fmt.Errorf("ipapi error: %s", body.Reason)
	}
	if body.CountryName == "" {
		return brand.Location{}, fmt.Errorf("ipapi returned no country")
	}

	return brand.Location{
		CountryName: body.CountryName,
		CountryCode: body.CountryCode,
		City:        body.City,
		Region:      body.Region,
	}, nil
}

// endpoint asks about the caller's own address when clientIP is not public.
func (g *IPAPI) endpoint(clientIP string) string {
	if isPublic(clientIP) {
		return g.baseURL + "/" + clientIP + "/json/"
	}
	return g.baseURL + "/json/"
}

func isPublic(s string) bool {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return false
	}
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast())
}
