package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/400brands/brand-doctor/internal/domain/search"
)

// RegistrySite restricts searches to the Corporate Affairs Commission portal.
const RegistrySite = "search.cac.gov.ng"

const maxResults = 10

var ErrNameRequired = errors.New("Missing brand name")

type Service struct {
	Client search.Client
}

// Query builds the site-restricted search string for a business name.
func Query(name string) string {
	return fmt.Sprintf("%q site:%s", name, RegistrySite)
}

// Search searches the company registry for name.
func (s *Service) Search(ctx context.Context, name string) ([]search.Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	results, err := s.Client.Search(ctx, Query(name), maxResults)
	if err != nil {
		return nil, fmt.Errorf("registry search: %w", err)
	}
	if results == nil {
		results = []search.Result{}
	}
	return results, nil
}
