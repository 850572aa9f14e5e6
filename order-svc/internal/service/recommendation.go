package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"fastgrab/order-svc/internal/catalog"
)

const maxRecommendations = 3

type RecommendationRequest struct {
	SelectedItems  []string `json:"selectedItems"`
	AvailableItems []string `json:"availableItems,omitempty"`
}

type RecommendationResponse struct {
	Recommendations []string `json:"recommendations"`
}

// RecommendationService suggests up-sell items. With an endpoint configured the
// suggestions come from the remote generator, otherwise from the catalog.
// Any failure yields an empty list.
type RecommendationService struct {
	endpoint string
	client   HTTPClient
	catalog  *catalog.Provider
}

func NewRecommendationService(endpoint string, client HTTPClient, menu *catalog.Provider) *RecommendationService {
	return &RecommendationService{endpoint: endpoint, client: client, catalog: menu}
}

func (s *RecommendationService) Recommend(ctx context.Context, selectedItems, availableItems []string) []string {
	if len(availableItems) == 0 && s.catalog != nil {
		availableItems = s.catalog.ItemNames()
	}

	var suggestions []string
	if s.endpoint != "" && s.client != nil {
		remote, err := s.fetch(ctx, selectedItems, availableItems)
		if err != nil {
			log.Printf("Warning: recommendation request failed: %v", err)
			return []string{}
		}
		suggestions = remote
	} else {
		suggestions = s.fromCatalog(selectedItems, availableItems)
	}

	return filterSuggestions(suggestions, selectedItems, availableItems)
}

func (s *RecommendationService) fetch(ctx context.Context, selectedItems, availableItems []string) ([]string, error) {
	body, err := json.Marshal(RecommendationRequest{
		SelectedItems:  selectedItems,
		AvailableItems: availableItems,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommender returned status %d", resp.StatusCode)
	}

	var out RecommendationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	return out.Recommendations, nil
}

// fromCatalog prefers drinks, then sides, then anything else.
func (s *RecommendationService) fromCatalog(selectedItems, availableItems []string) []string {
	if s.catalog == nil {
		return nil
	}
	rank := map[string]int{"drinks": 0, "sides": 1}
	buckets := make([][]string, 3)
	for _, name := range availableItems {
		r, ok := rank[s.catalog.CategoryOf(name)]
		if !ok {
			r = 2
		}
		buckets[r] = append(buckets[r], name)
	}

	var ordered []string
	for _, bucket := range buckets {
		ordered = append(ordered, bucket...)
	}
	return ordered
}

func filterSuggestions(suggestions, selectedItems, availableItems []string) []string {
	available := make(map[string]bool, len(availableItems))
	for _, name := range availableItems {
		available[name] = true
	}
	taken := make(map[string]bool, len(selectedItems))
	for _, name := range selectedItems {
		taken[name] = true
	}

	out := []string{}
	for _, name := range suggestions {
		if len(out) == maxRecommendations {
			break
		}
		if !available[name] || taken[name] {
			continue
		}
		taken[name] = true
		out = append(out, name)
	}
	return out
}
