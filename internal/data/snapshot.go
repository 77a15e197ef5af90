package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"retail-dashboard/internal/api/models"
)

// ProductSnapshot is a product listing saved to disk for offline browsing.
type ProductSnapshot struct {
	Backend  string                  `json:"backend"`
	SavedAt  string                  `json:"saved_at"` // ISO 8601 timestamp
	Products []models.ProductSummary `json:"products"`
}

func NewProductSnapshot(backend string, list *models.ProductListResponse) *ProductSnapshot {
	return &ProductSnapshot{
		Backend:  backend,
		SavedAt:  time.Now().UTC().Format(time.RFC3339),
		Products: list.Products,
	}
}

// LoadSnapshot loads a product snapshot from a JSON file
func LoadSnapshot(filePath string) (*ProductSnapshot, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap ProductSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	return &snap, nil
}

// SaveSnapshot saves a product snapshot to a JSON file
func SaveSnapshot(snap *ProductSnapshot, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}
