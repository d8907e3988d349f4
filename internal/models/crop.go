// internal/models/crop.go
package models

import "strings"

// SpoilageSensitivity classifies how quickly a crop degrades after harvest.
type SpoilageSensitivity string

const (
	SpoilageLow    SpoilageSensitivity = "LOW"
	SpoilageMedium SpoilageSensitivity = "MEDIUM"
	SpoilageHigh   SpoilageSensitivity = "HIGH"
)

// StorageType identifies the class of storage a facility offers.
type StorageType string

const (
	StorageOpen StorageType = "OPEN"
	StorageCold StorageType = "COLD"
)

// CropMetadata is static reference data about a crop's post-harvest behavior.
type CropMetadata struct {
	Name            string              `json:"name"`
	Spoilage        SpoilageSensitivity `json:"spoilageSensitivity"`
	OpenStorageDays int                 `json:"openStorageDays"`
	ColdStorageDays int                 `json:"coldStorageDays"`
}

// ShelfLifeDays returns the shelf life for the given storage type.
func (c CropMetadata) ShelfLifeDays(storageType StorageType) int {
	if storageType == StorageCold {
		return c.ColdStorageDays
	}
	return c.OpenStorageDays
}

// NormalizeCropName canonicalizes crop names for lookups.
func NormalizeCropName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
