// internal/engine/spoilage/assessor_test.go
package spoilage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/models"
	"postharvest-engine/internal/providers"
)

func testCropStore() *providers.Snapshot {
	return providers.NewSnapshot([]models.CropMetadata{
		{Name: "tomato", Spoilage: models.SpoilageHigh, OpenStorageDays: 3, ColdStorageDays: 21},
		{Name: "potato", Spoilage: models.SpoilageMedium, OpenStorageDays: 20, ColdStorageDays: 120},
	}, nil, nil)
}

func TestAssessor_RiskBands(t *testing.T) {
	assessor := NewAssessor(nil, testCropStore(), logger.NewNoOpLogger())

	// Potato stored open has a 20-day shelf life, so the band edges land
	// exactly on whole days.
	tests := []struct {
		name         string
		daysToSell   int
		expectedRisk models.RiskLevel
		expectedUtil float64
	}{
		{name: "well within shelf life", daysToSell: 5, expectedRisk: models.RiskLow, expectedUtil: 25},
		{name: "just under medium band", daysToSell: 9, expectedRisk: models.RiskLow, expectedUtil: 45},
		{name: "exactly at fifty percent", daysToSell: 10, expectedRisk: models.RiskMedium, expectedUtil: 50},
		{name: "just under high band", daysToSell: 15, expectedRisk: models.RiskMedium, expectedUtil: 75},
		{name: "exactly at eighty percent", daysToSell: 16, expectedRisk: models.RiskHigh, expectedUtil: 80},
		{name: "past shelf life", daysToSell: 25, expectedRisk: models.RiskHigh, expectedUtil: 125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assessment, err := assessor.Assess(context.Background(), "potato", tt.daysToSell, models.StorageOpen)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedRisk, assessment.RiskLevel)
			assert.Equal(t, tt.expectedUtil, assessment.UtilizationPercent)
			assert.Equal(t, 20, assessment.ShelfLifeDays)
			assert.Equal(t, 16, assessment.MaxSafeStorageDays)
			assert.Equal(t, models.StorageOpen, assessment.StorageTypeUsed)
		})
	}
}

func TestAssessor_ColdStorageExtendsShelfLife(t *testing.T) {
	assessor := NewAssessor(nil, testCropStore(), logger.NewNoOpLogger())

	open, err := assessor.Assess(context.Background(), "tomato", 3, models.StorageOpen)
	require.NoError(t, err)
	cold, err := assessor.Assess(context.Background(), "tomato", 3, models.StorageCold)
	require.NoError(t, err)

	assert.Equal(t, models.RiskHigh, open.RiskLevel)
	assert.Equal(t, 3, open.ShelfLifeDays)
	assert.Equal(t, models.RiskLow, cold.RiskLevel)
	assert.Equal(t, 21, cold.ShelfLifeDays)
}

func TestAssessor_UnknownCropFallback(t *testing.T) {
	assessor := NewAssessor(nil, testCropStore(), logger.NewNoOpLogger())

	assessment, err := assessor.Assess(context.Background(), "dragonfruit", 9, models.StorageOpen)
	require.NoError(t, err)

	assert.Equal(t, models.RiskMedium, assessment.RiskLevel)
	assert.Equal(t, 30, assessment.ShelfLifeDays)
	assert.Equal(t, 24, assessment.MaxSafeStorageDays)
	assert.Equal(t, 30.0, assessment.UtilizationPercent)
}

type failingCropStore struct{ err error }

func (f *failingCropStore) Get(context.Context, string) (*models.CropMetadata, error) {
	return nil, f.err
}

func TestAssessor_ProviderFailurePropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	assessor := NewAssessor(nil, &failingCropStore{err: wantErr}, logger.NewNoOpLogger())

	_, err := assessor.Assess(context.Background(), "potato", 5, models.StorageOpen)
	assert.ErrorIs(t, err, wantErr)
}
