// internal/engine/spoilage/assessor.go
package spoilage

import (
	"context"
	"errors"
	"math"

	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/models"
	"postharvest-engine/internal/providers"
)

// Assessor rates the spoilage risk of holding a crop for a planned number
// of days under a given storage type.
type Assessor struct {
	config *Config
	crops  providers.CropMetadataProvider
	logger logger.Logger
}

func NewAssessor(config *Config, crops providers.CropMetadataProvider, log logger.Logger) *Assessor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Assessor{
		config: config,
		crops:  crops,
		logger: log.WithFields(map[string]interface{}{"component": "spoilage-assessor"}),
	}
}

// Assess computes shelf-life utilization and the resulting risk band.
// An unregistered crop falls back to a 30-day shelf life at MEDIUM risk;
// provider I/O failures are returned as-is.
func (a *Assessor) Assess(ctx context.Context, cropName string, daysToSell int, storageType models.StorageType) (*models.SpoilageAssessment, error) {
	meta, err := a.crops.Get(ctx, cropName)
	if err != nil {
		if errors.Is(err, providers.ErrCropNotFound) {
			a.logger.Warn("unknown crop, using fallback shelf life", map[string]interface{}{
				"crop": cropName,
			})
			shelfLife := a.config.FallbackShelfLifeDays
			return &models.SpoilageAssessment{
				RiskLevel:          models.RiskMedium,
				MaxSafeStorageDays: int(math.Floor(float64(shelfLife) * a.config.SafeUtilization)),
				ShelfLifeDays:      shelfLife,
				UtilizationPercent: round1(float64(daysToSell) / float64(shelfLife) * 100),
				StorageTypeUsed:    storageType,
			}, nil
		}
		return nil, err
	}

	shelfLife := meta.ShelfLifeDays(storageType)
	utilization := float64(daysToSell) / float64(shelfLife)

	risk := models.RiskLow
	switch {
	case utilization >= a.config.HighUtilization:
		risk = models.RiskHigh
	case utilization >= a.config.MediumUtilization:
		risk = models.RiskMedium
	}

	return &models.SpoilageAssessment{
		RiskLevel:          risk,
		MaxSafeStorageDays: int(math.Floor(float64(shelfLife) * a.config.SafeUtilization)),
		ShelfLifeDays:      shelfLife,
		UtilizationPercent: round1(utilization * 100),
		StorageTypeUsed:    storageType,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
