package service

import (
	"fmt"
	"math"

	"sweeply/internal/models"
	"sweeply/internal/recurrence"
)

// RateStore is the catalog surface the estimator needs.
// *repository.ServiceRateRepository satisfies it.
type RateStore interface {
	Find(serviceType, propertyType string) (*models.ServiceRate, error)
}

// Frequency discounts applied to recurring bookings.
var frequencyDiscounts = map[recurrence.Frequency]float64{
	recurrence.Weekly:   0.15,
	recurrence.Biweekly: 0.10,
	recurrence.Monthly:  0.05,
}

// Estimate is the calculator's result.
type Estimate struct {
	ServiceType  string  `json:"service_type"`
	PropertyType string  `json:"property_type"`
	BasePrice    float64 `json:"base_price"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

// Estimator prices a prospective booking from the seeded rate catalog.
type Estimator struct {
	rates RateStore
}

func NewEstimator(rates RateStore) *Estimator {
	return &Estimator{rates: rates}
}

// Quote computes a price estimate: base rate for the service/property type
// plus per-room adders, less the recurring-frequency discount.
func (e *Estimator) Quote(req models.EstimateRequest) (*Estimate, error) {
	propertyType := req.PropertyType
	if propertyType == "" {
		propertyType = models.PropertyResidential
	}

	rate, err := e.rates.Find(req.ServiceType, propertyType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrRateNotFound, req.ServiceType, propertyType)
	}

	base := rate.BaseRate +
		float64(req.Bedrooms)*rate.PerBedroom +
		float64(req.Bathrooms)*rate.PerBathroom

	discount := 0.0
	if req.Frequency != "" {
		discount = base * frequencyDiscounts[recurrence.Frequency(req.Frequency)]
	}

	return &Estimate{
		ServiceType:  req.ServiceType,
		PropertyType: propertyType,
		BasePrice:    round2(base),
		Discount:     round2(discount),
		Total:        round2(base - discount),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
