package pipeline

import "property-pricing-service/internal/domain"

// DefaultImputationPolicy pins one explicit strategy per column of the
// Gurgaon dataset. Rows missing the target or the property id are dropped
// outright; everything else fills deterministically.
func DefaultImputationPolicy() domain.ImputationPolicy {
	return domain.ImputationPolicy{
		Columns: map[string]domain.ImputeStrategy{
			"price":           {Kind: domain.ImputeDropRow},
			"property_id":     {Kind: domain.ImputeDropRow},
			"built_up_area":   {Kind: domain.ImputeMedian},
			"bedRoom":         {Kind: domain.ImputeMedian},
			"bathroom":        {Kind: domain.ImputeMedian},
			"servant room":    {Kind: domain.ImputeConstant, Constant: "0"},
			"store room":      {Kind: domain.ImputeConstant, Constant: "0"},
			"balcony":         {Kind: domain.ImputeMode},
			"property_type":   {Kind: domain.ImputeMode},
			"sector":          {Kind: domain.ImputeMode},
			"agePossession":   {Kind: domain.ImputeMode},
			"furnishing_type": {Kind: domain.ImputeConstant, Constant: "unfurnished"},
			"luxury_category": {Kind: domain.ImputeConstant, Constant: "Low"},
			"floor_category":  {Kind: domain.ImputeMode},
		},
		PositiveColumns: []string{"price", "built_up_area"},
	}
}

// DefaultOutlierPolicy caps the heavy-tailed money and size columns with
// 1.5-IQR fences and removes rows with absurd room counts.
func DefaultOutlierPolicy() domain.OutlierPolicy {
	return domain.OutlierPolicy{
		"price":         {Detect: domain.DetectIQR, K: 1.5, Action: domain.ActionCap},
		"built_up_area": {Detect: domain.DetectIQR, K: 1.5, Action: domain.ActionCap},
		"bedRoom":       {Detect: domain.DetectZScore, Z: 4, Action: domain.ActionRemove},
		"bathroom":      {Detect: domain.DetectZScore, Z: 4, Action: domain.ActionRemove},
	}
}
