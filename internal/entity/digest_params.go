package entity

import (
	"encoding/json"
	"fmt"
)

// DigestParams is the selection configuration for one fill. A copy is frozen on the digest at creation.
type DigestParams struct {
	TopN            int  `json:"top_n" mapstructure:"top_n"`
	PreferDays      int  `json:"prefer_days" mapstructure:"prefer_days"`
	MaxLookbackDays int  `json:"max_lookback_days" mapstructure:"max_lookback_days"`
	MinInterest     int  `json:"min_interest" mapstructure:"min_interest"`
	MinBusiness     int  `json:"min_business" mapstructure:"min_business"`
	MinDFO          int  `json:"min_dfo" mapstructure:"min_dfo"`
	ExcludeWar      bool `json:"exclude_war" mapstructure:"exclude_war"`
	OnlyDFOBusiness bool `json:"only_dfo_business" mapstructure:"only_dfo_business"`
}

// DefaultDigestParams returns the production selection defaults.
func DefaultDigestParams() DigestParams {
	return DigestParams{
		TopN:            5,
		PreferDays:      2,
		MaxLookbackDays: 60,
		MinInterest:     5,
		MinBusiness:     2,
		MinDFO:          2,
		ExcludeWar:      true,
		OnlyDFOBusiness: true,
	}
}

// Validate checks parameter ranges. The returned error names the offending field.
func (p DigestParams) Validate() error {
	switch {
	case p.TopN < 1 || p.TopN > 50:
		return fmt.Errorf("top_n must be between 1 and 50, got %d", p.TopN)
	case p.PreferDays < 1 || p.PreferDays > 31:
		return fmt.Errorf("prefer_days must be between 1 and 31, got %d", p.PreferDays)
	case p.MaxLookbackDays < p.PreferDays || p.MaxLookbackDays > 366:
		return fmt.Errorf("max_lookback_days must be between prefer_days (%d) and 366, got %d", p.PreferDays, p.MaxLookbackDays)
	case p.MinInterest < 0 || p.MinInterest > 10:
		return fmt.Errorf("min_interest must be between 0 and 10, got %d", p.MinInterest)
	case p.MinBusiness < 0 || p.MinBusiness > 4:
		return fmt.Errorf("min_business must be between 0 and 4, got %d", p.MinBusiness)
	case p.MinDFO < 0 || p.MinDFO > 4:
		return fmt.Errorf("min_dfo must be between 0 and 4, got %d", p.MinDFO)
	}
	return nil
}

// JSON renders the snapshot stored on the digest row.
func (p DigestParams) JSON() []byte {
	b, _ := json.Marshal(p)
	return b
}
