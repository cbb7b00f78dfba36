package domain

type EarlyRepaymentRequest struct {
	Principal   *float64 `json:"principal"`
	CurrentRate *float64 `json:"current_rate"`
	YearsLeft   *float64 `json:"years_left"`
	Track       string   `json:"track,omitempty"`
}

type EarlyRepaymentResult struct {
	Track                    string  `json:"track"`
	Fee                      float64 `json:"fee"`
	UncappedFee              float64 `json:"uncapped_fee"`
	Capped                   bool    `json:"capped"`
	MarketAverageRatePercent float64 `json:"market_average_rate_percent"`
	RateDelta                float64 `json:"rate_delta"`
	Factor                   float64 `json:"factor"`
	FormattedFee             string  `json:"formatted_fee"`
}
