package model

// QuoteRequest is a single pricing request as sent by the quote form.
type QuoteRequest struct {
	Weight          float64 `json:"weight" validate:"gte=0"`
	Volume          float64 `json:"volume" validate:"gte=0"`
	Origin          string  `json:"origin" validate:"required"`
	Destination     string  `json:"destination" validate:"required"`
	ProductCategory string  `json:"product_category" validate:"required,category"`
	CustomerSegment string  `json:"customer_segment" validate:"required,segment"`
}

// Source tells which pricing path produced a quote.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Quote is the pricing answer for a QuoteRequest.
type Quote struct {
	RequestID          string             `json:"request_id"`
	RecommendedPrice   float64            `json:"recommended_price"`
	WinProbability     float64            `json:"win_probability"`
	ConfidenceInterval [2]float64         `json:"confidence_interval"`
	ShapValues         map[string]float64 `json:"shap_values"`
	Source             Source             `json:"source"`
}
