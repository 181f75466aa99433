// Package cognitive derives the heuristic 0-100 cognitive indicators from
// conversation statistics. The scores are not clinical measures.
package cognitive

// Inputs are the transcript statistics the indicators depend on.
type Inputs struct {
	PositiveScore int
	NegativeScore int
	UserMessages  int
	TotalMessages int
	// LetterCount is the number of letter runes in the user corpus.
	LetterCount int
}

// Indicators 认知指标，均在 [0, 100] 区间内。
type Indicators struct {
	Memory               float64 `json:"memory_score"`
	Attention            float64 `json:"attention_score"`
	Language             float64 `json:"language_score"`
	CommunicationQuality float64 `json:"communication_quality"`
}

// Assess computes the four clamped indicators.
func Assess(in Inputs) Indicators {
	return Indicators{
		Memory:               Clamp(85 + 2*float64(in.PositiveScore-in.NegativeScore)),
		Attention:            Clamp(80 + 0.5*float64(in.UserMessages)),
		Language:             Clamp(90 + 0.01*float64(in.LetterCount)),
		CommunicationQuality: Clamp(85 + 0.3*float64(in.TotalMessages)),
	}
}

// Average is the mean of the four indicators, summed in declaration order.
func (i Indicators) Average() float64 {
	return (i.Memory + i.Attention + i.Language + i.CommunicationQuality) / 4
}

// Clamp limits v to [0, 100].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
