package emotion

import "strings"

// Label 表示情绪类别。
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Order is the fixed category order used for tie-breaking.
var Order = []Label{Positive, Negative, Neutral}

var keywordBuckets = map[Label][]string{
	Positive: {"好", "开心", "高兴", "满意", "喜欢", "不错", "棒"},
	Negative: {"不好", "难过", "担心", "害怕", "痛苦", "不舒服", "疼"},
	Neutral:  {"一般", "还行", "正常", "可以"},
}

// Distribution holds the raw keyword score of each category.
type Distribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Of returns the score of label.
func (d Distribution) Of(label Label) int {
	switch label {
	case Positive:
		return d.Positive
	case Negative:
		return d.Negative
	case Neutral:
		return d.Neutral
	default:
		return 0
	}
}

// Dominant 返回得分最高的情绪；并列时按 Order 取靠前者，全零时为 Positive。
func (d Distribution) Dominant() Label {
	best := Order[0]
	for _, label := range Order[1:] {
		if d.Of(label) > d.Of(best) {
			best = label
		}
	}
	return best
}

// Score counts keyword occurrences per category. Each keyword is counted on
// its own, so a keyword contained in another one ("好" in "不好") scores for
// both categories.
func Score(text string) Distribution {
	var d Distribution
	if text == "" {
		return d
	}
	for _, label := range Order {
		total := 0
		for _, word := range keywordBuckets[label] {
			total += strings.Count(text, word)
		}
		switch label {
		case Positive:
			d.Positive = total
		case Negative:
			d.Negative = total
		case Neutral:
			d.Neutral = total
		}
	}
	return d
}

// Keywords returns a copy of the keyword list for label.
func Keywords(label Label) []string {
	return append([]string(nil), keywordBuckets[label]...)
}
