package emotion

import "testing"

func TestScoreHappyUtterance(t *testing.T) {
	d := Score("我今天很开心")
	if d.Positive != 1 || d.Negative != 0 || d.Neutral != 0 {
		t.Fatalf("unexpected distribution: %+v", d)
	}
	if d.Dominant() != Positive {
		t.Fatalf("expected positive, got %s", d.Dominant())
	}
}

func TestScoreCountsNestedKeywordsTwice(t *testing.T) {
	// "不好" is a negative keyword that also contains the positive "好".
	d := Score("我睡得不好")
	if d.Positive != 1 || d.Negative != 1 {
		t.Fatalf("expected nested keyword to count for both, got %+v", d)
	}
	if d.Dominant() != Positive {
		t.Fatalf("tie should resolve to positive, got %s", d.Dominant())
	}
}

func TestScoreRepeatedKeywords(t *testing.T) {
	d := Score("头疼，腿也疼，有点担心，还行吧")
	if d.Negative != 3 {
		t.Fatalf("expected negative=3, got %d", d.Negative)
	}
	if d.Neutral != 1 {
		t.Fatalf("expected neutral=1, got %d", d.Neutral)
	}
	if d.Dominant() != Negative {
		t.Fatalf("expected negative, got %s", d.Dominant())
	}
}

func TestDominantTieBreakOrder(t *testing.T) {
	cases := []struct {
		d    Distribution
		want Label
	}{
		{Distribution{}, Positive},
		{Distribution{Negative: 2, Neutral: 2}, Negative},
		{Distribution{Positive: 1, Neutral: 3}, Neutral},
		{Distribution{Positive: 4, Negative: 4, Neutral: 4}, Positive},
	}
	for _, tc := range cases {
		if got := tc.d.Dominant(); got != tc.want {
			t.Fatalf("Dominant(%+v) = %s, want %s", tc.d, got, tc.want)
		}
	}
}

func TestKeywordsReturnsCopy(t *testing.T) {
	words := Keywords(Neutral)
	words[0] = "changed"
	if Keywords(Neutral)[0] != "一般" {
		t.Fatal("keyword bucket must not be mutable through Keywords")
	}
}
