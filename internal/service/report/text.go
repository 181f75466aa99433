package report

// Fixed report wording.
var (
	behavioralPatterns = []string{
		"对话连贯性良好",
		"响应时间适中",
		"语言表达清晰",
	}

	immediateActions = []string{
		"继续观察患者情绪变化",
		"保持规律的生活作息",
	}
	longTermCare = []string{
		"定期进行认知训练",
		"增加社交活动",
		"保持药物治疗",
	}
	familyGuidance = []string{
		"多陪伴交流",
		"注意情绪变化",
		"定期复查",
	}
	medicalReferrals = []string{
		"建议3个月后复查",
		"如有异常及时就医",
	}

	familyHighlights = []string{
		"对话积极活跃",
		"语言表达清晰",
		"情绪状态稳定",
	}
	familySuggestions = []string{
		"多陪伴交流，保持患者情绪稳定",
		"鼓励参与社交活动",
		"保持规律作息和饮食",
		"定期进行认知训练游戏",
	}
	familyNextSteps = []string{
		"继续观察患者日常表现",
		"保持现有护理方案",
		"如有异常及时联系医生",
		"下次评估时间：1周后",
	}
)

const (
	stabilityScore     = 85.0
	sessionDuration    = "约30分钟"
	trendAnalysis      = "患者表现稳定，建议继续观察"
	comparisonBaseline = "需要更多数据建立基线"
	activityLevel      = "moderate"
	reportVersion      = "1.0"

	trendStable            = "stable"
	trendSlightImprovement = "slight_improvement"
)

func clone(items []string) []string {
	return append([]string(nil), items...)
}
