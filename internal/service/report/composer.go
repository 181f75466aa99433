package report

import (
	"fmt"
	"time"

	"github.com/zhouzirui/medjourney/backend/internal/analysis"
	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
	reportModel "github.com/zhouzirui/medjourney/backend/internal/model/report"
)

// Composer builds report documents. Only the identifiers and timestamps depend
// on the clock.
type Composer struct {
	now func() time.Time
}

// NewComposer returns a Composer using now, or time.Now when nil.
func NewComposer(now func() time.Time) *Composer {
	if now == nil {
		now = time.Now
	}
	return &Composer{now: now}
}

// ReportID 生成形如 doctor-report-<sessionID>-<epochSeconds> 的报告编号。
func ReportID(kind reportModel.Kind, sessionID string, at time.Time) string {
	return fmt.Sprintf("%s-report-%s-%d", kind, sessionID, at.Unix())
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// Doctor builds the clinical report.
func (c *Composer) Doctor(session *chat.Session, messages []*chat.Message) DoctorReport {
	result := analysis.Analyze(messages)
	average := result.Cognitive.Average()
	dominant := result.DominantEmotion
	now := c.now()

	return DoctorReport{
		ReportID:    ReportID(reportModel.KindDoctor, session.ID, now),
		SessionID:   session.ID,
		UserID:      session.UserID,
		GeneratedAt: formatTime(now),
		ReportType:  string(reportModel.KindDoctor),
		Summary: DoctorSummary{
			OverallAssessment: fmt.Sprintf("患者在本次会话中表现出%s的情绪状态，认知功能评估良好。", dominant),
			KeyFindings: []string{
				fmt.Sprintf("情绪状态：%s", dominant),
				fmt.Sprintf("对话轮次：%d轮", result.TotalMessages),
				fmt.Sprintf("用户参与度：%d条消息", result.UserMessages),
				fmt.Sprintf("平均认知评分：%.1f/100", average),
			},
			HealthScore:    average,
			EmotionalState: dominant,
		},
		DetailedAnalysis: DetailedAnalysis{
			ConversationQuality: result.Cognitive.CommunicationQuality,
			CognitiveAssessment: result.Cognitive,
			EmotionalAnalysis: EmotionalAnalysis{
				DominantEmotion:     dominant,
				EmotionDistribution: result.Emotions,
				StabilityScore:      stabilityScore,
			},
			BehavioralPatterns: clone(behavioralPatterns),
		},
		Recommendations: Recommendations{
			ImmediateActions: clone(immediateActions),
			LongTermCare:     clone(longTermCare),
			FamilyGuidance:   clone(familyGuidance),
			MedicalReferrals: clone(medicalReferrals),
		},
		DataInsights: DataInsights{
			ConversationStats: ConversationStats{
				TotalMessages:     result.TotalMessages,
				UserMessages:      result.UserMessages,
				AssistantMessages: result.AssistantMessages,
				SessionDuration:   sessionDuration,
			},
			TrendAnalysis:      trendAnalysis,
			ComparisonBaseline: comparisonBaseline,
		},
	}
}

// Family builds the lay report by re-projecting the doctor report.
func (c *Composer) Family(session *chat.Session, messages []*chat.Message) FamilyReport {
	doctor := c.Doctor(session, messages)
	now := c.now()

	return FamilyReport{
		ReportID:    ReportID(reportModel.KindFamily, session.ID, now),
		SessionID:   session.ID,
		UserID:      session.UserID,
		GeneratedAt: formatTime(now),
		ReportType:  string(reportModel.KindFamily),
		Summary: FamilySummary{
			SimpleSummary: fmt.Sprintf("患者今日表现良好，情绪%s，沟通顺畅。", doctor.Summary.EmotionalState),
			Highlights:    clone(familyHighlights),
			HealthScore:   doctor.Summary.HealthScore,
		},
		RecentActivity: RecentActivity{
			TotalSessions:   1,
			TotalMessages:   len(messages),
			LastSessionDate: formatTime(session.CreatedAt),
			ActivityLevel:   activityLevel,
		},
		HealthTrends: HealthTrends{
			OverallTrend:   trendStable,
			CognitiveTrend: trendSlightImprovement,
			EmotionalTrend: trendStable,
		},
		Suggestions: clone(familySuggestions),
		NextSteps:   clone(familyNextSteps),
		Metadata: FamilyMetadata{
			GenerationTimestamp: formatTime(now),
			ReportVersion:       reportVersion,
		},
	}
}

// Compose builds the document for kind. Unknown kinds return nil.
func (c *Composer) Compose(kind reportModel.Kind, session *chat.Session, messages []*chat.Message) any {
	switch kind {
	case reportModel.KindDoctor:
		return c.Doctor(session, messages)
	case reportModel.KindFamily:
		return c.Family(session, messages)
	default:
		return nil
	}
}
