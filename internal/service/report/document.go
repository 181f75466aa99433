package report

import (
	"github.com/zhouzirui/medjourney/backend/internal/analysis/cognitive"
	"github.com/zhouzirui/medjourney/backend/internal/analysis/emotion"
)

// DoctorReport is the clinical variant of a session report.
type DoctorReport struct {
	ReportID         string           `json:"report_id"`
	SessionID        string           `json:"session_id"`
	UserID           string           `json:"user_id"`
	GeneratedAt      string           `json:"generated_at"`
	ReportType       string           `json:"report_type"`
	Summary          DoctorSummary    `json:"summary"`
	DetailedAnalysis DetailedAnalysis `json:"detailed_analysis"`
	Recommendations  Recommendations  `json:"recommendations"`
	DataInsights     DataInsights     `json:"data_insights"`
}

type DoctorSummary struct {
	OverallAssessment string        `json:"overall_assessment"`
	KeyFindings       []string      `json:"key_findings"`
	HealthScore       float64       `json:"health_score"`
	EmotionalState    emotion.Label `json:"emotional_state"`
}

type DetailedAnalysis struct {
	ConversationQuality float64              `json:"conversation_quality"`
	CognitiveAssessment cognitive.Indicators `json:"cognitive_assessment"`
	EmotionalAnalysis   EmotionalAnalysis    `json:"emotional_analysis"`
	BehavioralPatterns  []string             `json:"behavioral_patterns"`
}

type EmotionalAnalysis struct {
	DominantEmotion     emotion.Label        `json:"dominant_emotion"`
	EmotionDistribution emotion.Distribution `json:"emotion_distribution"`
	StabilityScore      float64              `json:"stability_score"`
}

type Recommendations struct {
	ImmediateActions []string `json:"immediate_actions"`
	LongTermCare     []string `json:"long_term_care"`
	FamilyGuidance   []string `json:"family_guidance"`
	MedicalReferrals []string `json:"medical_referrals"`
}

type DataInsights struct {
	ConversationStats  ConversationStats `json:"conversation_stats"`
	TrendAnalysis      string            `json:"trend_analysis"`
	ComparisonBaseline string            `json:"comparison_baseline"`
}

type ConversationStats struct {
	TotalMessages     int    `json:"total_messages"`
	UserMessages      int    `json:"user_messages"`
	AssistantMessages int    `json:"assistant_messages"`
	SessionDuration   string `json:"session_duration"`
}

// FamilyReport is the lay variant, projected from a DoctorReport.
type FamilyReport struct {
	ReportID       string         `json:"report_id"`
	SessionID      string         `json:"session_id"`
	UserID         string         `json:"user_id"`
	GeneratedAt    string         `json:"generated_at"`
	ReportType     string         `json:"report_type"`
	Summary        FamilySummary  `json:"summary"`
	RecentActivity RecentActivity `json:"recent_activity"`
	HealthTrends   HealthTrends   `json:"health_trends"`
	Suggestions    []string       `json:"suggestions"`
	NextSteps      []string       `json:"next_steps"`
	Metadata       FamilyMetadata `json:"metadata"`
}

type FamilySummary struct {
	SimpleSummary string   `json:"simple_summary"`
	Highlights    []string `json:"highlights"`
	HealthScore   float64  `json:"health_score"`
}

type RecentActivity struct {
	TotalSessions   int    `json:"total_sessions"`
	TotalMessages   int    `json:"total_messages"`
	LastSessionDate string `json:"last_session_date"`
	ActivityLevel   string `json:"activity_level"`
}

type HealthTrends struct {
	OverallTrend   string `json:"overall_trend"`
	CognitiveTrend string `json:"cognitive_trend"`
	EmotionalTrend string `json:"emotional_trend"`
}

type FamilyMetadata struct {
	GenerationTimestamp string `json:"generation_timestamp"`
	ReportVersion       string `json:"report_version"`
}
