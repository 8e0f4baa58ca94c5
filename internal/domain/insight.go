package domain

import "time"

// InsightRecord é o texto de insight persistido para uma campanha.
// Registros são append-only: uma nova geração cria um novo registro e o
// endpoint de leitura retorna sempre o mais recente.
type InsightRecord struct {
	ID              string    `json:"id"`
	CampaignID      string    `json:"campaign_id"`
	InsightText     string    `json:"insight_text"`
	Recommendations []string  `json:"recommendations"`
	Fallback        bool      `json:"fallback"`
	CreatedAt       time.Time `json:"created_at"`
}

// PersonaSummary condensa as métricas de uma persona dentro de uma campanha
type PersonaSummary struct {
	Persona         Persona           `json:"persona"`
	OpenRate        float64           `json:"open_rate"`
	ClickRate       float64           `json:"click_rate"`
	UnsubscribeRate float64           `json:"unsubscribe_rate"`
	EngagementScore float64           `json:"engagement_score"`
	Overall         BenchmarkCategory `json:"overall"`
	Trend           TrendDirection    `json:"trend"`
}

// CampaignNumericSummary é o resumo numérico entregue ao gerador de texto
type CampaignNumericSummary struct {
	CampaignID   string           `json:"campaign_id"`
	CampaignName string           `json:"campaign_name"`
	Personas     []PersonaSummary `json:"personas"`
}

// AnalysisReport agrega tudo o que a análise de uma campanha produz
type AnalysisReport struct {
	Campaign  *Campaign              `json:"campaign"`
	Snapshots []*PerformanceSnapshot `json:"snapshots"`
	Verdicts  []*BenchmarkVerdict    `json:"verdicts"`
	Trends    []*TrendResult         `json:"trends"`
	Insight   *InsightRecord         `json:"insight,omitempty"`
}
