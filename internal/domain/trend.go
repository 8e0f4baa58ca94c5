package domain

// TrendDirection é a direção do movimento das taxas dentro da janela analisada
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
	TrendMixed     TrendDirection = "mixed"
	TrendUnknown   TrendDirection = "unknown"
)

// TrendResult descreve a tendência direcional de uma linha de snapshots.
// Magnitude é a maior variação absoluta (em fração de taxa) entre a amostra
// mais antiga e a mais recente da janela.
type TrendResult struct {
	Persona        Persona        `json:"persona,omitempty"`
	Direction      TrendDirection `json:"direction"`
	Magnitude      float64        `json:"magnitude"`
	OpenRateDelta  float64        `json:"open_rate_delta"`
	ClickRateDelta float64        `json:"click_rate_delta"`
	SamplesUsed    int            `json:"samples_used"`
}
