package domain

// BenchmarkCategory classifica uma métrica em relação ao benchmark de mercado
type BenchmarkCategory string

const (
	CategoryBelow BenchmarkCategory = "below"
	CategoryAt    BenchmarkCategory = "at"
	CategoryAbove BenchmarkCategory = "above"
)

// categoryRank define a ordenação pessimista: below < at < above
var categoryRank = map[BenchmarkCategory]int{
	CategoryBelow: 0,
	CategoryAt:    1,
	CategoryAbove: 2,
}

// Worse retorna a pior das duas categorias
func (c BenchmarkCategory) Worse(other BenchmarkCategory) BenchmarkCategory {
	if categoryRank[other] < categoryRank[c] {
		return other
	}
	return c
}

// MetricComparison descreve uma métrica comparada ao seu benchmark
type MetricComparison struct {
	Actual    float64           `json:"actual"`
	Benchmark float64           `json:"benchmark"`
	Delta     float64           `json:"delta"`
	Category  BenchmarkCategory `json:"category"`
}

// BenchmarkVerdict é o resultado da comparação de um snapshot contra os
// benchmarks fixos de mercado. Overall é a pior categoria entre as métricas:
// um único sinal fraco (ex.: unsubscribe alto) puxa o veredito para baixo.
type BenchmarkVerdict struct {
	CampaignID      string            `json:"campaign_id"`
	Persona         Persona           `json:"persona"`
	OpenRate        MetricComparison  `json:"open_rate"`
	ClickRate       MetricComparison  `json:"click_rate"`
	UnsubscribeRate MetricComparison  `json:"unsubscribe_rate"`
	Overall         BenchmarkCategory `json:"overall"`
}
