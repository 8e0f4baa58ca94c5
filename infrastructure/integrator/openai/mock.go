package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/novamind/content-pipeline-api/internal/domain"
)

// MockGenerator produz texto determinístico a partir do resumo numérico,
// sem chamadas externas. Usado em desenvolvimento e quando não há API key.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (g *MockGenerator) GenerateInsight(_ context.Context, summary *domain.CampaignNumericSummary) (string, error) {
	if len(summary.Personas) == 0 {
		return fmt.Sprintf("A campanha %q ainda não possui métricas registradas.", summary.CampaignName), nil
	}

	best := summary.Personas[0]
	worst := summary.Personas[0]
	for _, p := range summary.Personas[1:] {
		if p.EngagementScore > best.EngagementScore {
			best = p
		}
		if p.EngagementScore < worst.EngagementScore {
			worst = p
		}
	}

	var sb strings.Builder

	fmt.Fprintf(
		&sb,
		"A campanha %q teve melhor desempenho com a persona %s (engajamento %.1f/100, open rate %.1f%%).",
		summary.CampaignName,
		best.Persona,
		best.EngagementScore,
		best.OpenRate*100,
	)

	if worst.Persona != best.Persona {
		fmt.Fprintf(
			&sb,
			" A persona %s ficou abaixo (engajamento %.1f/100) e merece ajustes de assunto e segmentação.",
			worst.Persona,
			worst.EngagementScore,
		)
	}

	fmt.Fprintf(&sb, " Em relação ao benchmark de mercado, o resultado geral foi %q.", worstOverall(summary.Personas))

	return sb.String(), nil
}

func worstOverall(personas []domain.PersonaSummary) domain.BenchmarkCategory {
	overall := domain.CategoryAbove
	for _, p := range personas {
		overall = overall.Worse(p.Overall)
	}
	return overall
}
