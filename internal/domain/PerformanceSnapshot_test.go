package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceSnapshot_EngagementScore(t *testing.T) {
	tests := []struct {
		name     string
		snapshot PerformanceSnapshot
		expected float64
	}{
		{
			name: "Engajamento alto satura no teto de 100",
			snapshot: PerformanceSnapshot{
				ContactsSent: 100,
				Opens:        25,
				Clicks:       9,
				Unsubscribes: 0,
			},
			expected: 100,
		},
		{
			name: "Sem contatos enviados o score é zero",
			snapshot: PerformanceSnapshot{
				ContactsSent: 0,
				Opens:        10,
				Clicks:       5,
			},
			expected: 0,
		},
		{
			name: "Engajamento baixo fica proporcional aos pesos",
			snapshot: PerformanceSnapshot{
				ContactsSent: 1000,
				Opens:        10,
				Clicks:       2,
				Unsubscribes: 5,
			},
			// (0.01*30 + 0.002*50 - 0.005*20) * 100 = 30
			expected: 30,
		},
		{
			name: "Descadastro em massa não produz score negativo",
			snapshot: PerformanceSnapshot{
				ContactsSent: 100,
				Opens:        0,
				Clicks:       0,
				Unsubscribes: 100,
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.snapshot.EngagementScore())
		})
	}
}

func TestPerformanceSnapshot_DeriveRates(t *testing.T) {
	snapshot := PerformanceSnapshot{
		ContactsSent: 200,
		Opens:        50,
		Clicks:       17,
		Unsubscribes: 1,
	}

	snapshot.DeriveRates()

	assert.Equal(t, 0.25, snapshot.OpenRate)
	assert.Equal(t, 0.085, snapshot.ClickRate)
	assert.Equal(t, 0.005, snapshot.UnsubscribeRate)
}

func TestPerformanceSnapshot_DeriveRatesWithoutContacts(t *testing.T) {
	snapshot := PerformanceSnapshot{
		ContactsSent: 0,
		Opens:        50,
		Clicks:       17,
		Unsubscribes: 1,
	}

	snapshot.DeriveRates()

	assert.Zero(t, snapshot.OpenRate)
	assert.Zero(t, snapshot.ClickRate)
	assert.Zero(t, snapshot.UnsubscribeRate)
}

func TestCampaignStatus_Valid(t *testing.T) {
	assert.True(t, CampaignStatusDraft.Valid())
	assert.True(t, CampaignStatusSent.Valid())
	assert.True(t, CampaignStatusAnalyzed.Valid())
	assert.False(t, CampaignStatus("archived").Valid())
}

func TestParsePersona(t *testing.T) {
	persona, err := ParsePersona("founders")
	assert.NoError(t, err)
	assert.Equal(t, PersonaFounders, persona)

	_, err = ParsePersona("investors")
	assert.Error(t, err)
}

func TestBenchmarkCategory_Worse(t *testing.T) {
	assert.Equal(t, CategoryBelow, CategoryAbove.Worse(CategoryBelow))
	assert.Equal(t, CategoryAt, CategoryAbove.Worse(CategoryAt))
	assert.Equal(t, CategoryAbove, CategoryAbove.Worse(CategoryAbove))
	assert.Equal(t, CategoryBelow, CategoryAt.Worse(CategoryBelow))
}
