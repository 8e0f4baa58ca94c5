package domain

import (
	"time"

	"github.com/novamind/content-pipeline-api/pkg/utils"
)

// PerformanceSnapshot é uma medição imutável de engajamento para um par
// (campanha, persona). Correções geram novos snapshots; o histórico é
// append-only e ordenado por recorded_at.
type PerformanceSnapshot struct {
	ID              string    `json:"id"`
	CampaignID      string    `json:"campaign_id"`
	Persona         Persona   `json:"persona"`
	ContactsSent    int       `json:"contacts_sent"`
	Opens           int       `json:"opens"`
	Clicks          int       `json:"clicks"`
	Unsubscribes    int       `json:"unsubscribes"`
	OpenRate        float64   `json:"open_rate"`
	ClickRate       float64   `json:"click_rate"`
	UnsubscribeRate float64   `json:"unsubscribe_rate"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// EngagementScore calcula o score composto de engajamento (0-100).
// Pesos: opens 30%, clicks 50%, unsubscribes -20%.
func (s *PerformanceSnapshot) EngagementScore() float64 {
	if s.ContactsSent == 0 {
		return 0
	}

	openScore := (float64(s.Opens) / float64(s.ContactsSent)) * 30
	clickScore := (float64(s.Clicks) / float64(s.ContactsSent)) * 50
	unsubPenalty := (float64(s.Unsubscribes) / float64(s.ContactsSent)) * 20

	score := (openScore + clickScore - unsubPenalty) * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return utils.RoundWithTwoDecimalPlace(score)
}

// DeriveRates recalcula as taxas a partir das contagens brutas.
// Com contacts_sent igual a zero todas as taxas são zero.
func (s *PerformanceSnapshot) DeriveRates() {
	if s.ContactsSent <= 0 {
		s.OpenRate, s.ClickRate, s.UnsubscribeRate = 0, 0, 0
		return
	}

	sent := float64(s.ContactsSent)
	s.OpenRate = utils.RoundWithFourDecimalPlace(float64(s.Opens) / sent)
	s.ClickRate = utils.RoundWithFourDecimalPlace(float64(s.Clicks) / sent)
	s.UnsubscribeRate = utils.RoundWithFourDecimalPlace(float64(s.Unsubscribes) / sent)
}
