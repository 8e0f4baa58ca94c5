package domain

import "time"

// CampaignStatus representa o ciclo de vida de uma campanha
type CampaignStatus string

const (
	CampaignStatusDraft    CampaignStatus = "draft"
	CampaignStatusSent     CampaignStatus = "sent"
	CampaignStatusAnalyzed CampaignStatus = "analyzed"
)

// Valid informa se o status é um dos reconhecidos pelo ciclo de vida
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusSent, CampaignStatusAnalyzed:
		return true
	}
	return false
}

// Campaign representa um evento de distribuição de um ContentItem.
// Transições válidas: draft → sent → analyzed. O status "analyzed" só é
// atingido depois que existe pelo menos um PerformanceSnapshot.
type Campaign struct {
	ID                  string         `json:"id"`
	ContentID           string         `json:"content_id"`
	Name                string         `json:"name"`
	SendDate            *time.Time     `json:"send_date,omitempty"`
	Status              CampaignStatus `json:"status"`
	ExternalCampaignRef *string        `json:"external_campaign_ref,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
}

// Contact representa um destinatário segmentado por persona
type Contact struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Persona            Persona   `json:"persona"`
	Company            *string   `json:"company,omitempty"`
	ExternalContactRef *string   `json:"external_contact_ref,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
