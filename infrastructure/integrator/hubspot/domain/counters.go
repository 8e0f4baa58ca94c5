package domain

// CampaignCounters são os contadores brutos de engajamento de uma campanha de
// e-mail, conforme reportados pelo CRM
type CampaignCounters struct {
	Sent         int `json:"sent"`
	Open         int `json:"open"`
	Click        int `json:"click"`
	Unsubscribed int `json:"unsubscribed"`
}

type CampaignResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Counters CampaignCounters `json:"counters"`
}
