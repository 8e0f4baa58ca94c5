package domain

// ContactProperties são as propriedades de contato retornadas pela API do HubSpot
type ContactProperties struct {
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Company   string `json:"company"`
	Persona   string `json:"persona"`
}

type ContactResult struct {
	ID         string            `json:"id"`
	Properties ContactProperties `json:"properties"`
}

type Paging struct {
	Next struct {
		After string `json:"after"`
	} `json:"next"`
}

type ContactsResponse struct {
	Results []ContactResult `json:"results"`
	Paging  *Paging         `json:"paging,omitempty"`
}
