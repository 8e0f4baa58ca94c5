package domain

import "time"

// ContentItem representa o conteúdo de blog gerado para um tópico.
// Criado uma única vez pelo colaborador de geração de conteúdo; imutável depois disso.
type ContentItem struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Newsletter é a variação de um ContentItem personalizada para uma persona
type Newsletter struct {
	ID          string    `json:"id"`
	ContentID   string    `json:"content_id"`
	Persona     Persona   `json:"persona"`
	SubjectLine string    `json:"subject_line"`
	Body        string    `json:"body"`
	WordCount   int       `json:"word_count"`
	CreatedAt   time.Time `json:"created_at"`
}
