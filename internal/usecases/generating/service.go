package generating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openaidomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/openai/domain"
	"github.com/novamind/content-pipeline-api/infrastructure/integrator/openai/openaiclient"
	"github.com/novamind/content-pipeline-api/infrastructure/repository"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/sirupsen/logrus"
)

var (
	// ErrContentNotFound indica que o conteúdo referenciado não existe
	ErrContentNotFound = errors.New("conteúdo não encontrado")

	// ErrEmptyTopic indica tópico vazio na criação de conteúdo
	ErrEmptyTopic = errors.New("tópico não pode ser vazio")
)

type personaProfile struct {
	name  string
	focus string
	tone  string
}

// Perfis usados para personalizar assunto e corpo das newsletters
var personaProfiles = map[domain.Persona]personaProfile{
	domain.PersonaFounders: {
		name:  "Founders / Decision-Makers",
		focus: "ROI, crescimento e eficiência",
		tone:  "estratégico e orientado a resultados",
	},
	domain.PersonaCreatives: {
		name:  "Creative Professionals",
		focus: "inspiração e ferramentas que economizam tempo",
		tone:  "inspirador e inovador",
	},
	domain.PersonaOperations: {
		name:  "Operations Managers",
		focus: "fluxos de trabalho, integrações e confiabilidade",
		tone:  "prático e detalhista",
	},
}

type Generator interface {
	CreateContent(ctx context.Context, topic string) (*domain.ContentItem, error)
	GetContent(contentID string) (*domain.ContentItem, error)
	ListContent() ([]*domain.ContentItem, error)
	GenerateNewsletters(ctx context.Context, contentID string) ([]*domain.Newsletter, error)
	ListNewsletters(contentID string) ([]*domain.Newsletter, error)
}

type Service struct {
	cfg                  *config.Config
	contentRepository    repository.ContentRepository
	newsletterRepository repository.NewsletterRepository
	client               openaiclient.Client
}

// NewService cria o gerador de conteúdo. Em modo mock o client pode ser nil e
// os textos saem de templates determinísticos.
func NewService(
	cfg *config.Config,
	contentRepo repository.ContentRepository,
	newsletterRepo repository.NewsletterRepository,
	client openaiclient.Client,
) Generator {
	return &Service{
		cfg:                  cfg,
		contentRepository:    contentRepo,
		newsletterRepository: newsletterRepo,
		client:               client,
	}
}

// CreateContent gera o post de blog para um tópico e o persiste. O conteúdo é
// imutável depois de criado.
func (s *Service) CreateContent(ctx context.Context, topic string) (*domain.ContentItem, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	title, body, err := s.generateBlogPost(ctx, topic)
	if err != nil {
		return nil, err
	}

	content := &domain.ContentItem{
		Topic:     topic,
		Title:     title,
		Body:      body,
		WordCount: len(strings.Fields(body)),
	}

	saved, err := s.contentRepository.CreateContent(content)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"content_id": saved.ID,
		"topic":      topic,
		"word_count": saved.WordCount,
	}).Info("content: blog post created")

	return saved, nil
}

// GetContent retorna o conteúdo pelo identificador
func (s *Service) GetContent(contentID string) (*domain.ContentItem, error) {
	content, err := s.contentRepository.GetContentByID(contentID)
	if err != nil {
		return nil, err
	}

	if content == nil {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, contentID)
	}

	return content, nil
}

// ListContent retorna todos os conteúdos publicados
func (s *Service) ListContent() ([]*domain.ContentItem, error) {
	return s.contentRepository.ListContent()
}

// ListNewsletters retorna as variações de newsletter de um conteúdo
func (s *Service) ListNewsletters(contentID string) ([]*domain.Newsletter, error) {
	content, err := s.contentRepository.GetContentByID(contentID)
	if err != nil {
		return nil, err
	}

	if content == nil {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, contentID)
	}

	return s.newsletterRepository.ListNewslettersByContentID(contentID)
}

// GenerateNewsletters cria a variação de newsletter de cada persona para um
// conteúdo. Personas que já possuem variação são puladas.
func (s *Service) GenerateNewsletters(ctx context.Context, contentID string) ([]*domain.Newsletter, error) {
	content, err := s.contentRepository.GetContentByID(contentID)
	if err != nil {
		return nil, err
	}

	if content == nil {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, contentID)
	}

	newsletters := make([]*domain.Newsletter, 0, len(domain.Personas))
	for _, persona := range domain.Personas {
		existing, err := s.newsletterRepository.GetNewsletterByContentAndPersona(contentID, persona)
		if err != nil {
			return nil, err
		}

		if existing != nil {
			newsletters = append(newsletters, existing)
			continue
		}

		subject, body, err := s.generateNewsletter(ctx, content, persona)
		if err != nil {
			return nil, err
		}

		newsletter := &domain.Newsletter{
			ContentID:   contentID,
			Persona:     persona,
			SubjectLine: subject,
			Body:        body,
			WordCount:   len(strings.Fields(body)),
		}

		saved, err := s.newsletterRepository.CreateNewsletter(newsletter)
		if err != nil {
			return nil, err
		}

		newsletters = append(newsletters, saved)
	}

	return newsletters, nil
}

func (s *Service) generateBlogPost(ctx context.Context, topic string) (string, string, error) {
	if s.cfg.OpenAI.MockMode || s.client == nil {
		return templateBlogPost(topic)
	}

	request := &openaidomain.ChatCompletionRequest{
		Model: s.cfg.OpenAI.Model,
		Messages: []openaidomain.ChatMessage{
			{
				Role:    "system",
				Content: "Você escreve conteúdo para a NovaMind, uma startup de automação com IA para agências criativas. Responda em JSON com as chaves \"title\" e \"content\".",
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Escreva um post de blog de 400 a 600 palavras sobre: %s. Tom profissional e acessível, com insights acionáveis.", topic),
			},
		},
		Temperature: 0.7,
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		logrus.WithError(err).Warn("content: text generation failed, using template")
		return templateBlogPost(topic)
	}

	var parsed struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil || parsed.Title == "" {
		logrus.WithError(err).Warn("content: malformed generation response, using template")
		return templateBlogPost(topic)
	}

	return parsed.Title, parsed.Content, nil
}

func (s *Service) generateNewsletter(ctx context.Context, content *domain.ContentItem, persona domain.Persona) (string, string, error) {
	profile := personaProfiles[persona]

	if s.cfg.OpenAI.MockMode || s.client == nil {
		return templateNewsletter(content, persona)
	}

	request := &openaidomain.ChatCompletionRequest{
		Model: s.cfg.OpenAI.Model,
		Messages: []openaidomain.ChatMessage{
			{
				Role:    "system",
				Content: fmt.Sprintf("Você adapta conteúdo para o público %q (foco: %s). Tom %s. Responda em JSON com as chaves \"subject_line\" e \"body\".", profile.name, profile.focus, profile.tone),
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Adapte este post em uma newsletter de até 250 palavras.\n\nTítulo: %s\n\n%s", content.Title, content.Body),
			},
		},
		Temperature: 0.7,
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		logrus.WithError(err).Warn("content: newsletter generation failed, using template")
		return templateNewsletter(content, persona)
	}

	var parsed struct {
		SubjectLine string `json:"subject_line"`
		Body        string `json:"body"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil || parsed.SubjectLine == "" {
		logrus.WithError(err).Warn("content: malformed newsletter response, using template")
		return templateNewsletter(content, persona)
	}

	return parsed.SubjectLine, parsed.Body, nil
}

func templateBlogPost(topic string) (string, string, error) {
	title := fmt.Sprintf("Como %s pode transformar o dia a dia da sua agência", topic)
	body := fmt.Sprintf(
		"%s é um dos temas mais discutidos entre agências criativas que buscam escalar sem perder qualidade. "+
			"Neste post, a NovaMind explora o que já funciona na prática, os erros mais comuns na adoção e um roteiro simples para começar. "+
			"A automação não substitui o trabalho criativo: ela libera tempo para ele. "+
			"Comece mapeando as tarefas repetitivas da sua operação, escolha uma única frente para automatizar e meça o resultado por duas semanas antes de expandir.",
		topic,
	)

	return title, body, nil
}

func templateNewsletter(content *domain.ContentItem, persona domain.Persona) (string, string, error) {
	profile := personaProfiles[persona]

	subject := fmt.Sprintf("[%s] %s", profile.name, content.Title)
	body := fmt.Sprintf(
		"Olá!\n\nPublicamos um novo conteúdo pensado em %s: %q.\n\n%s\n\nLeia o post completo no blog da NovaMind.",
		profile.focus,
		content.Title,
		firstSentences(content.Body, 2),
	)

	return subject, body, nil
}

// firstSentences devolve as n primeiras sentenças do texto
func firstSentences(text string, n int) string {
	parts := strings.SplitAfterN(text, ". ", n+1)
	if len(parts) > n {
		parts = parts[:n]
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
