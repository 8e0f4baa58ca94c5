package generating

import (
	"context"
	"testing"

	"github.com/novamind/content-pipeline-api/infrastructure/repository/mocks"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// Os testes rodam em modo mock: sem client, os textos saem dos templates
func newTestService(t *testing.T) (*Service, *mocks.MockContentRepository, *mocks.MockNewsletterRepository) {
	ctrl := gomock.NewController(t)

	contentRepo := mocks.NewMockContentRepository(ctrl)
	newsletterRepo := mocks.NewMockNewsletterRepository(ctrl)

	service := &Service{
		cfg: &config.Config{
			OpenAI: config.OpenAI{MockMode: true},
		},
		contentRepository:    contentRepo,
		newsletterRepository: newsletterRepo,
	}

	return service, contentRepo, newsletterRepo
}

func TestService_CreateContentRejectsEmptyTopic(t *testing.T) {
	service, _, _ := newTestService(t)

	for _, topic := range []string{"", "   ", "\t\n"} {
		_, err := service.CreateContent(context.Background(), topic)
		assert.ErrorIs(t, err, ErrEmptyTopic)
	}
}

func TestService_CreateContentUsesTemplateInMockMode(t *testing.T) {
	service, contentRepo, _ := newTestService(t)

	contentRepo.EXPECT().
		CreateContent(gomock.Any()).
		DoAndReturn(func(content *domain.ContentItem) (*domain.ContentItem, error) {
			content.ID = "CNT001"
			return content, nil
		})

	content, err := service.CreateContent(context.Background(), "automação de briefings")

	assert.NoError(t, err)
	assert.Equal(t, "automação de briefings", content.Topic)
	assert.Contains(t, content.Title, "automação de briefings")
	assert.NotEmpty(t, content.Body)
	assert.Greater(t, content.WordCount, 0)
}

func TestService_GenerateNewslettersCreatesOneVariationPerPersona(t *testing.T) {
	service, contentRepo, newsletterRepo := newTestService(t)

	content := &domain.ContentItem{
		ID:    "CNT001",
		Topic: "automação",
		Title: "Automação para agências",
		Body:  "A automação libera tempo criativo. Times menores entregam mais. O resto é rotina.",
	}

	contentRepo.EXPECT().GetContentByID("CNT001").Return(content, nil)

	for _, persona := range domain.Personas {
		newsletterRepo.EXPECT().
			GetNewsletterByContentAndPersona("CNT001", persona).
			Return(nil, nil)
	}

	newsletterRepo.EXPECT().
		CreateNewsletter(gomock.Any()).
		DoAndReturn(func(newsletter *domain.Newsletter) (*domain.Newsletter, error) {
			return newsletter, nil
		}).
		Times(len(domain.Personas))

	newsletters, err := service.GenerateNewsletters(context.Background(), "CNT001")

	assert.NoError(t, err)
	assert.Len(t, newsletters, len(domain.Personas))

	for i, persona := range domain.Personas {
		assert.Equal(t, persona, newsletters[i].Persona)
		assert.Contains(t, newsletters[i].SubjectLine, content.Title)
		assert.NotEmpty(t, newsletters[i].Body)
	}
}

func TestService_GenerateNewslettersSkipsExistingVariations(t *testing.T) {
	service, contentRepo, newsletterRepo := newTestService(t)

	content := &domain.ContentItem{ID: "CNT001", Title: "Automação para agências", Body: "Corpo do post."}
	contentRepo.EXPECT().GetContentByID("CNT001").Return(content, nil)

	existing := &domain.Newsletter{ID: "NWS001", ContentID: "CNT001", Persona: domain.PersonaFounders}
	newsletterRepo.EXPECT().
		GetNewsletterByContentAndPersona("CNT001", domain.PersonaFounders).
		Return(existing, nil)

	for _, persona := range []domain.Persona{domain.PersonaCreatives, domain.PersonaOperations} {
		newsletterRepo.EXPECT().
			GetNewsletterByContentAndPersona("CNT001", persona).
			Return(nil, nil)

		newsletterRepo.EXPECT().
			CreateNewsletter(gomock.Any()).
			DoAndReturn(func(newsletter *domain.Newsletter) (*domain.Newsletter, error) {
				return newsletter, nil
			})
	}

	newsletters, err := service.GenerateNewsletters(context.Background(), "CNT001")

	assert.NoError(t, err)
	assert.Len(t, newsletters, len(domain.Personas))
	assert.Equal(t, existing, newsletters[0])
}

func TestService_GenerateNewslettersFailsForUnknownContent(t *testing.T) {
	service, contentRepo, _ := newTestService(t)

	contentRepo.EXPECT().GetContentByID("CNT404").Return(nil, nil)

	_, err := service.GenerateNewsletters(context.Background(), "CNT404")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestService_GetContentFailsForUnknownContent(t *testing.T) {
	service, contentRepo, _ := newTestService(t)

	contentRepo.EXPECT().GetContentByID("CNT404").Return(nil, nil)

	_, err := service.GetContent("CNT404")
	assert.ErrorIs(t, err, ErrContentNotFound)
}
