package simulating

import "errors"

var (
	// ErrInvalidPersona indica persona fora do conjunto enumerado
	ErrInvalidPersona = errors.New("persona inválida")

	// ErrInvalidInput indica entrada numérica inválida (ex.: contatos negativos)
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrCampaignNotFound indica que a campanha referenciada não existe
	ErrCampaignNotFound = errors.New("campanha não encontrada")

	// ErrInvalidTransition indica tentativa de analisar uma campanha que ainda
	// não saiu do rascunho
	ErrInvalidTransition = errors.New("transição de status inválida")
)
