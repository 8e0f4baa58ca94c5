package insighting

import "errors"

var (
	// ErrCampaignNotFound indica que a campanha referenciada não existe
	ErrCampaignNotFound = errors.New("campanha não encontrada")

	// ErrNoSnapshots indica que a campanha ainda não tem métricas registradas
	ErrNoSnapshots = errors.New("campanha sem snapshots de desempenho")
)
