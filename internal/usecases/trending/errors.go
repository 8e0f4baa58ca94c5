package trending

import "errors"

// ErrInsufficientData indica que a janela tem menos de duas amostras.
// Não é fatal para o pipeline: o chamador reporta direção "unknown".
var ErrInsufficientData = errors.New("amostras insuficientes para análise de tendência")
