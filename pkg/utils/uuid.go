package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// GenerateID cria um identificador curto alfanumérico para uso como chave
// substituta nas tabelas
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
