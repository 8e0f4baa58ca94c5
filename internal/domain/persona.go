package domain

import "fmt"

// Persona representa um segmento fixo de audiência da NovaMind
type Persona string

const (
	PersonaFounders   Persona = "founders"
	PersonaCreatives  Persona = "creatives"
	PersonaOperations Persona = "operations"
)

// Personas lista todos os segmentos válidos, na ordem usada nos relatórios
var Personas = []Persona{PersonaFounders, PersonaCreatives, PersonaOperations}

// ParsePersona valida e converte uma string para Persona
func ParsePersona(value string) (Persona, error) {
	p := Persona(value)
	if !p.Valid() {
		return "", fmt.Errorf("persona inválida: %q", value)
	}
	return p, nil
}

// Valid verifica se a persona pertence ao conjunto enumerado
func (p Persona) Valid() bool {
	switch p {
	case PersonaFounders, PersonaCreatives, PersonaOperations:
		return true
	}
	return false
}

func (p Persona) String() string {
	return string(p)
}
