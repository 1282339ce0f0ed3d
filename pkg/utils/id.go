package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 10
)

// GenerateID gera identificadores curtos para correlacionar ciclos do agendador nos logs
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
