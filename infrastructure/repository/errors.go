package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var ErrNotFound = errors.New("record not found")

// wrapDBError mantém o código do postgres na mensagem quando disponível
func wrapDBError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
