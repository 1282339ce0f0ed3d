package domain

import (
	"errors"
	"time"
)

var ErrNegativeLookback = errors.New("lookback days must be >= 0")

// DateWindow é o intervalo inclusivo de dias de calendário de uma execução
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow monta [today - lookbackDays, today] a partir da data de calendário de today,
// no fuso do próprio today. O horário é ignorado.
func NewDateWindow(today time.Time, lookbackDays int) (DateWindow, error) {
	if lookbackDays < 0 {
		return DateWindow{}, ErrNegativeLookback
	}

	y, m, d := today.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return DateWindow{
		Start: end.AddDate(0, 0, -lookbackDays),
		End:   end,
	}, nil
}

func (w DateWindow) Since() string {
	return w.Start.Format(time.DateOnly)
}

func (w DateWindow) Until() string {
	return w.End.Format(time.DateOnly)
}

// Days retorna a quantidade de dias do intervalo, contando as duas pontas
func (w DateWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

func (w DateWindow) Contains(date string) bool {
	return date >= w.Since() && date <= w.Until()
}
