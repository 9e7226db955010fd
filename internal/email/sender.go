package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para avisos por correo al cerrar un periodo.
type Sender interface {
	SendMonthlyResultNotice(ctx context.Context, toEmail, displayName string, year, month, level int) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendMonthlyResultNotice(_ context.Context, _, _ string, _, _, _ int) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
