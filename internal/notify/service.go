// Package notify composes the WhatsApp notifications the app sends to
// clients: payment links, project updates, schedule reminders and document
// deliveries. Messages are fire-and-forget.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/Rhymond/go-money"

	"github.com/mfcruz/gestor/internal/evolution"
)

// Messenger is the slice of the messaging client the service needs.
type Messenger interface {
	SendText(ctx context.Context, number, text string) (*evolution.Message, error)
	SendDocument(ctx context.Context, number, documentURL, fileName string) (*evolution.Message, error)
}

type Service struct {
	messenger Messenger
}

func NewService(messenger Messenger) *Service {
	return &Service{messenger: messenger}
}

// PaymentLink notifies a client that a boleto is ready to pay.
func (s *Service) PaymentLink(ctx context.Context, number, link string, amount int64, description string) error {
	value := money.New(amount, money.BRL).Display()

	text := fmt.Sprintf(
		"Olá! Segue o boleto para pagamento do serviço:\n\n%s\nValor: %s\n\nAcesse: %s\n\nObrigado!",
		description, value, link,
	)

	_, err := s.messenger.SendText(ctx, number, text)

	return err
}

// ProjectUpdate tells a client their project changed status.
func (s *Service) ProjectUpdate(ctx context.Context, number, projectName, status, details string) error {
	text := fmt.Sprintf("Atualização do Projeto: %s\nStatus: %s\n\n%s", projectName, status, details)

	_, err := s.messenger.SendText(ctx, number, text)

	return err
}

// ScheduleReminder reminds a client of an upcoming visit or meeting.
func (s *Service) ScheduleReminder(ctx context.Context, number, title string, when time.Time, details string) error {
	text := fmt.Sprintf(
		"Lembrete: %s\nData/Hora: %s\n\n%s",
		title, when.Format("02/01/2006 15:04"), details,
	)

	_, err := s.messenger.SendText(ctx, number, text)

	return err
}

// DocumentAvailable announces a document and delivers it as an attachment.
func (s *Service) DocumentAvailable(ctx context.Context, number, name, link string) error {
	text := fmt.Sprintf("Documento disponível: %s\n\nClique no link abaixo para acessar:\n%s", name, link)

	if _, err := s.messenger.SendText(ctx, number, text); err != nil {
		return err
	}

	_, err := s.messenger.SendDocument(ctx, number, link, name)

	return err
}
