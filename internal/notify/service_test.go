package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcruz/gestor/internal/evolution"
	"github.com/mfcruz/gestor/internal/notify"
)

type fakeMessenger struct {
	texts     []string
	documents []string
	err       error
}

func (f *fakeMessenger) SendText(_ context.Context, _, text string) (*evolution.Message, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.texts = append(f.texts, text)

	return &evolution.Message{}, nil
}

func (f *fakeMessenger) SendDocument(_ context.Context, _, url, _ string) (*evolution.Message, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.documents = append(f.documents, url)

	return &evolution.Message{}, nil
}

func TestService_PaymentLink(t *testing.T) {
	m := &fakeMessenger{}
	svc := notify.NewService(m)

	err := svc.PaymentLink(context.Background(), "5511999999999", "https://pay.example/b1", 125050, "Projeto elétrico")
	require.NoError(t, err)
	require.Len(t, m.texts, 1)

	assert.Contains(t, m.texts[0], "Projeto elétrico")
	assert.Contains(t, m.texts[0], "https://pay.example/b1")
	assert.Contains(t, m.texts[0], money.New(125050, money.BRL).Display())
}

func TestService_ScheduleReminder(t *testing.T) {
	m := &fakeMessenger{}
	svc := notify.NewService(m)

	when := time.Date(2025, 5, 12, 14, 30, 0, 0, time.UTC)

	err := svc.ScheduleReminder(context.Background(), "5511999999999", "Visita técnica", when, "Levar projeto impresso")
	require.NoError(t, err)
	require.Len(t, m.texts, 1)

	assert.Contains(t, m.texts[0], "Visita técnica")
	assert.Contains(t, m.texts[0], "12/05/2025 14:30")
}

func TestService_DocumentAvailable(t *testing.T) {
	m := &fakeMessenger{}
	svc := notify.NewService(m)

	err := svc.DocumentAvailable(context.Background(), "5511999999999", "ART.pdf", "https://files.example/art.pdf")
	require.NoError(t, err)

	require.Len(t, m.texts, 1)
	assert.Contains(t, m.texts[0], "ART.pdf")
	require.Len(t, m.documents, 1)
	assert.Equal(t, "https://files.example/art.pdf", m.documents[0])
}

func TestService_DeliveryFailurePropagates(t *testing.T) {
	m := &fakeMessenger{err: errors.New("instance disconnected")}
	svc := notify.NewService(m)

	err := svc.ProjectUpdate(context.Background(), "5511999999999", "Reforma", "in-progress", "Alvenaria concluída")
	assert.Error(t, err)
}
