package mailingservices

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/greencycle/wastetrack/config"
)

// Mailer sends transactional mail. Only password-reset mail is needed today.
type Mailer interface {
	SendResetPassword(userEmail, link string) (string, error)
}

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func NewMailgun(conf *config.Config) *Mailgun {
	return &Mailgun{
		Client: mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey),
		From:   conf.MgEmailFrom,
	}
}

func (m *Mailgun) SendResetPassword(userEmail, link string) (string, error) {
	subject := "Reset your WasteTrack password"
	body := fmt.Sprintf("Follow this link to choose a new password: %s\n\nIf you didn't ask for this, ignore this mail.", link)

	message := m.Client.NewMessage(m.From, subject, body, userEmail)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		return "", err
	}
	return id, nil
}
