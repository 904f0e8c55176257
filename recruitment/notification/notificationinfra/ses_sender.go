package notificationinfra

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/notification"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the part of *ses.Client the sender uses
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESSender emails the applicant a confirmation
type SESSender struct {
	client SESAPI
	source string
}

func NewSESSender(client SESAPI, source string) *SESSender {
	return &SESSender{client: client, source: source}
}

func (s *SESSender) Channel() notification.Channel { return notification.ChannelEmail }

func (s *SESSender) Send(ctx context.Context, event application.SubmittedEvent) error {
	if event.Email == "" {
		logx.Warnf("application %s has no email address, skipping confirmation", event.ApplicationID)
		return nil
	}

	subject, body := confirmationEmail(event)

	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{event.Email.String()},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(s.source),
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", event.Email, err)
	}
	return nil
}

func confirmationEmail(event application.SubmittedEvent) (subject, body string) {
	name := strings.TrimSpace(event.FullName.String())
	if name == "" {
		name = "there"
	}

	subject = fmt.Sprintf("Application received: %s", event.JobName)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "We received your application for %s on %s.\n", event.JobName, event.SubmittedAt.Format("02 January 2006"))
	b.WriteString("Our team will review your profile and get back to you.\n\n")
	fmt.Fprintf(&b, "Reference: %s\n", event.ApplicationID)
	return subject, b.String()
}
