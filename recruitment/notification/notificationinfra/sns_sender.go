package notificationinfra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/notification"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the part of *sns.Client the sender uses
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSender publishes the event to the hiring team's topic
type SNSSender struct {
	client   SNSAPI
	topicARN string
}

func NewSNSSender(client SNSAPI, topicARN string) *SNSSender {
	return &SNSSender{client: client, topicARN: topicARN}
}

func (s *SNSSender) Channel() notification.Channel { return notification.ChannelAdmin }

func (s *SNSSender) Send(ctx context.Context, event application.SubmittedEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(fmt.Sprintf("New applicant for %s", event.JobName)),
		Message:  aws.String(string(message)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"event": {
				DataType:    aws.String("String"),
				StringValue: aws.String(notification.EventApplicationSubmitted),
			},
			"job_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.JobID.String()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish to %s: %w", s.topicARN, err)
	}
	return nil
}
