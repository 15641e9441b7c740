package sqs

import (
	"encoding/json"

	"chat-service/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awssqs "github.com/aws/aws-sdk-go/service/sqs"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

const MaxEventBodySize = 262144

const EventTypeMessageCreated = "message-created"

// EventPublisher pushes domain events to the configured SQS queue. Delivery
// is best-effort: callers log failures and keep serving the request.
type EventPublisher struct {
	session  *session.Session
	sqs      *awssqs.SQS
	queueUrl string
	log      *zap.Logger
}

type EventPublisherInterface interface {
	PublishMessageCreated(message model.Message) (messageId *string, err error)
}

func NewEventPublisher(queueUrl string, logger *zap.Logger) (publisher *EventPublisher) {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable}))
	sqsBuff := awssqs.New(sess)
	return &EventPublisher{
		session:  sess,
		sqs:      sqsBuff,
		queueUrl: queueUrl,
		log:      logger,
	}
}

func (p *EventPublisher) PublishMessageCreated(message model.Message) (messageId *string, err error) {
	body, err := json.Marshal(message)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "marshal message event")
	}
	if err := validateEventBody(string(body)); err != nil {
		p.log.Error("Event body too long", zap.String("queueUrl", p.queueUrl), zap.String("message_id", message.Id))
		return nil, err
	}
	input := awssqs.SendMessageInput{
		MessageBody: aws.String(string(body)),
		QueueUrl:    aws.String(p.queueUrl),
		MessageAttributes: map[string]*awssqs.MessageAttributeValue{
			"event-type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EventTypeMessageCreated),
			},
			"addressee": {
				DataType:    aws.String("String"),
				StringValue: aws.String(message.RecipientId),
			},
		},
	}
	result, err := p.sqs.SendMessage(&input)
	if err != nil {
		p.log.Error("Error while publishing event", zap.String("queueUrl", p.queueUrl), zap.String("message_id", message.Id), zap.Any("error", err))
		return nil, pkgerrors.Wrap(err, "publish message event")
	}
	return result.MessageId, nil
}
