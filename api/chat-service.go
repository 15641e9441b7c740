package api

import (
	"errors"
	"strconv"
	"time"

	"chat-service/common/apperr"
	"chat-service/common/sqs"
	"chat-service/database"
	"chat-service/factory"
	"chat-service/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultMessageListLimit = 50

type ChatService struct {
	F         factory.FactoryInterface
	zLog      *zap.Logger
	d         database.DatabaseInterface
	publisher sqs.EventPublisherInterface
}

func NewChatService(factory factory.FactoryInterface) *ChatService {
	return &ChatService{
		F:         factory,
		zLog:      factory.Logger(),
		d:         factory.Db(),
		publisher: factory.Publisher(),
	}
}

// bindJSON decodes and validates the request body. Tag failures keep their
// validator error so the error handler can map them; anything else (broken
// JSON, wrong content type) becomes a validation app error.
func bindJSON(c *gin.Context, target interface{}) bool {
	err := c.ShouldBindJSON(target)
	if err == nil {
		return true
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		_ = c.Error(err)
	} else {
		_ = c.Error(apperr.NewValidationError("invalid request body"))
	}
	c.Abort()
	return false
}

func (s *ChatService) GetHealth(c *gin.Context) {
	c.Status(200)
}

func (s *ChatService) PostUser(c *gin.Context) {
	var req model.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user := model.User{
		Id:    uuid.New().String(),
		Email: req.Email,
		Name:  req.Name,
	}
	if err := s.d.CreateUser(&user); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(201, user)
}

func (s *ChatService) GetUser(c *gin.Context) {
	user, err := s.d.GetUserByID(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(200, user)
}

func (s *ChatService) PostMessage(c *gin.Context) {
	sender, ok := s.callerId(c)
	if !ok {
		return
	}
	var req model.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	message := model.Message{
		Id:          uuid.New().String(),
		SenderId:    sender,
		RecipientId: req.RecipientId,
		Body:        req.Body,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.d.CreateMessage(&message); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	if s.publisher != nil {
		if _, err := s.publisher.PublishMessageCreated(message); err != nil {
			// delivery events are best-effort, the message is already stored
			s.zLog.Warn("Error while publishing message event", zap.String("message_id", message.Id), zap.Any("error", err))
		}
	}
	c.JSON(201, message)
}

func (s *ChatService) GetMessages(c *gin.Context) {
	caller, ok := s.callerId(c)
	if !ok {
		return
	}
	limit := defaultMessageListLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			_ = c.Error(apperr.NewValidationError("limit must be a positive integer"))
			c.Abort()
			return
		}
		limit = parsed
	}
	messages, err := s.d.ListMessagesFor(caller, limit)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(200, gin.H{"messages": messages})
}

// callerId resolves the authenticated user from the bearer token subject.
func (s *ChatService) callerId(c *gin.Context) (string, bool) {
	claims, err := s.F.Auth().ParseJWTPayloadGin(c)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return "", false
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		_ = c.Error(apperr.NewAuthenticationError("token has no subject"))
		c.Abort()
		return "", false
	}
	return sub, true
}
