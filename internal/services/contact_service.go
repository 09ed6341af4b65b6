package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"wanderwise/internal/models/db_models"
	"wanderwise/internal/models/request_models"
	"wanderwise/internal/models/response_models"
	"wanderwise/internal/repositories"
	"wanderwise/pkg/utils"
)

type ContactServiceInterface interface {
	Submit(ctx context.Context, request request_models.ContactRequest) (*response_models.ContactMessageResponse, error)
	List(ctx context.Context, page, pageSize int) ([]response_models.ContactMessageResponse, error)
}

type ContactService struct {
	contactRepo repositories.ContactRepositoryInterface
	mail        IMailService
	inbox       string
	logger      *zap.Logger
}

// NewContactService forwards every message to inbox when it is set.
func NewContactService(
	contactRepo repositories.ContactRepositoryInterface,
	mail IMailService,
	inbox string,
	logger *zap.Logger,
) ContactServiceInterface {
	return &ContactService{contactRepo: contactRepo, mail: mail, inbox: inbox, logger: logger.Named("contact")}
}

func (s *ContactService) Submit(ctx context.Context, request request_models.ContactRequest) (*response_models.ContactMessageResponse, error) {
	msg := &db_models.ContactMessage{
		Name:    strings.TrimSpace(request.Name),
		Email:   normalizeEmail(request.Email),
		Message: strings.TrimSpace(request.Message),
	}
	if msg.Name == "" || msg.Message == "" {
		return nil, utils.ErrInvalidContactMessage
	}

	if err := s.contactRepo.CreateMessage(ctx, msg); err != nil {
		s.logger.Error("store contact message", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	if s.inbox != "" {
		if err := s.mail.SendContactNotice(ctx, s.inbox, msg.Name, msg.Email, msg.Message); err != nil {
			s.logger.Warn("contact notice not delivered", zap.Error(err))
		}
	}

	resp := toContactResponse(*msg)
	return &resp, nil
}

func (s *ContactService) List(ctx context.Context, page, pageSize int) ([]response_models.ContactMessageResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	messages, err := s.contactRepo.ListMessages(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ContactMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toContactResponse(m))
	}
	return out, nil
}

func toContactResponse(m db_models.ContactMessage) response_models.ContactMessageResponse {
	return response_models.ContactMessageResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt.Unix(),
	}
}
