package service

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/ai"
)

const (
	StatusConnected = "connected"
	StatusError     = "error"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type StatusService struct {
	db      Pinger
	manager *ai.Manager
}

func NewStatusService(db Pinger, manager *ai.Manager) *StatusService {
	return &StatusService{db: db, manager: manager}
}

type DatabaseStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type VisionStatus struct {
	Status   string `json:"status"`
	Model    string `json:"model,omitempty"`
	Response string `json:"response,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (s *StatusService) Database(ctx context.Context) DatabaseStatus {
	if err := s.db.PingContext(ctx); err != nil {
		logutil.GetLogger(ctx).Error("database ping failed", zap.Error(err))
		return DatabaseStatus{Status: StatusError, Message: err.Error()}
	}
	return DatabaseStatus{Status: StatusConnected}
}

func (s *StatusService) Vision(ctx context.Context) VisionStatus {
	reply, err := s.manager.PingVision(ctx)
	if err != nil {
		logutil.GetLogger(ctx).Error("vision ping failed", zap.Error(err))
		return VisionStatus{Status: StatusError, Model: s.manager.VisionModel(), Message: err.Error()}
	}
	return VisionStatus{
		Status:   StatusConnected,
		Model:    s.manager.VisionModel(),
		Response: strings.TrimSpace(reply),
	}
}
