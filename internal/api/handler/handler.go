package handler

import "github.com/chlyn/COSC369-Final-Project/internal/service"

// Handler aggregates every module's HTTP handlers.
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Catalog      *CatalogHandler
	Schedule     *ScheduleHandler
	Chat         *ChatHandler
	Conversation *ConversationHandler
	Export       *ExportHandler
}

// NewHandler wires handlers to their services.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Catalog:      NewCatalogHandler(svc.Catalog),
		Schedule:     NewScheduleHandler(svc.Schedule),
		Chat:         NewChatHandler(svc.Chat),
		Conversation: NewConversationHandler(svc.Conversation),
		Export:       NewExportHandler(svc.Export),
	}
}
