package service

import (
	"go.uber.org/zap"

	"github.com/chlyn/COSC369-Final-Project/config"
	"github.com/chlyn/COSC369-Final-Project/internal/repository"
	"github.com/chlyn/COSC369-Final-Project/pkg/cache"
	"github.com/chlyn/COSC369-Final-Project/pkg/jwt"
	"github.com/chlyn/COSC369-Final-Project/pkg/llm"
)

// Service groups every business service.
type Service struct {
	Auth         AuthService
	User         UserService
	Catalog      CatalogService
	Schedule     ScheduleService
	Chat         ChatService
	Conversation ConversationService
	Export       ExportService
}

// Deps are the infrastructure pieces the services share. Blacklist may be
// nil when redis is not configured.
type Deps struct {
	Config    *config.Config
	Repo      *repository.Repository
	JWT       *jwt.Manager
	Blacklist TokenBlacklist
	Cache     cache.Store
	LLM       llm.Provider
	Logger    *zap.Logger
}

// NewService wires the services together.
func NewService(d Deps) *Service {
	catalog := NewCatalogService(d.Repo, d.Cache, d.Config.Catalog.CacheTTL, d.Logger)
	schedule := NewScheduleService(&d.Config.Schedule, d.Repo, catalog, d.Logger)

	return &Service{
		Auth:         NewAuthService(d.Config, d.Repo, d.JWT, d.Blacklist, d.Logger),
		User:         NewUserService(d.Repo, d.Logger),
		Catalog:      catalog,
		Schedule:     schedule,
		Chat:         NewChatService(&d.Config.Chat, d.Repo, catalog, schedule, d.LLM, d.Logger),
		Conversation: NewConversationService(d.Repo, d.Logger),
		Export:       NewExportService(&d.Config.Schedule, schedule, d.Logger),
	}
}
