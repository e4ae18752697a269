// internal/bootstrap/services.go
package bootstrap

import (
	"context"
	"time"

	"legal-marketplace/internal/advisor"
	"legal-marketplace/internal/cases"
	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/consultations"
	"legal-marketplace/internal/directory"
	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/notification"
	"legal-marketplace/internal/payment"
)

// Services is the domain layer shared by the worker manager and the API server.
type Services struct {
	Directory     directory.Lister
	Engine        *matching.Engine
	Advisor       *advisor.Advisor
	Consultations *consultations.Service
	// ConsultationStore backs Consultations; the worker manager builds its
	// own service over it because notifications there are a separate task.
	ConsultationStore consultations.Repository
	Cases             *cases.Manager
	Payments          payment.Gateway
	Notifier          *notification.Notifier

	generator *advisor.GeminiGenerator
}

// BuildServices wires the domain services over whatever backends Connect
// produced, falling back to in-memory stores for the ones that are missing.
func BuildServices(ctx context.Context, cfg *config.Config, infra *Infra, log logger.Logger) (*Services, error) {
	backends := directory.Backends{SearchIndex: cfg.Database.Elasticsearch.LawyerIndex}
	if infra.Postgres != nil {
		backends.DB = infra.Postgres.DB
	}
	if infra.Redis != nil {
		backends.Redis = infra.Redis.Client
	}
	if infra.Search != nil {
		backends.Search = infra.Search.Client
	}

	dir, err := directory.New(cfg.Matching, backends, log)
	if err != nil {
		return nil, err
	}

	payments, err := payment.New(cfg.Payment)
	if err != nil {
		return nil, err
	}

	svc := &Services{
		Directory: dir,
		Engine:    matching.NewEngine(matching.Options{TopK: cfg.Matching.TopK}),
		Payments:  payments,
	}

	// A typed nil must not reach the notifier's interfaces.
	var sesSvc notification.SESService
	var snsSvc notification.SNSService
	if infra.SES != nil {
		sesSvc = infra.SES
	}
	if infra.SNS != nil {
		snsSvc = infra.SNS
	}
	svc.Notifier = notification.NewNotifier(cfg.Notifications, sesSvc, snsSvc, log)

	var generator advisor.Generator
	if cfg.APIs.Gemini.APIKey != "" {
		gemini, err := advisor.NewGeminiGeneratorFromConfig(ctx, cfg)
		if err != nil {
			log.Warn("Gemini unavailable, advice will use fallback responses", map[string]interface{}{"error": err})
		} else {
			svc.generator = gemini
			generator = gemini
		}
	}

	var history advisor.HistoryStore
	if infra.ChatRedis != nil {
		history = advisor.NewRedisHistoryStore(infra.ChatRedis, time.Duration(cfg.APIs.ChatHistory.TTL)*time.Second, cfg.APIs.ChatHistory.MaxTurns)
	} else {
		history = advisor.NewMemoryHistoryStore(cfg.APIs.ChatHistory.MaxTurns)
	}
	svc.Advisor = advisor.NewAdvisor(generator, advisor.NewKnowledgeBase(), svc.Engine, dir, history,
		advisor.Options{Timeout: config.GetDuration(cfg.APIs.Gemini.Timeout)}, log)

	var consultationRepo consultations.Repository = consultations.NewMemoryRepository()
	if infra.Postgres != nil {
		consultationRepo = consultations.NewPostgresRepository(infra.Postgres.DB)
	}
	svc.ConsultationStore = consultationRepo
	svc.Consultations = consultations.NewService(consultationRepo, dir, svc.Notifier, log)

	var caseRepo cases.Repository = cases.NewMemoryRepository()
	if infra.Mongo != nil {
		caseRepo = cases.NewMongoRepository(infra.Mongo.Database.Collection(cfg.Database.Mongo.CasesCollection))
	}
	svc.Cases = cases.NewManager(caseRepo, log)

	return svc, nil
}

// Close releases the model client.
func (s *Services) Close() {
	if s.generator != nil {
		_ = s.generator.Close()
	}
}
