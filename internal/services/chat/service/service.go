// Package service implements the conversation loop controller
package service

import (
	"context"
	"fmt"
	"time"

	"assistant/internal/core/directive"
	"assistant/internal/core/scope"
	"assistant/internal/core/suggest"
	"assistant/internal/platform/logger"
	"assistant/internal/services/chat/domain"
)

// Config for the chat service
type Config struct {
	// MaxDataRequests caps data-gathering model calls per turn; defaults to 3 if <=0.
	// The loop always terminates within MaxDataRequests+1 invocations
	MaxDataRequests int

	// Sink persists extracted directives when the caller identifies itself.
	// Optional, nil disables the side-effect write
	Sink domain.DirectiveSinkPort
}

// Service implements domain.ConversationPort
type Service struct {
	Invoker domain.InvokerPort
	Cfg     Config

	log logger.Logger
	now func() time.Time
}

// New constructs a new chat service
func New(invoker domain.InvokerPort, cfg Config) *Service {
	if cfg.MaxDataRequests <= 0 {
		cfg.MaxDataRequests = 3
	}
	return &Service{
		Invoker: invoker,
		Cfg:     cfg,
		log:     *logger.Named("chat"),
		now:     time.Now,
	}
}

func toScopeRequest(req directive.DataRequest) scope.Request {
	out := scope.Request{
		Category:  req.Category,
		TimeRange: req.TimeRange,
		Filters:   req.Filters,
	}
	if req.CustomRange != nil {
		out.CustomRange = &scope.CustomRange{
			StartDate: req.CustomRange.StartDate,
			EndDate:   req.CustomRange.EndDate,
		}
	}
	return out
}

// Chat implements domain.ConversationPort.
// Model failures never fail the turn, they become the user-visible answer
func (s *Service) Chat(ctx context.Context, in domain.ChatInput) (domain.ChatResult, error) {
	history := make([]directive.Turn, 0, len(in.History)+3)
	history = append(history, in.History...)
	history = append(history, directive.Turn{Role: "user", Content: in.Message, IsUser: true})

	var (
		reply     string
		collected []collection
	)

	count := 0
	for count < s.Cfg.MaxDataRequests {
		// the current user message travels in its own prompt section,
		// not in the transcript
		prompt := buildPrompt(in.Message, history[:len(history)-1], collected)

		text, err := s.Invoker.Generate(ctx, "", prompt)
		if err != nil {
			s.log.Warn().Err(err).Msg("model invocation failed")
			reply = fmt.Sprintf("Üzgünüm, bir hata oluştu: %v", err)
			break
		}
		reply = text

		req := directive.ParseDataRequest(reply)
		if req == nil {
			break
		}
		count++

		result := scope.Process(toScopeRequest(*req), in.UserData, s.now())
		collected = append(collected, collection{request: *req, result: result})
		history = append(history, directive.Turn{
			Role:        "system",
			Content:     scope.DescribeRequest(req.Category, req.TimeRange),
			DataRequest: true,
		})

		if count >= s.Cfg.MaxDataRequests {
			text, err := s.Invoker.Generate(ctx, "", buildFinalPrompt(in.Message, collected))
			if err != nil {
				s.log.Warn().Err(err).Msg("forced-final invocation failed")
				reply = fmt.Sprintf("Veri toplandı ancak analiz sırasında hata oluştu: %v", err)
			} else {
				reply = text
			}
			break
		}
	}

	parsed := directive.ParseSuggestions(reply)
	memories := directive.ParseMemories(reply)

	raw := reply
	if raw == "" {
		raw = "Yanıt oluşturulamadı."
	}
	clean := directive.Strip(raw)

	if reply != "" {
		history = append(history, directive.Turn{Role: "assistant", Content: clean})
	}

	items := suggest.Finalize(suggest.Normalize(parsed, suggest.Options{}))
	views := make([]domain.SuggestionView, 0, len(items))
	for _, it := range items {
		views = append(views, domain.SuggestionView{
			Type:        it.Type,
			Description: it.Description,
			Metadata:    it.Meta.ToMap(),
		})
	}
	if memories == nil {
		memories = []directive.MemoryItem{}
	}

	if s.Cfg.Sink != nil && in.UserID != "" {
		if len(items) > 0 {
			if _, err := s.Cfg.Sink.SaveSuggestions(ctx, in.UserID, items, "", "chat"); err != nil {
				s.log.Warn().Err(err).Str("user", in.UserID).Msg("suggestion save failed")
			}
		}
		if len(memories) > 0 {
			if _, err := s.Cfg.Sink.SaveMemories(ctx, in.UserID, memories); err != nil {
				s.log.Warn().Err(err).Str("user", in.UserID).Msg("memory save failed")
			}
		}
	}

	made := 0
	for _, t := range history {
		if t.DataRequest {
			made++
		}
	}

	return domain.ChatResult{
		Response:         clean,
		History:          history,
		DataRequestsMade: made,
		Suggestions:      views,
		Memories:         memories,
		Timestamp:        s.now().UTC().Format(time.RFC3339),
	}, nil
}

// QuickAnalysis implements domain.ConversationPort
func (s *Service) QuickAnalysis(ctx context.Context, in domain.QuickAnalysisInput) (domain.QuickAnalysisResult, error) {
	timeRange := in.TimeRange
	if timeRange == "" {
		timeRange = "week"
	}

	result := scope.Process(scope.Request{
		Category:  in.Category,
		TimeRange: timeRange,
		Filters:   map[string]any{},
	}, in.UserData, s.now())

	var analysis string
	if er, ok := result.(scope.ErrorResult); ok {
		analysis = fmt.Sprintf("Veri alınamadı: %s", er.Error)
	} else {
		var data any
		if res, ok := result.(scope.Result); ok {
			data = res.Data
		}
		text, err := s.Invoker.Generate(ctx, "", buildQuickAnalysisPrompt(in.Category, timeRange, data))
		if err != nil {
			s.log.Warn().Err(err).Msg("quick analysis invocation failed")
			analysis = fmt.Sprintf("Analiz hatası: %v", err)
		} else {
			analysis = text
		}
	}

	return domain.QuickAnalysisResult{
		Analysis:  analysis,
		Category:  in.Category,
		TimeRange: timeRange,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}, nil
}
