// Package http mounts the conversational AI endpoints
package http

import (
	stdhttp "net/http"

	"assistant/internal/modkit/httpkit"
	"assistant/internal/platform/net/middleware"
	"assistant/internal/services/chat/domain"
	sugdomain "assistant/internal/services/suggestions/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Conversation domain.ConversationPort

	// Daily is optional, the route is skipped when nil
	Daily sugdomain.DailyPort
}

type handlers struct {
	deps Deps
}

// Register mounts the chat routes on the module router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.PostJSON[domain.ChatInput](r, "/chat-v2", h.chat)
	httpkit.PostJSON[domain.QuickAnalysisInput](r, "/quick-analysis", h.quickAnalysis)

	if d.Daily != nil {
		httpkit.Protected(r, middleware.HeaderAuth{}, func(gr httpkit.Router) {
			httpkit.PostJSON[sugdomain.DailyInput](gr, "/daily-suggestions", h.dailySuggestions)
		})
	}
}

// swagger:route POST /ai/chat-v2 AI aiChatV2
// @Summary Conversation turn with a bounded data-request loop
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body domain.ChatInput true "Message, full data snapshot and running history"
// @Success 200 {object} domain.ChatResult "ok"
// @Router /ai/chat-v2 [post]
func (h *handlers) chat(r *stdhttp.Request, in domain.ChatInput) (any, error) {
	return h.deps.Conversation.Chat(r.Context(), in)
}

// swagger:route POST /ai/quick-analysis AI aiQuickAnalysis
// @Summary Single-shot analysis of one data category
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body domain.QuickAnalysisInput true "Category, snapshot and optional time range"
// @Success 200 {object} domain.QuickAnalysisResult "ok"
// @Router /ai/quick-analysis [post]
func (h *handlers) quickAnalysis(r *stdhttp.Request, in domain.QuickAnalysisInput) (any, error) {
	return h.deps.Conversation.QuickAnalysis(r.Context(), in)
}

// swagger:route POST /ai/daily-suggestions AI aiDailySuggestions
// @Summary Generate and persist meal suggestions for the target date
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body sugdomain.DailyInput true "Target date and flags"
// @Success 200 {object} sugdomain.DailyResult "ok"
// @Router /ai/daily-suggestions [post]
func (h *handlers) dailySuggestions(r *stdhttp.Request, in sugdomain.DailyInput) (any, error) {
	return h.deps.Daily.GenerateDaily(r.Context(), httpkit.MustUser(r), in)
}
