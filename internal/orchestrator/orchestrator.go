// Package orchestrator sequences one chat turn end to end: resolve the
// conversation, persist the user message, classify, plan, execute, and
// persist the assistant's reply. Every terminal path appends the assistant
// turn so the stored history stays a faithful transcript.
package orchestrator

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/normanking/taskmind/internal/memory"
	"github.com/normanking/taskmind/internal/planner"
	"github.com/normanking/taskmind/internal/router"
	"github.com/normanking/taskmind/internal/tools"
)

// Request is one inbound user message. UserID arrives already
// authenticated from the transport layer and is trusted as-is.
type Request struct {
	UserID         string
	Message        string
	ConversationID string
}

// ToolCall reports one executed (or attempted) tool invocation upstream.
type ToolCall struct {
	Name      string     `json:"name"`
	Arguments tools.Args `json:"arguments"`
}

// Response is the completed turn handed back to the transport layer.
type Response struct {
	ConversationID string     `json:"conversation_id"`
	Text           string     `json:"response"`
	ToolCalls      []ToolCall `json:"tool_calls"`
}

// Orchestrator owns no state of its own; it borrows the injected
// collaborators for the duration of one request.
type Orchestrator struct {
	planner  *planner.Planner
	executor *tools.Executor
	memory   memory.Store
	logger   zerolog.Logger
}

// New creates an Orchestrator from its collaborators.
func New(p *planner.Planner, e *tools.Executor, m memory.Store, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		planner:  p,
		executor: e,
		memory:   m,
		logger:   logger.With().Str("component", "orchestrator").Logger(),
	}
}

const troubleReply = "I'm sorry, something went wrong while processing your request. Please try again."

// HandleRequest processes one user message and returns the assistant's
// reply. Infrastructure failures are converted into an apologetic reply;
// they never escape as errors.
func (o *Orchestrator) HandleRequest(ctx context.Context, req Request) Response {
	log := o.logger.With().
		Str("request_id", uuid.New().String()).
		Str("user_id", req.UserID).
		Logger()

	conversationID, err := o.resolveConversation(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve conversation")
		return Response{Text: troubleReply}
	}
	log = log.With().Str("conversation_id", conversationID).Logger()

	if _, err := o.memory.Append(ctx, req.UserID, conversationID, memory.RoleUser, req.Message); err != nil {
		// Covers both infrastructure failure and a conversation id that
		// belongs to someone else; neither may turn into a silent write.
		log.Error().Err(err).Msg("failed to persist user message")
		return Response{Text: troubleReply}
	}

	intent := router.Classify(req.Message)
	log.Debug().Str("intent", intent.String()).Msg("classified message")

	var text string
	var calls []ToolCall

	if intent == router.IntentChitchat {
		text = router.ChitchatReply(req.Message)
	} else {
		text, calls = o.runPlan(ctx, log, req)
	}

	if _, err := o.memory.Append(ctx, req.UserID, conversationID, memory.RoleAssistant, text); err != nil {
		log.Error().Err(err).Msg("failed to persist assistant message")
	}

	return Response{ConversationID: conversationID, Text: text, ToolCalls: calls}
}

// resolveConversation reuses the supplied conversation, falls back to the
// user's most recent one, and creates a fresh conversation only when the
// user has none.
func (o *Orchestrator) resolveConversation(ctx context.Context, req Request) (string, error) {
	if req.ConversationID != "" {
		return req.ConversationID, nil
	}

	conv, err := o.memory.LatestConversation(ctx, req.UserID)
	if err == nil {
		return conv.ID, nil
	}
	if !errors.Is(err, memory.ErrNotFound) {
		return "", err
	}

	conv, err = o.memory.CreateConversation(ctx, req.UserID)
	if err != nil {
		return "", err
	}
	return conv.ID, nil
}

// runPlan plans the request and executes its steps strictly in order; a
// later step may depend on the effects of an earlier one.
func (o *Orchestrator) runPlan(ctx context.Context, log zerolog.Logger, req Request) (string, []ToolCall) {
	plan := o.planner.Plan(req.Message)

	if plan.Ambiguous() {
		log.Debug().Str("clarification", plan.Clarification).Msg("plan needs clarification")
		return "I need more information: " + plan.Clarification, nil
	}

	var calls []ToolCall
	var results []tools.Result
	for _, step := range plan.Steps {
		args := tools.Args{"user_id": req.UserID}
		for k, v := range step.Args {
			args[k] = v
		}

		result := o.executor.Execute(ctx, step.Tool, args)
		results = append(results, result)
		calls = append(calls, ToolCall{Name: step.Tool.String(), Arguments: step.Args})

		if !result.Succeeded() {
			log.Warn().Str("tool", step.Tool.String()).Str("error", result.Message).Msg("step failed")
		}
	}

	return summarize(plan.Steps, results), calls
}
