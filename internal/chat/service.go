// Package chat implements the conversational session pipeline: admission
// control, session load, context assembly, completion, persistence and the
// best-effort audit log.
package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jardelmessias/portfolio-chat/internal/llm"
	"github.com/jardelmessias/portfolio-chat/internal/metrics"
	"github.com/jardelmessias/portfolio-chat/internal/moderation"
	"github.com/jardelmessias/portfolio-chat/internal/models"
)

// FallbackReply is the fixed, user-facing message substituted when the
// completion provider fails. Provider errors never cross the core boundary.
const FallbackReply = "Opa! Tive um problema técnico. Pode repetir?"

// OriginTag marks audit-log entries written by this service.
const OriginTag = "web_portfolio"

// SystemDirective is the fixed assistant persona prepended to every prompt.
const SystemDirective = `Você é o assistente virtual do portfólio do Jardel Messias, desenvolvedor Full Stack brasileiro.

Especialidades: HTML, CSS, JavaScript, React, Node.js e Go.
Projetos principais: Jogo Embaralhado (puzzle mobile), Chuva de Palavras (jogo de digitação), Acarajé do Diego (full-commerce), Dashboard Financeiro PME, DevBurger (delivery) e App do Tempo (clima global).

Responda sempre em Português Brasileiro, de forma entusiasmada e profissional.
Seja breve e direto. Apenas texto para ser falado, sem descrever gestos.`

// Hardening timeouts on outbound provider calls. Expiry yields each
// component's standard failure outcome.
const (
	completionTimeout = 60 * time.Second
	synthesisTimeout  = 30 * time.Second
	auditTimeout      = 10 * time.Second
)

// SessionStore is the durable session mapping the orchestrator depends on.
type SessionStore interface {
	GetOrCreate(ctx context.Context, sessionID string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	GetHistory(ctx context.Context, sessionID string) (*models.Session, error)
}

// Completer invokes the hosted language model with an assembled context.
type Completer interface {
	Complete(ctx context.Context, msgs []models.Message) (string, error)
}

// Synthesizer converts reply text to speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ConversationLog records exchanges on an independent audit side channel.
type ConversationLog interface {
	Record(ctx context.Context, entry models.ConversationLogEntry) error
}

// Dependencies holds the collaborators injected into the service.
type Dependencies struct {
	Store       SessionStore
	Completer   Completer
	Synthesizer Synthesizer
	Audit       ConversationLog
	Gate        *moderation.Gate
	Metrics     *metrics.Collector
	Logger      *slog.Logger
}

// Service composes the collaborators into the operations exposed to the
// boundary layer. Each call is an independent unit of work; no shared
// in-memory state is locked across sessions.
type Service struct {
	store     SessionStore
	completer Completer
	synth     Synthesizer
	audit     ConversationLog
	gate      *moderation.Gate
	metrics   *metrics.Collector
	logger    *slog.Logger
	directive string

	auditWG sync.WaitGroup
}

// NewService creates the orchestrator. Gate, Metrics and Logger fall back to
// sensible defaults when nil.
func NewService(deps Dependencies) *Service {
	if deps.Gate == nil {
		deps.Gate = moderation.NewGate()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCollector()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Service{
		store:     deps.Store,
		completer: deps.Completer,
		synth:     deps.Synthesizer,
		audit:     deps.Audit,
		gate:      deps.Gate,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		directive: SystemDirective,
	}
}

// ProcessMessage runs one exchange: admission, load, assemble, complete,
// persist, audit. The only error it returns is moderation.ErrRejected;
// provider and persistence failures degrade into the fallback reply and
// logged side effects.
func (s *Service) ProcessMessage(ctx context.Context, text, sessionID string) (string, string, error) {
	// Admission runs before any session lookup or provider call, so rejected
	// requests incur zero downstream cost.
	if err := s.gate.Check(text); err != nil {
		s.logger.Info("message rejected by moderation", "session_id", sessionID)
		return "", "", err
	}

	start := time.Now()
	session, err := s.store.GetOrCreate(ctx, sessionID)
	s.metrics.RecordTiming(metrics.OpSessionLoad, time.Since(start))
	if err != nil {
		// No session identity can be established; degrade to the fallback
		// reply with whatever id the client already holds.
		s.logger.Error("session load failed", "error", err, "session_id", sessionID)
		s.metrics.RecordFailure(metrics.OpSessionLoad)
		return FallbackReply, sessionID, nil
	}

	prompt := llm.BuildContext(s.directive, session.Messages, text)
	session.Append(models.NewMessage(models.RoleUser, text))

	cctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	start = time.Now()
	reply, err := s.completer.Complete(cctx, prompt)
	s.metrics.RecordTiming(metrics.OpCompletion, time.Since(start))
	if err != nil {
		// The user turn is still persisted; no assistant turn is appended on
		// a failed completion. The returned session identity is unchanged.
		s.logger.Error("completion failed", "error", err, "session_id", session.SessionID)
		s.metrics.RecordFailure(metrics.OpCompletion)
		reply = FallbackReply
	} else {
		session.Append(models.NewMessage(models.RoleAssistant, reply))
	}

	start = time.Now()
	if saveErr := s.store.Save(ctx, session); saveErr != nil {
		// Durability failed but the reply is already computed; the user still
		// gets their answer.
		s.logger.Error("session save failed", "error", saveErr, "session_id", session.SessionID)
		s.metrics.RecordFailure(metrics.OpSessionSave)
	}
	s.metrics.RecordTiming(metrics.OpSessionSave, time.Since(start))

	s.recordExchange(text, reply, session.SessionID)

	return reply, session.SessionID, nil
}

// GetVoiceAudio synthesizes arbitrary text (not necessarily the latest reply)
// and never returns an error: any synthesis failure yields nil audio, which
// the boundary layer reports as a distinct, expected outcome.
func (s *Service) GetVoiceAudio(ctx context.Context, text string) []byte {
	sctx, cancel := context.WithTimeout(ctx, synthesisTimeout)
	defer cancel()

	start := time.Now()
	audio, err := s.synth.Synthesize(sctx, text)
	s.metrics.RecordTiming(metrics.OpSynthesis, time.Since(start))
	if err != nil {
		s.logger.Error("voice synthesis failed", "error", err)
		s.metrics.RecordFailure(metrics.OpSynthesis)
		return nil
	}
	return audio
}

// GetSessionHistory returns the stored session, or an error wrapping
// db.ErrNotFound for unknown ids.
func (s *Service) GetSessionHistory(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.store.GetHistory(ctx, sessionID)
}

// recordExchange writes the audit record off the request path. A write
// failure is counted and logged but can never delay or fail the response.
func (s *Service) recordExchange(userText, botText, sessionID string) {
	entry := models.ConversationLogEntry{
		Timestamp: time.Now().UTC(),
		UserText:  userText,
		BotText:   botText,
		SessionID: sessionID,
		Origin:    OriginTag,
	}

	s.auditWG.Add(1)
	go func() {
		defer s.auditWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()

		if err := s.audit.Record(ctx, entry); err != nil {
			s.logger.Error("conversation log write failed", "error", err, "session_id", sessionID)
			s.metrics.RecordFailure(metrics.OpAuditLog)
		}
	}()
}

// Flush waits for in-flight audit writes. Called on shutdown and by tests.
func (s *Service) Flush() {
	s.auditWG.Wait()
}
