package chat

import (
	"context"
	"strings"
	"time"

	"weather-dashboard/internal/session"
	"go.uber.org/zap"
)

// HelpMessage is the reply when neither chat backend produced an answer.
const HelpMessage = `I'm having trouble processing your request right now. Try asking a simple weather question like "What is the temperature?" or "What is the humidity?"`

// Backend is the pair of chat endpoints the bridge talks to.
type Backend interface {
	// Chat asks the language-model proxy, with the weather summary as context.
	Chat(ctx context.Context, query, weatherData string) (string, error)
	// ChatFallback asks the rule-based chatbot, which only gets the city.
	ChatFallback(ctx context.Context, message, city string) (string, error)
}

// SessionReader exposes the session the bridge summarises.
type SessionReader interface {
	Snapshot() session.Snapshot
}

type Bridge struct {
	backend    Backend
	session    SessionReader
	transcript *Transcript
	loc        *time.Location
	logger     *zap.Logger
}

func NewBridge(backend Backend, sess SessionReader, transcript *Transcript, loc *time.Location, logger *zap.Logger) *Bridge {
	return &Bridge{
		backend:    backend,
		session:    sess,
		transcript: transcript,
		loc:        loc,
		logger:     logger,
	}
}

// Ask records text in the transcript, obtains a reply and records that too.
// Blank input is ignored and yields an empty reply.
func (b *Bridge) Ask(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	b.transcript.AddUser(text)
	reply := b.replyWhileThinking(ctx, text)
	b.transcript.AddBot(reply)

	return reply
}

func (b *Bridge) replyWhileThinking(ctx context.Context, text string) string {
	thinking := b.transcript.AddThinking()
	defer b.transcript.Remove(thinking.ID)

	return b.reply(ctx, text)
}

func (b *Bridge) reply(ctx context.Context, text string) string {
	snap := b.session.Snapshot()

	summary, err := BuildSummary(snap, b.loc)
	if err == nil {
		var answer string
		answer, err = b.backend.Chat(ctx, text, summary)
		if err == nil {
			return answer
		}
	}
	b.logger.Warn("Primary chat failed, using fallback",
		zap.String("city", snap.City),
		zap.Error(err))

	answer, err := b.backend.ChatFallback(ctx, text, snap.City)
	if err != nil {
		b.logger.Error("Fallback chat failed",
			zap.String("city", snap.City),
			zap.Error(err))
		return HelpMessage
	}

	return answer
}
