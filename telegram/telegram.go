// Package telegram is a minimal Bot API client: send one message, long-poll
// for inbound ones. The core treats delivery as fire and forget; callers
// log failures and never retry here, so a flaky network degrades to missed
// notifications instead of a backed-up queue.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const defaultBase = "https://api.telegram.org"

// Message is one inbound operator message.
type Message struct {
	Chat   int64  // chat to reply into
	Sender string // @username when set, otherwise the numeric user id
	Text   string
}

// Handler receives each inbound message. It must contain its own errors;
// the poll loop never stops because of one bad message.
type Handler func(ctx context.Context, m Message)

// Bot is a Telegram Bot API client.
type Bot struct {
	token  string
	base   string
	client *http.Client
	logger *slog.Logger
	offset int64
}

// Option configures a Bot.
type Option func(*Bot)

// WithBaseURL points the bot at a different API host (tests).
func WithBaseURL(base string) Option {
	return func(b *Bot) { b.base = base }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) { b.logger = l }
}

// WithTimeout sets the per-request timeout. Default: 35s, which leaves
// room for the 25s long-poll window.
func WithTimeout(d time.Duration) Option {
	return func(b *Bot) { b.client.Timeout = d }
}

// New creates a Bot for the given token.
func New(token string, opts ...Option) *Bot {
	b := &Bot{
		token:  token,
		base:   defaultBase,
		client: &http.Client{Timeout: 35 * time.Second},
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"from"`
	} `json:"message"`
}

// SendMessage delivers text to a chat. html enables HTML parse mode.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string, html bool) error {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if html {
		payload["parse_mode"] = "HTML"
	}

	if _, err := b.call(ctx, "sendMessage", payload); err != nil {
		return fmt.Errorf("telegram: send to %d: %w", chatID, err)
	}
	return nil
}

// Poll long-polls getUpdates until ctx is cancelled, handing every inbound
// message to handle. Transport errors are logged and retried after a short
// pause; the update offset only advances past updates that were delivered
// to the handler.
func (b *Bot) Poll(ctx context.Context, handle Handler) {
	for {
		if ctx.Err() != nil {
			return
		}

		updates, err := b.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			b.logger.Warn("telegram: poll failed", "error", err)
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, u := range updates {
			b.offset = u.UpdateID + 1
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			sender := u.Message.From.Username
			if sender == "" {
				sender = strconv.FormatInt(u.Message.From.ID, 10)
			}
			handle(ctx, Message{
				Chat:   u.Message.Chat.ID,
				Sender: sender,
				Text:   u.Message.Text,
			})
		}
	}
}

func (b *Bot) getUpdates(ctx context.Context) ([]update, error) {
	raw, err := b.call(ctx, "getUpdates", map[string]any{
		"offset":  b.offset,
		"timeout": 25,
	})
	if err != nil {
		return nil, err
	}

	var updates []update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return updates, nil
}

func (b *Bot) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", method, err)
	}

	url := b.base + "/bot" + b.token + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", method, err)
	}
	if !api.OK {
		return nil, fmt.Errorf("%s: api error: %s", method, api.Description)
	}
	return api.Result, nil
}
