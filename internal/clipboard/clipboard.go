// Package clipboard delivers prompt content for copying, either to the host
// clipboard or back to the browser when running without one.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"

	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/metrics"
)

// User-facing messages.
const (
	MsgCopied   = "클립보드에 복사되었습니다."
	MsgHeadless = "프롬프트 내용이 아래에 표시됩니다. 텍스트를 선택하여 복사해주세요."
	MsgNotFound = "프롬프트를 찾을 수 없습니다."
	msgFailed   = "복사 실패: %s"
)

// Copy modes and outcomes recorded in metrics.
const (
	ModeHost     = "host"
	ModeHeadless = "headless"

	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

func (f WriterFunc) WriteAll(text string) error { return f(text) }

// Host writes to the operating system clipboard.
var Host Writer = WriterFunc(clipboard.WriteAll)

// Result is the copy outcome returned to the browser.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Content  string `json:"content,omitempty"`
	IsDocker bool   `json:"is_docker,omitempty"`
}

// System copies prompt content.
type System interface {
	Handler() *Handler
	Copy(ctx context.Context, id int64) Result
}

type copier struct {
	prompts  prompts.System
	writer   Writer
	headless bool
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// New creates a clipboard System. In headless mode writer is never called and
// the content is returned for the browser to copy. m may be nil.
func New(
	prompts prompts.System,
	writer Writer,
	headless bool,
	m *metrics.Collector,
	logger *slog.Logger,
) System {
	return &copier{
		prompts:  prompts,
		writer:   writer,
		headless: headless,
		metrics:  m,
		logger:   logger.With("system", "clipboard"),
	}
}

func (c *copier) Handler() *Handler {
	return NewHandler(c, c.logger)
}

func (c *copier) Copy(ctx context.Context, id int64) Result {
	mode := ModeHost
	if c.headless {
		mode = ModeHeadless
	}

	p, err := c.prompts.Find(ctx, id)
	if err != nil {
		if errors.Is(err, prompts.ErrNotFound) {
			c.record(mode, ResultNotFound)
			return Result{Message: MsgNotFound}
		}
		c.logger.Error("copy lookup failed", "id", id, "error", err)
		c.record(mode, ResultError)
		return Result{Message: fmt.Sprintf(msgFailed, err)}
	}

	if c.headless {
		c.record(mode, ResultOK)
		return Result{
			Success:  true,
			Message:  MsgHeadless,
			Content:  p.Content,
			IsDocker: true,
		}
	}

	if err := c.writer.WriteAll(p.Content); err != nil {
		c.logger.Warn("clipboard write failed", "id", id, "error", err)
		c.record(mode, ResultError)
		return Result{Message: fmt.Sprintf(msgFailed, err)}
	}

	c.logger.Debug("prompt copied", "id", id)
	c.record(mode, ResultOK)
	return Result{Success: true, Message: MsgCopied}
}

func (c *copier) record(mode, result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.Copies.WithLabelValues(mode, result).Inc()
}
