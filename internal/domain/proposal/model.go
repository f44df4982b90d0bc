package proposal

import (
	"context"
	"net/url"
	"time"

	"github.com/rpggio/designboard/internal/domain/activity"
)

const (
	DefaultApprovalDelay  = time.Second
	DefaultPreviewBaseURL = "https://via.placeholder.com/600x400.png"
)

// State is the per-task proposal state.
type State string

const (
	StateNone      State = "none"
	StateSubmitted State = "submitted"
	StateApproved  State = "approved"
)

// Config holds workflow settings.
type Config struct {
	ApprovalDelay  time.Duration
	PreviewBaseURL string
	// Actor proposes changes; Approver signs them off.
	Actor    activity.Actor
	Approver activity.Actor
}

func (c Config) withDefaults() Config {
	if c.ApprovalDelay <= 0 {
		c.ApprovalDelay = DefaultApprovalDelay
	}
	if c.PreviewBaseURL == "" {
		c.PreviewBaseURL = DefaultPreviewBaseURL
	}
	return c
}

// Pending is a handle on one scheduled approval.
type Pending struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id"`
	Link   string `json:"design_link"`

	timer Timer
	done  chan struct{}
	err   error
}

func newPending(id, taskID, link string) *Pending {
	return &Pending{ID: id, TaskID: taskID, Link: link, done: make(chan struct{})}
}

// Done is closed once the approval has been applied or abandoned.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the approval finishes or ctx ends.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pending) finish(err error) {
	p.err = err
	close(p.done)
}

// previewURL points base at a placeholder image captioned with the tail of link.
func previewURL(base, link string) string {
	runes := []rune(link)
	if len(runes) > 10 {
		runes = runes[len(runes)-10:]
	}
	caption := "Approved: " + string(runes)

	u, err := url.Parse(base)
	if err != nil {
		return base + "?text=" + url.QueryEscape(caption)
	}
	q := u.Query()
	q.Set("text", caption)
	u.RawQuery = q.Encode()
	return u.String()
}
