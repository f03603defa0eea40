// Package authz decides who may manage dashboard content.
package authz

import (
	"context"
	"fmt"

	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/port/actionlog"
	"go.uber.org/zap"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	// RedirectToLogin means no caller identity was present; the web layer
	// sends the browser to the login flow.
	RedirectToLogin
	Forbidden
)

// Action is a management operation on announcements.
type Action string

const (
	ActionCreate Action = "create"
	ActionList   Action = "list"
	ActionEdit   Action = "edit"
)

// Request carries everything a decision needs. Target is the record being
// edited, nil for create/list. RemoteAddr is included in audit entries for
// rejected attempts.
type Request struct {
	Caller     *entity.Identity
	Action     Action
	Target     *entity.Announcement
	RemoteAddr string
}

// Policy applies the dashboard access rules: admins may do anything, logins
// in the authorized set may create announcements and manage their own, and
// everyone else is rejected with an audit entry.
type Policy struct {
	authorized map[string]struct{}
	actionLog  actionlog.Logger
	logger     *zap.Logger
}

func NewPolicy(authorizedUsers []string, al actionlog.Logger, logger *zap.Logger) *Policy {
	set := make(map[string]struct{}, len(authorizedUsers))
	for _, login := range authorizedUsers {
		if login != "" {
			set[login] = struct{}{}
		}
	}
	return &Policy{authorized: set, actionLog: al, logger: logger}
}

// Authorize evaluates req. Every Forbidden result is written to the action
// log before it is returned.
func (p *Policy) Authorize(ctx context.Context, req Request) Decision {
	if req.Caller == nil {
		return RedirectToLogin
	}
	if req.Caller.IsAdmin() {
		return Allow
	}
	if _, ok := p.authorized[req.Caller.Login]; !ok {
		p.forbid(ctx, req.Caller, fmt.Sprintf("unauthorized dashboard access (%s)", req.RemoteAddr))
		return Forbidden
	}
	if req.Action == ActionEdit && req.Target != nil && req.Target.CreatedBy != req.Caller.Login {
		p.forbid(ctx, req.Caller, fmt.Sprintf("attempted to edit announcement %s without permission", req.Target.ID))
		return Forbidden
	}
	return Allow
}

func (p *Policy) forbid(ctx context.Context, caller *entity.Identity, message string) {
	p.actionLog.Log(ctx, caller.DisplayLogin(), message)
	p.logger.Warn("Access denied", zap.String("login", caller.DisplayLogin()), zap.String("reason", message))
}
