package authz

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/42roma/monitor/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingLog captures audit entries for assertions.
type recordingLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLog) Log(_ context.Context, actor, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, actor+": "+message)
}

func newTestPolicy() (*Policy, *recordingLog) {
	log := &recordingLog{}
	return NewPolicy([]string{"staff1", "staff2", ""}, log, zap.NewNop()), log
}

func TestAuthorize_NoIdentityRedirects(t *testing.T) {
	p, log := newTestPolicy()

	for _, action := range []Action{ActionCreate, ActionList, ActionEdit} {
		dec := p.Authorize(context.Background(), Request{Action: action, RemoteAddr: "10.0.0.1"})
		assert.Equal(t, RedirectToLogin, dec)
	}
	assert.Empty(t, log.entries)
}

func TestAuthorize_AdminAllowsEverything(t *testing.T) {
	p, log := newTestPolicy()
	admin := &entity.Identity{Login: "boss", Kind: entity.KindAdmin}
	other := &entity.Announcement{ID: "a1", CreatedBy: "staff1"}

	assert.Equal(t, Allow, p.Authorize(context.Background(), Request{Caller: admin, Action: ActionCreate}))
	assert.Equal(t, Allow, p.Authorize(context.Background(), Request{Caller: admin, Action: ActionList}))
	assert.Equal(t, Allow, p.Authorize(context.Background(), Request{Caller: admin, Action: ActionEdit, Target: other}))
	assert.Empty(t, log.entries)
}

func TestAuthorize_AuthorizedUserOwnRecords(t *testing.T) {
	p, log := newTestPolicy()
	staff := &entity.Identity{Login: "staff1", Kind: "student"}
	own := &entity.Announcement{ID: "a1", CreatedBy: "staff1"}

	assert.Equal(t, Allow, p.Authorize(context.Background(), Request{Caller: staff, Action: ActionCreate}))
	assert.Equal(t, Allow, p.Authorize(context.Background(), Request{Caller: staff, Action: ActionEdit, Target: own}))
	assert.Empty(t, log.entries)
}

func TestAuthorize_AuthorizedUserForeignRecordForbiddenAndLogged(t *testing.T) {
	p, log := newTestPolicy()
	staff := &entity.Identity{Login: "staff2", Kind: "student"}
	foreign := &entity.Announcement{ID: "a1", CreatedBy: "staff1"}

	dec := p.Authorize(context.Background(), Request{Caller: staff, Action: ActionEdit, Target: foreign, RemoteAddr: "10.0.0.1"})
	assert.Equal(t, Forbidden, dec)
	require.Len(t, log.entries, 1)
	assert.Contains(t, log.entries[0], "staff2")
	assert.Contains(t, log.entries[0], "a1")
}

func TestAuthorize_UnknownUserForbiddenAndLogged(t *testing.T) {
	p, log := newTestPolicy()
	rando := &entity.Identity{Login: "rando", Kind: "student"}

	for _, action := range []Action{ActionCreate, ActionList, ActionEdit} {
		dec := p.Authorize(context.Background(), Request{Caller: rando, Action: action, RemoteAddr: "10.0.0.1"})
		assert.Equal(t, Forbidden, dec)
	}
	require.Len(t, log.entries, 3)
	for _, e := range log.entries {
		assert.Contains(t, e, "10.0.0.1")
	}
}

func TestAuthorize_EmptyLoginNeverAuthorized(t *testing.T) {
	// The configured set may contain an empty string (e.g. from a trailing
	// comma in the env var); an identity with an empty login must not match.
	p, log := newTestPolicy()
	ghost := &entity.Identity{Login: "", Kind: "student"}

	dec := p.Authorize(context.Background(), Request{Caller: ghost, Action: ActionCreate, RemoteAddr: "10.0.0.1"})
	assert.Equal(t, Forbidden, dec)
	require.Len(t, log.entries, 1)
	assert.True(t, strings.HasPrefix(log.entries[0], "unknown:"))
}
