// Package backend is the reference implementation of the REST resources the
// client synchronises against. It backs the HTTP server and in-process tests.
package backend

import (
	"context"
	"strings"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
)

// Actor is the agent a request is performed for
type Actor struct {
	ID   string
	Name string
}

type ctxActorKey struct{}

// WithActor stores the acting agent in ctx
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ctxActorKey{}, actor)
}

// ActorFrom returns the acting agent. The zero Actor means the system.
func ActorFrom(ctx context.Context) Actor {
	if actor, ok := ctx.Value(ctxActorKey{}).(Actor); ok {
		return actor
	}
	return Actor{}
}

type Service struct {
	repo         interfaces.Repository
	category3    map[string]struct{}
	supportUsers []string
	clock        func() time.Time
	loc          *time.Location
}

var _ interfaces.Backend = &Service{}

type Option func(*Service)

// WithCategory3Lenders lists lenders whose claims are answered with a
// confirmation email instead of being created. Matching ignores case.
func WithCategory3Lenders(lenders []string) Option {
	return func(s *Service) {
		for _, l := range lenders {
			if l = strings.TrimSpace(l); l != "" {
				s.category3[strings.ToLower(l)] = struct{}{}
			}
		}
	}
}

// WithSupportUsers lists the users who see every support ticket and are
// notified when one is raised
func WithSupportUsers(userIDs []string) Option {
	return func(s *Service) {
		for _, id := range userIDs {
			if id = strings.TrimSpace(id); id != "" {
				s.supportUsers = append(s.supportUsers, id)
			}
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithLocation sets the time zone task dates are interpreted in
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.loc = loc
	}
}

func New(repo interfaces.Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		category3: make(map[string]struct{}),
		clock:     time.Now,
		loc:       time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) isCategory3(lender string) bool {
	_, ok := s.category3[strings.ToLower(strings.TrimSpace(lender))]
	return ok
}

// appendLog writes an audit entry. A failure is reported but does not fail
// the request that caused it.
func (s *Service) appendLog(ctx context.Context, entry *model.ActionLogEntry) {
	actor := ActorFrom(ctx)
	entry.ActorType = types.ActorTypeSystem
	if actor.ID != "" {
		entry.ActorType = types.ActorTypeAgent
		entry.ActorID = actor.ID
		entry.ActorName = actor.Name
	}
	entry.Timestamp = s.clock()

	if _, err := s.repo.ActionLog().Append(ctx, entry); err != nil {
		errutil.Handle(ctx, err, "failed to append action log")
	}
}

// refreshMirror copies the contact's primary claim onto the stored contact
func (s *Service) refreshMirror(ctx context.Context, contactID string) {
	contact, err := s.repo.Contact().Get(ctx, contactID)
	if err != nil {
		return
	}
	claims, err := s.repo.Claim().ListByContact(ctx, contactID)
	if err != nil {
		errutil.Handle(ctx, err, "failed to list claims for contact mirror")
		return
	}

	primary := model.PrimaryClaim(claims)
	if primary != nil && contact.Status == primary.Status &&
		contact.Lender == primary.Lender && contact.ClaimValue == primary.ClaimValue {
		return
	}
	contact.MirrorPrimary(primary)
	if _, err := s.repo.Contact().Update(ctx, contact); err != nil {
		errutil.Handle(ctx, err, "failed to update contact mirror")
	}
}
