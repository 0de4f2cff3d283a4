package chi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kovan-labs/chatdock/internal/domain"
	domsearch "github.com/kovan-labs/chatdock/internal/domain/search"
	agentuc "github.com/kovan-labs/chatdock/internal/usecase/agent"
	chatuc "github.com/kovan-labs/chatdock/internal/usecase/chat"
	healthuc "github.com/kovan-labs/chatdock/internal/usecase/health"
	searchuc "github.com/kovan-labs/chatdock/internal/usecase/search"
	useruc "github.com/kovan-labs/chatdock/internal/usecase/user"
)

// fakeUsers is an in-memory user repository.
type fakeUsers struct {
	users map[string]domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]domain.User)}
}

func (f *fakeUsers) Get(_ context.Context, userID string) (domain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) Insert(_ context.Context, u domain.User) error {
	if _, ok := f.users[u.UserID()]; ok {
		return domain.ErrAlreadyExists
	}
	f.users[u.UserID()] = u
	return nil
}

func (f *fakeUsers) Replace(_ context.Context, u domain.User) error {
	if _, ok := f.users[u.UserID()]; !ok {
		return domain.ErrUserNotFound
	}
	f.users[u.UserID()] = u
	return nil
}

// fakeChats is an in-memory chat repository.
type fakeChats struct {
	chats map[string]domain.Chat
}

func newFakeChats() *fakeChats {
	return &fakeChats{chats: make(map[string]domain.Chat)}
}

func (f *fakeChats) Get(_ context.Context, chatID string) (domain.Chat, error) {
	c, ok := f.chats[chatID]
	if !ok {
		return domain.Chat{}, domain.ErrChatNotFound
	}
	return c, nil
}

func (f *fakeChats) Insert(_ context.Context, c domain.Chat) error {
	f.chats[c.ChatID()] = c
	return nil
}

func (f *fakeChats) Replace(_ context.Context, c domain.Chat) error {
	if _, ok := f.chats[c.ChatID()]; !ok {
		return domain.ErrChatNotFound
	}
	f.chats[c.ChatID()] = c
	return nil
}

// fakeSearch returns canned index rows.
type fakeSearch struct {
	rows []domsearch.Row
	err  error
}

func (f *fakeSearch) Query(_ context.Context, _ string) ([]domsearch.Row, error) {
	return f.rows, f.err
}

// fakeStepper scripts agent step results.
type fakeStepper struct {
	results []domain.AgentStepResult
	err     error
	calls   int
}

func (f *fakeStepper) Step(_ context.Context, _ string, _ []domain.AgentStepResult) (domain.AgentStepResult, error) {
	if f.err != nil {
		return domain.AgentStepResult{}, f.err
	}
	res := f.results[f.calls]
	f.calls++
	return res, nil
}

// fakePinger stands in for the database health probe.
type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

type fixture struct {
	users  *fakeUsers
	chats  *fakeChats
	search *fakeSearch
	pinger *fakePinger
}

// newTestHandler wires real services over the in-memory fakes and mounts the
// server routes on a router. stepper may be nil for a server with no agent.
func newTestHandler(fx *fixture, stepper agentuc.Stepper) http.Handler {
	users := useruc.New(fx.users, fx.chats)
	chats := chatuc.New(fx.chats, fx.users)
	search := searchuc.New(fx.search)

	var agent *agentuc.Service
	if stepper != nil {
		agent = agentuc.New(stepper, 5, 2, 0)
	}
	health := healthuc.New(fx.pinger, nil)

	srv := NewServer(users, chats, search, agent, health, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func newFixture() *fixture {
	return &fixture{
		users:  newFakeUsers(),
		chats:  newFakeChats(),
		search: &fakeSearch{},
		pinger: &fakePinger{},
	}
}
