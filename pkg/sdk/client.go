package chatdock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kovan-labs/chatdock/internal/db"
	dbRedis "github.com/kovan-labs/chatdock/internal/db/redis"
	"github.com/kovan-labs/chatdock/internal/domain"
	domsearch "github.com/kovan-labs/chatdock/internal/domain/search"
	chatrepo "github.com/kovan-labs/chatdock/internal/repository/chat"
	searchrepo "github.com/kovan-labs/chatdock/internal/repository/search"
	userrepo "github.com/kovan-labs/chatdock/internal/repository/user"
	chatuc "github.com/kovan-labs/chatdock/internal/usecase/chat"
	searchuc "github.com/kovan-labs/chatdock/internal/usecase/search"
	useruc "github.com/kovan-labs/chatdock/internal/usecase/user"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultIndexName        = "chat_search"
	defaultMaxResults       = 50
)

// Internal interfaces so tests can substitute the use case services.
type userUseCase interface {
	Create(ctx context.Context, userID, name string) (domain.User, error)
	GetOrCreate(ctx context.Context, userID string) (domain.User, error)
	ListChats(ctx context.Context, userID string) ([]domain.Chat, error)
}

type chatUseCase interface {
	Create(ctx context.Context, userID, name string) (domain.Chat, error)
	Get(ctx context.Context, chatID string) (domain.Chat, error)
	AppendMessage(ctx context.Context, chatID string, m domain.Message) (domain.Message, error)
}

type searchUseCase interface {
	Search(ctx context.Context, userID, query string) ([]domsearch.Record, error)
}

type indexEnsurer interface {
	EnsureIndex(ctx context.Context) error
}

// Client is the chatdock SDK entry point.
type Client struct {
	store     db.Store
	userSvc   userUseCase
	chatSvc   chatUseCase
	searchSvc searchUseCase
	indexer   indexEnsurer
	obs       *observer
}

// New creates a chatdock Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		indexName:  defaultIndexName,
		maxResults: defaultMaxResults,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("chatdock: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("chatdock: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("chatdock: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	userRepo := userrepo.New(store)
	chatRepo := chatrepo.New(store)
	searchRepo := searchrepo.New(store, cfg.indexName, cfg.maxResults)

	return &Client{
		store:     store,
		userSvc:   useruc.New(userRepo, chatRepo),
		chatSvc:   chatuc.New(chatRepo, userRepo),
		searchSvc: searchuc.New(searchRepo),
		indexer:   searchRepo,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Users returns the user management service.
func (c *Client) Users() *UserService {
	return &UserService{svc: c.userSvc, obs: c.obs}
}

// Chats returns the chat service.
func (c *Client) Chats() *ChatService {
	return &ChatService{svc: c.chatSvc, obs: c.obs}
}

// Search returns the full-text search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, indexer: c.indexer, obs: c.obs}
}

func fromInternalUser(u domain.User) User {
	chatIDs := u.ChatIDs()
	if chatIDs == nil {
		chatIDs = []string{}
	}
	return User{
		UserID:  u.UserID(),
		Name:    u.Name(),
		ChatIDs: chatIDs,
	}
}

func fromInternalChat(c domain.Chat) Chat {
	msgs := make([]Message, len(c.Messages()))
	for i, m := range c.Messages() {
		msgs[i] = Message{Content: m.Content, Timestamp: m.Timestamp, Sender: m.Sender}
	}
	return Chat{
		ChatID:   c.ChatID(),
		UserID:   c.UserID(),
		Name:     c.Name(),
		Messages: msgs,
	}
}
