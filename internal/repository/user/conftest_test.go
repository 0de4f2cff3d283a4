package user

import "context"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonGetFn   func(ctx context.Context, key string, paths ...string) ([]byte, error)
	jsonSetNXFn func(ctx context.Context, key, path string, data []byte) error
	jsonSetXXFn func(ctx context.Context, key, path string, data []byte) error
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, nil
}

func (m *mockStore) JSONSetNX(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetNXFn != nil {
		return m.jsonSetNXFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONSetXX(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetXXFn != nil {
		return m.jsonSetXXFn(ctx, key, path, data)
	}
	return nil
}
