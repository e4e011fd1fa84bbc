package relation

import "context"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetNXFn  func(ctx context.Context, key, field, value string) (bool, error)
	hdelFn    func(ctx context.Context, key string, fields ...string) (int64, error)
	hgetAllFn func(ctx context.Context, key string) (map[string]string, error)
}

func (m *mockStore) HSetNX(ctx context.Context, key, field, value string) (bool, error) {
	if m.hsetNXFn != nil {
		return m.hsetNXFn(ctx, key, field, value)
	}
	return true, nil
}

func (m *mockStore) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	if m.hdelFn != nil {
		return m.hdelFn(ctx, key, fields...)
	}
	return 1, nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}
