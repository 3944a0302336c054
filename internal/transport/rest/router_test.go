package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/logger"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/category"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/event"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/user"
)

func init() {
	logger.InitWithWriter("ewm-main", testWriter{})
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

// --- Fakes ---

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type memUsers struct {
	nextID int64
	byID   map[int64]*domain.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]*domain.User{}} }

func (m *memUsers) CreateUser(ctx context.Context, u *domain.User) error {
	for _, ex := range m.byID {
		if ex.Email == u.Email {
			return domain.ErrConflict("email already registered")
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("user not found")
	}
	return u, nil
}

func (m *memUsers) ListUsers(ctx context.Context, ids []int64, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUsers) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound("user not found")
	}
	delete(m.byID, id)
	return nil
}

func (m *memUsers) UserVoteTotals(ctx context.Context, userID int64) (int64, int64, error) {
	return 0, 0, nil
}

type memCategories struct {
	nextID int64
	byID   map[int64]*domain.Category
}

func newMemCategories() *memCategories { return &memCategories{byID: map[int64]*domain.Category{}} }

func (m *memCategories) CreateCategory(ctx context.Context, c *domain.Category) error {
	for _, ex := range m.byID {
		if ex.Name == c.Name {
			return domain.ErrConflict("category name already in use")
		}
	}
	m.nextID++
	c.ID = m.nextID
	m.byID[c.ID] = c
	return nil
}

func (m *memCategories) UpdateCategory(ctx context.Context, c *domain.Category) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCategories) DeleteCategory(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound("category not found")
	}
	delete(m.byID, id)
	return nil
}

func (m *memCategories) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("category not found")
	}
	return c, nil
}

func (m *memCategories) ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

type memEvents struct {
	nextID    int64
	byID      map[int64]*domain.Event
	confirmed map[int64]int64
}

func newMemEvents() *memEvents {
	return &memEvents{byID: map[int64]*domain.Event{}, confirmed: map[int64]int64{}}
}

func (m *memEvents) CreateEvent(ctx context.Context, e *domain.Event) error {
	m.nextID++
	e.ID = m.nextID
	m.byID[e.ID] = e
	return nil
}

func (m *memEvents) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	cp := *e
	return &cp, nil
}

func (m *memEvents) UpdateEvent(ctx context.Context, e *domain.Event) error {
	cp := *e
	m.byID[e.ID] = &cp
	return nil
}

func (m *memEvents) ModerateEvent(ctx context.Context, traceID string, eventID int64, fn func(e *domain.Event) (string, error)) (*domain.Event, error) {
	e, ok := m.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	if _, err := fn(e); err != nil {
		return nil, err
	}
	cp := *e
	return &cp, nil
}

func (m *memEvents) ListEventsByInitiator(ctx context.Context, initiatorID int64, offset, limit int) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range m.byID {
		if e.InitiatorID == initiatorID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memEvents) ListEventsByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, id := range ids {
		if e, ok := m.byID[id]; ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memEvents) SearchPublicEvents(ctx context.Context, f event.PublicFilter) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range m.byID {
		if e.State == domain.StatePublished {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memEvents) SearchAdminEvents(ctx context.Context, f event.AdminFilter) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range m.byID {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memEvents) ConfirmedCount(ctx context.Context, eventID int64) (int64, error) {
	return m.confirmed[eventID], nil
}

func (m *memEvents) ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	return m.confirmed, nil
}

func (m *memEvents) VoteCounts(ctx context.Context, eventID int64) (domain.VoteTotals, error) {
	return domain.VoteTotals{}, nil
}

func (m *memEvents) VoteCountsBatch(ctx context.Context, eventIDs []int64) (map[int64]domain.VoteTotals, error) {
	return map[int64]domain.VoteTotals{}, nil
}

// --- Harness ---

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	srv    *httptest.Server
	users  *memUsers
	cats   *memCategories
	events *memEvents
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	usersRepo := newMemUsers()
	catsRepo := newMemCategories()
	eventsRepo := newMemEvents()

	clock := fakeClock{t: testNow}
	eventsSvc := event.New(eventsRepo, catsRepo, usersRepo, nil, nil, clock)

	h := NewHandler(
		user.New(usersRepo),
		category.New(catsRepo),
		eventsSvc,
		nil,
		nil,
		nil,
	)
	router := NewRouter(RouterDeps{Handler: h})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, users: usersRepo, cats: catsRepo, events: eventsRepo}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, e.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

func (e *testEnv) seedUser(t *testing.T, email, name string) int64 {
	t.Helper()
	u, err := domain.NewUser(email, name)
	require.NoError(t, err)
	require.NoError(t, e.users.CreateUser(context.Background(), u))
	return u.ID
}

func (e *testEnv) seedCategory(t *testing.T, name string) int64 {
	t.Helper()
	c, err := domain.NewCategory(name)
	require.NoError(t, err)
	require.NoError(t, e.cats.CreateCategory(context.Background(), c))
	return c.ID
}

// --- Tests ---

func TestUserEndpoints(t *testing.T) {
	t.Run("create returns 201 with envelope", func(t *testing.T) {
		env := newTestEnv(t)

		resp, body := env.do(t, http.MethodPost, "/admin/users", `{"email":"ann@example.com","name":"Ann"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ann@example.com", data["email"])
		assert.Equal(t, float64(1), data["id"])
	})

	t.Run("invalid email is 400", func(t *testing.T) {
		env := newTestEnv(t)

		resp, body := env.do(t, http.MethodPost, "/admin/users", `{"email":"not-an-email","name":"Ann"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		errBody, ok := body["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "validation_error", errBody["code"])
		assert.NotEmpty(t, errBody["request_id"])
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "ann@example.com", "Ann")

		resp, body := env.do(t, http.MethodPost, "/admin/users", `{"email":"ann@example.com","name":"Another Ann"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		errBody := body["error"].(map[string]any)
		assert.Equal(t, "conflict", errBody["code"])
	})

	t.Run("delete unknown user is 404", func(t *testing.T) {
		env := newTestEnv(t)

		resp, _ := env.do(t, http.MethodDelete, "/admin/users/99", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	t.Run("name collision is 409", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCategory(t, "Concerts")

		resp, _ := env.do(t, http.MethodPost, "/admin/categories", `{"name":"Concerts"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("short name is 400", func(t *testing.T) {
		env := newTestEnv(t)

		resp, _ := env.do(t, http.MethodPost, "/admin/categories", `{"name":"ab"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rename round trip", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCategory(t, "Concerts")

		resp, body := env.do(t, http.MethodPatch, "/admin/categories/1", `{"name":"Live music"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Live music", body["data"].(map[string]any)["name"])

		resp, body = env.do(t, http.MethodGet, "/categories/1", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Live music", body["data"].(map[string]any)["name"])
	})
}

func TestEventEndpoints(t *testing.T) {
	createBody := `{
		"annotation": "a walking tour through the old town center",
		"category": 1,
		"description": "we meet at the gates and walk for about two hours",
		"eventDate": "2025-05-10 18:00:00",
		"paid": false,
		"participantLimit": 5,
		"title": "Old town walk"
	}`

	t.Run("create uses the fixed timestamp layout", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "ann@example.com", "Ann")
		env.seedCategory(t, "Walks")

		resp, body := env.do(t, http.MethodPost, "/users/1/events", createBody)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		data := body["data"].(map[string]any)
		assert.Equal(t, "2025-05-10 18:00:00", data["eventDate"])
		assert.Equal(t, "PENDING", data["state"])
		assert.Equal(t, true, data["isAvailable"])
	})

	t.Run("date inside the lead window is 400", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "ann@example.com", "Ann")
		env.seedCategory(t, "Walks")

		tooSoon := strings.Replace(createBody, "2025-05-10 18:00:00", "2025-05-01 13:00:00", 1)
		resp, _ := env.do(t, http.MethodPost, "/users/1/events", tooSoon)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("pending event is publicly invisible", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "ann@example.com", "Ann")
		env.seedCategory(t, "Walks")

		resp, _ := env.do(t, http.MethodPost, "/users/1/events", createBody)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, _ = env.do(t, http.MethodGet, "/events/1", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("publish makes it public and cancel after publish is 403", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "ann@example.com", "Ann")
		env.seedCategory(t, "Walks")

		resp, _ := env.do(t, http.MethodPost, "/users/1/events", createBody)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, body := env.do(t, http.MethodPatch, "/admin/events/1/publish", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		assert.Equal(t, "PUBLISHED", data["state"])
		assert.NotEmpty(t, data["publishedOn"])

		resp, _ = env.do(t, http.MethodGet, "/events/1", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = env.do(t, http.MethodPatch, "/users/1/events/1/cancel", "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("bad sort parameter is 400", func(t *testing.T) {
		env := newTestEnv(t)

		resp, _ := env.do(t, http.MethodGet, "/events?sort=HOTNESS", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		env := newTestEnv(t)

		resp, _ := env.do(t, http.MethodGet, "/events/abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
