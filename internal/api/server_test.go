package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/wishlists/internal/metrics"
	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository/memory"
	"github.com/Kerhoff/wishlists/internal/service"
)

const jsonType = "application/json"

type testEnv struct {
	t       *testing.T
	server  *httptest.Server
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger, _ := test.NewNullLogger()
	m := metrics.New()
	svc := service.New(memory.NewStore(logger), logger)
	srv := httptest.NewServer(NewServer(svc, logger, m).Handler())
	t.Cleanup(srv.Close)

	return &testEnv{t: t, server: srv, metrics: m}
}

func (e *testEnv) do(method, path, contentType string, body any) (*http.Response, []byte) {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}

	url := path
	if !strings.HasPrefix(path, "http") {
		url = e.server.URL + path
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(e.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp, data
}

func (e *testEnv) createWishlist(payload map[string]any) wishlistResponse {
	e.t.Helper()

	resp, body := e.do(http.MethodPost, "/wishlists", jsonType, payload)
	require.Equal(e.t, http.StatusCreated, resp.StatusCode, string(body))

	var w wishlistResponse
	decode(e.t, body, &w)
	return w
}

func (e *testEnv) addItem(wishlistID int64, payload map[string]any) models.Item {
	e.t.Helper()

	resp, body := e.do(http.MethodPost, fmt.Sprintf("/wishlists/%d/items", wishlistID), jsonType, payload)
	require.Equal(e.t, http.StatusCreated, resp.StatusCode, string(body))

	var item models.Item
	decode(e.t, body, &item)
	return item
}

func decode(t *testing.T, data []byte, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, dst), string(data))
}

// Wishlists carry updated_time as an HTTP-date, which time.Time cannot
// unmarshal, so responses are read back through this shape.
type wishlistResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	UpdatedTime *string       `json:"updated_time"`
	Note        string        `json:"note"`
	IsFavorite  bool          `json:"is_favorite"`
	Items       []models.Item `json:"items"`
}

var categories = []string{"food", "sports", "books", "garden", "toys"}

func fakeWishlist() map[string]any {
	return map[string]any{
		"name":        fmt.Sprintf("list-%d", rand.IntN(1_000_000)),
		"note":        fmt.Sprintf("note %d", rand.IntN(1000)),
		"is_favorite": rand.IntN(2) == 1,
	}
}

func fakeItem() map[string]any {
	return map[string]any{
		"name":        fmt.Sprintf("item-%d", rand.IntN(1_000_000)),
		"category":    categories[rand.IntN(len(categories))],
		"quantity":    rand.IntN(10) + 1,
		"price":       float64(rand.IntN(100000)) / 100,
		"note":        "fake",
		"is_favorite": rand.IntN(2) == 1,
	}
}

func errorBody(t *testing.T, data []byte) errorResponse {
	t.Helper()
	var e errorResponse
	decode(t, data, &e)
	return e
}

func TestHealthAndIndex(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":200,"message":"Healthy"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	resp, body = env.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "Wishlist REST API Service")
}

func TestCreateWishlistRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	payload := fakeWishlist()

	resp, body := env.do(http.MethodPost, "/wishlists", jsonType, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	location := resp.Header.Get("Location")
	require.NotEmpty(t, location)

	resp, body = env.do(http.MethodGet, location, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got wishlistResponse
	decode(t, body, &got)
	assert.NotZero(t, got.ID)
	assert.Equal(t, payload["name"], got.Name)
	assert.Equal(t, payload["note"], got.Note)
	assert.Equal(t, payload["is_favorite"], got.IsFavorite)
	require.NotNil(t, got.UpdatedTime)
	_, err := http.ParseTime(*got.UpdatedTime)
	assert.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestBirthdayScenario(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(http.MethodPost, "/wishlists", jsonType,
		`{"name":"Birthday","note":"gifts","is_favorite":false,"items":[]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var wishlist wishlistResponse
	decode(t, body, &wishlist)
	require.NotZero(t, wishlist.ID)

	resp, body = env.do(http.MethodPost, fmt.Sprintf("/wishlists/%d/items", wishlist.ID), jsonType,
		`{"name":"Bike","category":"sports","quantity":1,"price":199.99}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var item models.Item
	decode(t, body, &item)
	assert.Equal(t, wishlist.ID, item.WishlistID)
	assert.Equal(t, fmt.Sprintf("%s/wishlists/%d/items/%d", env.server.URL, wishlist.ID, item.ID), resp.Header.Get("Location"))

	resp, body = env.do(http.MethodGet, fmt.Sprintf("/wishlists/%d", wishlist.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got wishlistResponse
	decode(t, body, &got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 199.99, got.Items[0].Price)
}

func TestCreateWishlistWithItems(t *testing.T) {
	env := newTestEnv(t)

	payload := fakeWishlist()
	payload["items"] = []map[string]any{fakeItem(), fakeItem()}
	created := env.createWishlist(payload)

	resp, body := env.do(http.MethodGet, fmt.Sprintf("/wishlists/%d/items", created.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.Item
	decode(t, body, &items)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, created.ID, item.WishlistID)
	}
}

func TestCreateWishlistValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		fields      []string
	}{
		{"missing content type", "", `{"name":"x"}`, http.StatusUnsupportedMediaType, nil},
		{"wrong content type", "text/plain", `{"name":"x"}`, http.StatusUnsupportedMediaType, nil},
		{"content type with parameters", "application/json; charset=utf-8", `{"name":"x"}`, http.StatusUnsupportedMediaType, nil},
		{"list body", jsonType, `[{"name":"x"}]`, http.StatusBadRequest, nil},
		{"empty body", jsonType, ``, http.StatusBadRequest, nil},
		{"missing name and bad item", jsonType, `{"items":[{"name":"Bike"}]}`, http.StatusBadRequest,
			[]string{"name", "items[0].quantity", "items[0].category", "items[0].price"}},
		{"body too large", jsonType, `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`, http.StatusRequestEntityTooLarge, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(http.MethodPost, "/wishlists", tt.contentType, tt.body)
			require.Equal(t, tt.status, resp.StatusCode, string(body))

			e := errorBody(t, body)
			assert.Equal(t, tt.status, e.Status)
			assert.NotEmpty(t, e.Message)

			fields := []string{}
			for _, f := range e.Errors {
				fields = append(fields, f.Field)
			}
			if tt.fields == nil {
				tt.fields = []string{}
			}
			assert.ElementsMatch(t, tt.fields, fields)
		})
	}
}

func TestRouterErrorsAreJSON(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(http.MethodPatch, "/wishlists", jsonType, `{}`)
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.Equal(t, http.StatusMethodNotAllowed, errorBody(t, body).Status)

	resp, body = env.do(http.MethodGet, "/nowhere", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", errorBody(t, body).Error)

	resp, body = env.do(http.MethodGet, "/wishlists/abc", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, errorBody(t, body).Message, "abc")
}

func TestGetMissingWishlist(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(http.MethodGet, "/wishlists/0", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Wishlist with id '0' could not be found.", errorBody(t, body).Message)
}

func TestUpdateWishlist(t *testing.T) {
	env := newTestEnv(t)
	created := env.createWishlist(fakeWishlist())
	env.addItem(created.ID, fakeItem())

	resp, body := env.do(http.MethodPut, fmt.Sprintf("/wishlists/%d", created.ID), jsonType,
		`{"name":"Renamed","note":"new","is_favorite":true,"updated_time":"Tue, 03 Dec 2024 15:18:50 GMT","items":[]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got wishlistResponse
	decode(t, body, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.IsFavorite)
	require.NotNil(t, got.UpdatedTime)
	assert.Equal(t, "Tue, 03 Dec 2024 15:18:50 GMT", *got.UpdatedTime)
	assert.Len(t, got.Items, 1)

	resp, body = env.do(http.MethodPut, fmt.Sprintf("/wishlists/%d", created.ID), jsonType,
		`{"name":"Renamed","items":[{"name":"Kite","category":"toys","quantity":2,"price":12.5}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	decode(t, body, &got)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Kite", got.Items[1].Name)
	assert.Equal(t, created.ID, got.Items[1].WishlistID)
	assert.NotZero(t, got.Items[1].ID)

	resp, body = env.do(http.MethodPut, fmt.Sprintf("/wishlists/%d", created.ID), jsonType,
		`{"name":"Renamed","items":[{"name":"Broken"}]}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
	_, body = env.do(http.MethodGet, fmt.Sprintf("/wishlists/%d", created.ID), "", nil)
	decode(t, body, &got)
	assert.Len(t, got.Items, 2)

	resp, _ = env.do(http.MethodPut, "/wishlists/999", jsonType, `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(http.MethodPut, fmt.Sprintf("/wishlists/%d", created.ID), jsonType, `{"note":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteWishlistIsIdempotentAndCascades(t *testing.T) {
	env := newTestEnv(t)
	created := env.createWishlist(fakeWishlist())
	item := env.addItem(created.ID, fakeItem())

	for i := 0; i < 2; i++ {
		resp, body := env.do(http.MethodDelete, fmt.Sprintf("/wishlists/%d", created.ID), "", nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Empty(t, body)
	}

	resp, _ := env.do(http.MethodDelete, "/wishlists/424242", "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(http.MethodGet, fmt.Sprintf("/wishlists/%d/items/%d", created.ID, item.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := env.do(http.MethodGet, "/items", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestFavoriteToggles(t *testing.T) {
	env := newTestEnv(t)
	created := env.createWishlist(fakeWishlist())
	item := env.addItem(created.ID, fakeItem())

	for _, path := range []string{
		fmt.Sprintf("/wishlists/%d/favorite", created.ID),
		fmt.Sprintf("/wishlists/%d/items/%d/favorite", created.ID, item.ID),
	} {
		for i := 0; i < 2; i++ {
			resp, body := env.do(http.MethodPut, path, "", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			var got map[string]any
			decode(t, body, &got)
			assert.Equal(t, true, got["is_favorite"])

			resp, body = env.do(http.MethodDelete, path, "", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			decode(t, body, &got)
			assert.Equal(t, false, got["is_favorite"])
		}
	}

	resp, _ := env.do(http.MethodPut, "/wishlists/999/favorite", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItemParentMismatch(t *testing.T) {
	env := newTestEnv(t)
	first := env.createWishlist(fakeWishlist())
	second := env.createWishlist(fakeWishlist())
	item := env.addItem(first.ID, fakeItem())

	path := fmt.Sprintf("/wishlists/%d/items/%d", second.ID, item.ID)

	resp, body := env.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("Item with id '%d' was not found in Wishlist '%d'.", item.ID, second.ID), errorBody(t, body).Message)

	resp, _ = env.do(http.MethodPut, path+"/favorite", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(http.MethodGet, fmt.Sprintf("/wishlists/%d/items/%d", first.ID, item.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(http.MethodPost, "/wishlists/999/items", jsonType, fakeItem())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateItemWithBadQuantityKeepsStoredValue(t *testing.T) {
	env := newTestEnv(t)
	created := env.createWishlist(fakeWishlist())
	item := env.addItem(created.ID, map[string]any{"name": "Bike", "category": "sports", "quantity": 2, "price": 10})
	path := fmt.Sprintf("/wishlists/%d/items/%d", created.ID, item.ID)

	resp, body := env.do(http.MethodPut, path, jsonType, `{"name":"Bike","category":"sports","quantity":"lots","price":10}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := errorBody(t, body)
	require.Len(t, e.Errors, 1)
	assert.Equal(t, "quantity", e.Errors[0].Field)

	resp, body = env.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got models.Item
	decode(t, body, &got)
	assert.Equal(t, 2, got.Quantity)

	resp, body = env.do(http.MethodPut, path, jsonType, `{"name":"Bike","category":"sports","quantity":5,"price":12.5,"note":"blue"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	decode(t, body, &got)
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, "blue", got.Note)
	assert.Equal(t, item.ID, got.ID)
}

func TestListWishlistItemsFilters(t *testing.T) {
	env := newTestEnv(t)
	created := env.createWishlist(fakeWishlist())
	env.addItem(created.ID, map[string]any{"name": "Apple", "category": "food", "quantity": 3, "price": 1.5})
	env.addItem(created.ID, map[string]any{"name": "Bread", "category": "food", "quantity": 1, "price": 3, "is_favorite": true})
	env.addItem(created.ID, map[string]any{"name": "Ball", "category": "sports", "quantity": 1, "price": 3})

	names := func(query string) (int, []string) {
		resp, body := env.do(http.MethodGet, fmt.Sprintf("/wishlists/%d/items%s", created.ID, query), "", nil)
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, nil
		}
		var items []models.Item
		decode(t, body, &items)
		out := []string{}
		for _, item := range items {
			out = append(out, item.Name)
		}
		return resp.StatusCode, out
	}

	tests := []struct {
		query  string
		status int
		want   []string
	}{
		{"", http.StatusOK, []string{"Apple", "Bread", "Ball"}},
		{"?category=food", http.StatusOK, []string{"Apple", "Bread"}},
		{"?category=food&price=3&is_favorite=false", http.StatusOK, []string{"Apple", "Bread"}},
		{"?price=3", http.StatusOK, []string{"Bread", "Ball"}},
		{"?price=cheap", http.StatusOK, []string{"Apple", "Bread", "Ball"}},
		{"?is_favorite=YES", http.StatusOK, []string{"Bread"}},
		{"?name=ball", http.StatusOK, []string{"Ball"}},
		{"?name=apple&category=sports", http.StatusOK, []string{"Ball"}},
		{"?name=car&category=food", http.StatusNotFound, nil},
		{"?unknown=1", http.StatusOK, []string{"Apple", "Bread", "Ball"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, got := names(tt.query)
			require.Equal(t, tt.status, status)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	resp, _ := env.do(http.MethodGet, "/wishlists/999/items", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListWishlistsFilters(t *testing.T) {
	env := newTestEnv(t)
	env.createWishlist(map[string]any{"name": "Birthday", "is_favorite": true})
	env.createWishlist(map[string]any{"name": "Birthday", "is_favorite": false})
	env.createWishlist(map[string]any{"name": "Garden", "is_favorite": false})

	count := func(query string) int {
		resp, body := env.do(http.MethodGet, "/wishlists"+query, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var lists []wishlistResponse
		decode(t, body, &lists)
		return len(lists)
	}

	assert.Equal(t, 3, count(""))
	assert.Equal(t, 2, count("?name=Birthday"))
	assert.Equal(t, 0, count("?name=birthday"))
	assert.Equal(t, 1, count("?is_favorite=true"))
	assert.Equal(t, 2, count("?is_favorite=false"))
	assert.Equal(t, 1, count("?name=Garden&is_favorite=true"))
}

func TestQueryItemsAcrossWishlists(t *testing.T) {
	env := newTestEnv(t)

	first := env.createWishlist(map[string]any{"name": "One", "updated_time": "Tue, 03 Dec 2024 15:18:50 GMT"})
	second := env.createWishlist(map[string]any{"name": "Two", "updated_time": "2024-12-04T10:00:00Z"})
	env.addItem(first.ID, map[string]any{"name": "Bike", "category": "sports", "quantity": 1, "price": 199.99, "is_favorite": true})
	env.addItem(second.ID, map[string]any{"name": "Mountain bike", "category": "Sports", "quantity": 1, "price": 500})
	env.addItem(second.ID, map[string]any{"name": "Kite", "category": "toys", "quantity": 1, "price": 20})

	// Adding items bumps updated_time, so reset it before filtering on it.
	resp, body := env.do(http.MethodPut, fmt.Sprintf("/wishlists/%d", first.ID), jsonType,
		`{"name":"One","updated_time":"Tue, 03 Dec 2024 15:18:50 GMT"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	names := func(query string) []string {
		resp, body := env.do(http.MethodGet, "/items"+query, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var items []models.Item
		decode(t, body, &items)
		out := []string{}
		for _, item := range items {
			out = append(out, item.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Bike", "Mountain bike", "Kite"}, names(""))
	assert.Equal(t, []string{"Bike", "Mountain bike"}, names("?name=BIKE"))
	assert.Equal(t, []string{"Bike", "Mountain bike"}, names("?category=sport"))
	assert.Equal(t, []string{"Mountain bike"}, names("?category=sport&price=500"))
	assert.Equal(t, []string{"Bike"}, names("?name=bike&is_favorite=1"))
	assert.Equal(t, []string{"Bike"}, names("?updated_time=Tue,%2003%20Dec%202024%2015:18:50%20GMT"))
	assert.Equal(t, []string{"Bike"}, names("?updated_time=2024-12-03T15:18:50Z"))
	assert.Equal(t, []string{"Bike", "Mountain bike", "Kite"}, names("?updated_time=whenever"))
}

func TestMetricsRecordRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodGet, "/wishlists/7", "", nil)
	env.do(http.MethodGet, "/missing", "", nil)

	rec := httptest.NewRecorder()
	env.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rec.Body.String()

	assert.Contains(t, out, `wishlists_http_requests_total{code="404",method="GET",route="GET /wishlists/{id}"} 1`)
	assert.Contains(t, out, `wishlists_http_requests_total{code="404",method="GET",route="unmatched"} 1`)
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")

	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}

func TestParseBool(t *testing.T) {
	for in, want := range map[string]bool{
		"true": true, "TRUE": true, "yes": true, "Yes": true, "1": true,
		"false": false, "no": false, "0": false, "maybe": false,
	} {
		assert.Equal(t, want, parseBool(in), in)
	}
}

func TestPriceParam(t *testing.T) {
	tests := []struct {
		raw  string
		want *float64
	}{
		{"199.99", func() *float64 { v := 199.99; return &v }()},
		{"0", func() *float64 { v := 0.0; return &v }()},
		{"", nil},
		{"cheap", nil},
		{"NaN", nil},
		{"Inf", nil},
		{"-Infinity", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, priceParam(url.Values{"price": {tt.raw}}))
		})
	}
}
