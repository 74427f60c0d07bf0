package agent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/menu-concierge/ordering"
	"github.com/tmc/langchaingo/llms"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postChat(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()

	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid error envelope %s: %v", w.Body.String(), err)
	}

	return env.Error
}

func TestChatSuccess(t *testing.T) {
	model := &fakeModel{responses: []*llms.ContentResponse{
		toolResponse(ordering.OpAddToCart, `{"item_id":"burger-01","quantity":2}`),
		textResponse("Added!"),
	}}
	r := NewRouter(newTestHandler(t, model))

	w := postChat(t, r, `{"message":"two burgers","sessionId":"s1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected any origin to be allowed, got %q", got)
	}

	var env struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	for _, key := range []string{"reply", "cart", "cartItems", "cartTotal", "conversationHistory", "allergyRestrictions", "dietaryPreferences"} {
		if _, ok := env.Data[key]; !ok {
			t.Errorf("expected %q in response", key)
		}
	}
	if string(env.Data["cartTotal"]) != "19" {
		t.Errorf("expected cartTotal 19, got %s", env.Data["cartTotal"])
	}
	if string(env.Data["cart"]) != `{"burger-01":2}` {
		t.Errorf("unexpected cart %s", env.Data["cart"])
	}
	if string(env.Data["allergyRestrictions"]) != "[]" {
		t.Errorf("expected empty allergy list, got %s", env.Data["allergyRestrictions"])
	}
}

func TestChatMissingMessage(t *testing.T) {
	model := &fakeModel{}
	r := NewRouter(newTestHandler(t, model))

	w := postChat(t, r, `{"message":"","sessionId":"s1"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != CodeValidation {
		t.Errorf("expected %s, got %+v", CodeValidation, body)
	}
	if model.callCount() != 0 {
		t.Errorf("expected no outbound calls, got %d", model.callCount())
	}
}

func TestChatInvalidBody(t *testing.T) {
	r := NewRouter(newTestHandler(t, &fakeModel{}))

	w := postChat(t, r, `{"message":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != CodeValidation {
		t.Errorf("expected %s, got %+v", CodeValidation, body)
	}
}

func TestChatMissingCredential(t *testing.T) {
	r := NewRouter(newTestHandler(t, nil))

	w := postChat(t, r, `{"message":"hi"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != CodeConfiguration {
		t.Errorf("expected %s, got %+v", CodeConfiguration, body)
	}
}

func TestChatUpstreamError(t *testing.T) {
	model := &fakeModel{errs: []error{http.ErrHandlerTimeout}}
	r := NewRouter(newTestHandler(t, model))

	w := postChat(t, r, `{"message":"hi"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != CodeUpstream {
		t.Errorf("expected %s, got %+v", CodeUpstream, body)
	}
}

func TestChatAPIAlias(t *testing.T) {
	model := &fakeModel{responses: []*llms.ContentResponse{textResponse("hello")}}
	r := NewRouter(newTestHandler(t, model))

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestPreflight(t *testing.T) {
	r := NewRouter(newTestHandler(t, nil))

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code >= 300 {
		t.Fatalf("expected successful preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected any origin, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("expected POST to be allowed, got %q", got)
	}
}

func TestHealth(t *testing.T) {
	for _, tc := range []struct {
		name    string
		model   llms.Model
		enabled bool
	}{
		{"enabled", &fakeModel{}, true},
		{"disabled", nil, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRouter(newTestHandler(t, tc.model))

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var body struct {
				Status    string `json:"status"`
				AIEnabled bool   `json:"ai_enabled"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body.Status != "ok" || body.AIEnabled != tc.enabled {
				t.Errorf("unexpected health %+v", body)
			}
		})
	}
}

func TestMenuEndpoint(t *testing.T) {
	r := NewRouter(newTestHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Categories []struct {
			Name  string `json:"name"`
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
		} `json:"categories"`
		Allergens      []string `json:"allergens"`
		WelcomeMessage string   `json:"welcomeMessage"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body.Categories) != 2 || body.Categories[0].Items[0].ID != "burger-01" {
		t.Errorf("unexpected categories %+v", body.Categories)
	}
	if len(body.Allergens) != 5 || body.WelcomeMessage == "" {
		t.Errorf("unexpected menu body %s", w.Body.String())
	}
}

func TestWebsocketChat(t *testing.T) {
	model := &fakeModel{responses: []*llms.ContentResponse{textResponse("Welcome!")}}
	srv := httptest.NewServer(NewRouter(newTestHandler(t, model)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"message":""}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	var errEnv ErrorEnvelope
	if err := conn.ReadJSON(&errEnv); err != nil {
		t.Fatalf("read: %v", err)
	}
	if errEnv.Error.Code != CodeValidation {
		t.Errorf("expected validation error, got %+v", errEnv)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	errEnv = ErrorEnvelope{}
	if err := conn.ReadJSON(&errEnv); err != nil {
		t.Fatalf("read: %v", err)
	}
	if errEnv.Error.Code != CodeValidation {
		t.Errorf("expected validation error for malformed frame, got %+v", errEnv)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(Request{Message: "hi", SessionID: "ws-1"}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, buf.Bytes()); err != nil {
		t.Fatalf("write: %v", err)
	}

	var ok SuccessEnvelope
	if err := conn.ReadJSON(&ok); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ok.Data == nil || ok.Data.Reply != "Welcome!" {
		t.Errorf("unexpected reply %+v", ok.Data)
	}
}
