package explorer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linebook/internal/adapters/chessrules"
	"linebook/internal/bootstrap"
	"linebook/internal/domain/line"
	"linebook/internal/httpresponse"
	explorerUC "linebook/internal/usecase/explorer"
)

const document = "e4 e5 Nf3 Nc6 c3:\n  - Bc5 d4\n  - d6 d4\n"

type envelope struct {
	Status int             `json:"Status"`
	Body   json.RawMessage `json:"Body"`
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zap.NewNop().Sugar()
	cfg := bootstrap.Config{IsLocalCors: true}
	uc := explorerUC.NewExplorerUseCase(chessrules.New(), log)

	r := chi.NewRouter()
	NewExplorerHandler(cfg, log, uc).Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHandleCompile(t *testing.T) {
	h := newRouter(t)

	rec, env := do(t, h, http.MethodPost, "/compile", TextRequest{Text: document})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CompileResponse
	require.NoError(t, json.Unmarshal(env.Body, &resp))
	assert.Equal(t, line.OrientationBlack, resp.Orientation)
	assert.Equal(t, chessrules.StartFEN, resp.Tree.Start)
	require.Len(t, resp.Tree.Children, 1)
	assert.Equal(t, "e4", resp.Tree.Children[0].Token)
}

func TestHandleCompile_RejectsWholeDocument(t *testing.T) {
	h := newRouter(t)
	text := "e4 e5 Nf3 Nc6 c3:\n  - Bc5 d4\n  - Ke2\n"

	rec, env := do(t, h, http.MethodPost, "/compile", TextRequest{Text: text})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp httpresponse.ErrorResponse
	require.NoError(t, json.Unmarshal(env.Body, &resp))
	assert.Contains(t, resp.ErrorDescription, "Ke2")
	assert.Equal(t, text, resp.Text)
}

func TestHandleCompile_BadJSON(t *testing.T) {
	h := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(`{"txt": 1}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleView(t *testing.T) {
	h := newRouter(t)

	rec, env := do(t, h, http.MethodPost, "/view", ViewRequest{Text: document, Path: []int{0, 0, 0, 0, 0}})
	require.Equal(t, http.StatusOK, rec.Code)

	var view line.View
	require.NoError(t, json.Unmarshal(env.Body, &view))
	require.Len(t, view.Candidates, 2)
	assert.Equal(t, "f8", view.Candidates[0].From)
	assert.Equal(t, "c5", view.Candidates[0].To)
	assert.Equal(t, line.OrientationBlack, view.BoardSide)

	rec, _ = do(t, h, http.MethodPost, "/view", ViewRequest{Text: document, Path: []int{3}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleShareAndShared(t *testing.T) {
	h := newRouter(t)

	rec, env := do(t, h, http.MethodPost, "/share", TextRequest{Text: document})
	require.Equal(t, http.StatusOK, rec.Code)

	var link line.ShareLink
	require.NoError(t, json.Unmarshal(env.Body, &link))
	require.NotEmpty(t, link.Token)

	rec, env = do(t, h, http.MethodGet, "/shared?l="+link.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var opened TextRequest
	require.NoError(t, json.Unmarshal(env.Body, &opened))
	assert.Equal(t, document, opened.Text)

	for _, target := range []string{"/shared", "/shared?l=%25zz", "/shared?l=CA"} {
		rec, env = do(t, h, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rec.Code, target)
		require.NoError(t, json.Unmarshal(env.Body, &opened))
		assert.Equal(t, "", opened.Text, target)
	}
}

func TestHandleLines_StorageDisabled(t *testing.T) {
	h := newRouter(t)

	rec, _ := do(t, h, http.MethodPost, "/lines", SaveRequest{Title: "t", Text: document})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/lines/abc", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleDefault(t *testing.T) {
	h := newRouter(t)

	rec, env := do(t, h, http.MethodGet, "/default", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp TextRequest
	require.NoError(t, json.Unmarshal(env.Body, &resp))
	assert.Equal(t, explorerUC.DefaultDocument, resp.Text)
}

func TestHandleLive(t *testing.T) {
	srv := httptest.NewServer(newRouter(t))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ViewRequest{Text: document, Path: []int{0}}))
	var resp LiveResponse
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.View)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.View.Candidates, 1)
	assert.Equal(t, "e5", resp.View.Candidates[0].Token)

	// A broken edit reports the failure and keeps the connection open.
	require.NoError(t, conn.WriteJSON(ViewRequest{Text: "e4 e4"}))
	resp = LiveResponse{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Nil(t, resp.View)
	assert.Contains(t, resp.Error, "illegal move")
	assert.Equal(t, "e4 e4", resp.Text)

	require.NoError(t, conn.WriteJSON(ViewRequest{Text: "d4"}))
	resp = LiveResponse{}
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.View)
	assert.Equal(t, line.OrientationUnset, resp.View.Orientation)
}
