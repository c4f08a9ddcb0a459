package explorer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"linebook/internal/bootstrap"
	"linebook/internal/domain/line"
	lberrors "linebook/internal/errors"
	"linebook/internal/httpresponse"
	explorerUC "linebook/internal/usecase/explorer"
	"linebook/internal/utils"
)

type TextRequest struct {
	Text string `json:"text"`
}

type ViewRequest struct {
	Text string `json:"text"`
	Path []int  `json:"path"`
}

type SaveRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type CompileResponse struct {
	Tree        line.RootedPositionTree `json:"tree"`
	Orientation line.Orientation        `json:"orientation"`
}

type LiveResponse struct {
	View  *line.View `json:"view,omitempty"`
	Error string     `json:"error,omitempty"`
	Text  string     `json:"text,omitempty"`
}

type ExplorerHandler struct {
	cfg        bootstrap.Config
	log        *zap.SugaredLogger
	explorerUC *explorerUC.ExplorerUseCase
	upgrader   websocket.Upgrader
}

func NewExplorerHandler(cfg bootstrap.Config, log *zap.SugaredLogger, uc *explorerUC.ExplorerUseCase) *ExplorerHandler {
	return &ExplorerHandler{
		cfg:        cfg,
		log:        log,
		explorerUC: uc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return cfg.IsLocalCors },
		},
	}
}

func (h *ExplorerHandler) Routes(r chi.Router) {
	r.Get("/default", h.HandleDefault)
	r.Post("/compile", h.HandleCompile)
	r.Post("/view", h.HandleView)
	r.Post("/share", h.HandleShare)
	r.Get("/shared", h.HandleShared)
	r.Post("/lines", h.HandleSaveLine)
	r.Get("/lines", h.HandleListLines)
	r.Get("/lines/{id}", h.HandleGetLine)
	r.Get("/live", h.HandleLive)
}

func (h *ExplorerHandler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, TextRequest{Text: explorerUC.DefaultDocument})
}

func (h *ExplorerHandler) HandleCompile(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		h.log.Debugf("compile: %v", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	doc, err := h.explorerUC.Load(r.Context(), req.Text)
	if err != nil {
		h.writeError(w, err, req.Text)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, CompileResponse{
		Tree:        doc.Positions,
		Orientation: doc.Orientation,
	})
}

func (h *ExplorerHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	view, err := h.view(r, req)
	if err != nil {
		h.writeError(w, err, req.Text)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

func (h *ExplorerHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, h.explorerUC.Share(req.Text))
}

// HandleShared never fails: a missing or malformed token is the empty document.
func (h *ExplorerHandler) HandleShared(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(explorerUC.ShareParam)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, TextRequest{Text: h.explorerUC.Open(token)})
}

func (h *ExplorerHandler) HandleSaveLine(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	saved, err := h.explorerUC.Save(r.Context(), req.Title, req.Text)
	if err != nil {
		h.writeError(w, err, req.Text)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, saved)
}

func (h *ExplorerHandler) HandleGetLine(w http.ResponseWriter, r *http.Request) {
	saved, err := h.explorerUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, saved)
}

func (h *ExplorerHandler) HandleListLines(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	lines, err := h.explorerUC.List(r.Context(), limit)
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, lines)
}

// HandleLive recompiles the document on every message, the way an editor
// re-renders on each keystroke.
func (h *ExplorerHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req ViewRequest
		if err = conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debugf("live read: %v", err)
			}
			return
		}

		resp := LiveResponse{}
		view, err := h.view(r, req)
		if err != nil {
			resp.Error = err.Error()
			resp.Text = req.Text
		} else {
			resp.View = &view
		}

		if err = conn.WriteJSON(resp); err != nil {
			h.log.Errorf("live write: %v", err)
			return
		}
	}
}

func (h *ExplorerHandler) view(r *http.Request, req ViewRequest) (line.View, error) {
	doc, err := h.explorerUC.Load(r.Context(), req.Text)
	if err != nil {
		return line.View{}, err
	}
	return h.explorerUC.View(doc, req.Path)
}

func (h *ExplorerHandler) writeError(w http.ResponseWriter, err error, text string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lberrors.ErrNoDocument),
		errors.Is(err, lberrors.ErrDocumentParse),
		errors.Is(err, lberrors.ErrIllegalMove):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, lberrors.ErrInvalidPath):
		status = http.StatusBadRequest
	case errors.Is(err, lberrors.ErrLineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, lberrors.ErrStorageDisabled):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.log.Errorf("request failed: %v", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	h.log.Debugf("request rejected: %v", err)
	httpresponse.WriteErrorResponse(w, status, err, text)
}
