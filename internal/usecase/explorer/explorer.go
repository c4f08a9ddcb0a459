package explorer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"linebook/internal/codec"
	"linebook/internal/domain/line"
	lberrors "linebook/internal/errors"
	"linebook/internal/metrics"
	"linebook/internal/notation"
	"linebook/internal/usecase/compiler"
	"linebook/internal/usecase/orientation"
)

// ShareParam is the query parameter that carries a share token.
const ShareParam = "l"

// Rules plays moves and locates them on the board.
type Rules interface {
	compiler.Rules
	Squares(position, token string) (from, to string, err error)
}

type DocumentCache interface {
	GetDocument(ctx context.Context, digest string) (*line.Document, bool, error)
	PutDocument(ctx context.Context, digest string, doc *line.Document) error
}

type LineStore interface {
	NewID() string
	SaveLine(ctx context.Context, saved line.SavedLine) error
	GetLine(ctx context.Context, id string) (line.SavedLine, error)
	ListLines(ctx context.Context, limit int64) ([]line.SavedLine, error)
}

type ExplorerUseCase struct {
	rules     Rules
	log       *zap.SugaredLogger
	cache     DocumentCache
	store     LineStore
	shareBase string
	boardSide line.Orientation
	now       func() time.Time
}

type Option func(*ExplorerUseCase)

func WithCache(cache DocumentCache) Option {
	return func(e *ExplorerUseCase) { e.cache = cache }
}

func WithStore(store LineStore) Option {
	return func(e *ExplorerUseCase) { e.store = store }
}

// WithShareBase sets the page URL share links point at.
func WithShareBase(base string) Option {
	return func(e *ExplorerUseCase) { e.shareBase = base }
}

// WithDefaultBoardSide sets the side shown when orientation is not decided.
func WithDefaultBoardSide(side line.Orientation) Option {
	return func(e *ExplorerUseCase) { e.boardSide = side }
}

func NewExplorerUseCase(rules Rules, log *zap.SugaredLogger, opts ...Option) *ExplorerUseCase {
	e := &ExplorerUseCase{
		rules:     rules,
		log:       log,
		boardSide: line.OrientationWhite,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load parses, compiles and orients text. Identical text always yields an
// identical document, so results are memoized when a cache is configured.
func (e *ExplorerUseCase) Load(ctx context.Context, text string) (*line.Document, error) {
	digest := Digest(text)

	if e.cache != nil {
		doc, ok, err := e.cache.GetDocument(ctx, digest)
		if err != nil {
			e.log.Warnf("document cache get failed: %v", err)
		} else if ok {
			metrics.DocumentLoads.WithLabelValues(metrics.OutcomeCacheHit).Inc()
			return doc, nil
		}
	}

	start := time.Now()
	doc, err := e.compile(text)
	metrics.CompileDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DocumentLoads.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}
	metrics.DocumentLoads.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.DocumentPlies.Observe(float64(doc.Moves.Depth()))

	if e.cache != nil {
		if err = e.cache.PutDocument(ctx, digest, doc); err != nil {
			e.log.Warnf("document cache put failed: %v", err)
		}
	}
	return doc, nil
}

func (e *ExplorerUseCase) compile(text string) (*line.Document, error) {
	moves, err := notation.Parse(text)
	if err != nil {
		return nil, err
	}

	positions, err := compiler.Compile(moves, e.rules)
	if err != nil {
		return nil, err
	}

	return &line.Document{
		Text:        text,
		Moves:       moves,
		Positions:   positions,
		Orientation: orientation.Infer(moves),
	}, nil
}

// View describes the navigation state reached by following path, a list
// of child indices from the root.
func (e *ExplorerUseCase) View(doc *line.Document, path []int) (line.View, error) {
	position := doc.Positions.Start
	children := doc.Positions.Children

	for depth, idx := range path {
		if idx < 0 || idx >= len(children) {
			return line.View{}, fmt.Errorf("%w: index %d at depth %d", lberrors.ErrInvalidPath, idx, depth)
		}
		position = children[idx].Position
		children = children[idx].Children
	}

	candidates := make([]line.Candidate, 0, len(children))
	for i, child := range children {
		move, _ := compiler.StripMarker(child.Token)
		from, to, err := e.rules.Squares(position, move)
		if err != nil {
			e.log.Errorf("locate compiled move %q: %v", child.Token, err)
			return line.View{}, fmt.Errorf("%w: %v", lberrors.ErrInternal, err)
		}
		candidates = append(candidates, line.Candidate{
			Index:     i,
			Token:     child.Token,
			From:      from,
			To:        to,
			IsBlunder: child.IsBlunder,
			Position:  child.Position,
		})
	}

	return line.View{
		Path:        append([]int{}, path...),
		Position:    position,
		Candidates:  candidates,
		Orientation: doc.Orientation,
		BoardSide:   orientation.Resolve(doc.Orientation, e.boardSide),
	}, nil
}

// Share packs text into a share token. Characters the codec cannot carry
// are dropped and logged.
func (e *ExplorerUseCase) Share(text string) line.ShareLink {
	if dropped := codec.Unsupported(text); len(dropped) > 0 {
		e.log.Warnf("share link drops unsupported characters %q", string(dropped))
	}

	link := line.ShareLink{Token: codec.Compress(text)}
	if e.shareBase != "" {
		link.URL = e.shareBase + "?" + ShareParam + "=" + link.Token
	}
	metrics.ShareTokens.WithLabelValues("compress", metrics.OutcomeOK).Inc()
	return link
}

// Open unpacks a share token. Malformed tokens open the empty document.
func (e *ExplorerUseCase) Open(token string) string {
	text, err := codec.Decompress(token)
	if err != nil {
		e.log.Infof("ignoring malformed share token: %v", err)
		metrics.ShareTokens.WithLabelValues("decompress", "malformed").Inc()
		return ""
	}
	metrics.ShareTokens.WithLabelValues("decompress", metrics.OutcomeOK).Inc()
	return text
}

// OpenURL reads the share token from a full share link.
func (e *ExplorerUseCase) OpenURL(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	raw := u.Query().Get(ShareParam)
	// Query().Get already unescaped once; escape again so Open sees a token.
	return e.Open(url.QueryEscape(raw))
}

// Save stores a document after checking it compiles.
func (e *ExplorerUseCase) Save(ctx context.Context, title, text string) (line.SavedLine, error) {
	if e.store == nil {
		return line.SavedLine{}, lberrors.ErrStorageDisabled
	}
	if _, err := e.Load(ctx, text); err != nil {
		return line.SavedLine{}, err
	}

	saved := line.SavedLine{
		ID:        e.store.NewID(),
		Title:     title,
		Text:      text,
		Token:     codec.Compress(text),
		CreatedAt: e.now().UTC(),
	}
	if err := e.store.SaveLine(ctx, saved); err != nil {
		return line.SavedLine{}, err
	}
	return saved, nil
}

func (e *ExplorerUseCase) Get(ctx context.Context, id string) (line.SavedLine, error) {
	if e.store == nil {
		return line.SavedLine{}, lberrors.ErrStorageDisabled
	}
	return e.store.GetLine(ctx, id)
}

func (e *ExplorerUseCase) List(ctx context.Context, limit int64) ([]line.SavedLine, error) {
	if e.store == nil {
		return nil, lberrors.ErrStorageDisabled
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return e.store.ListLines(ctx, limit)
}

// Digest is the cache key of a document text.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func outcome(err error) string {
	switch {
	case errors.Is(err, lberrors.ErrNoDocument):
		return metrics.OutcomeNoDocument
	case errors.Is(err, lberrors.ErrIllegalMove):
		return metrics.OutcomeIllegal
	default:
		return metrics.OutcomeParseError
	}
}
