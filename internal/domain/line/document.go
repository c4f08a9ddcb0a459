package line

import "time"

// Document is a compiled line document ready to be explored.
type Document struct {
	Text        string             `json:"text"`
	Moves       RootedMoveTree     `json:"moves"`
	Positions   RootedPositionTree `json:"positions"`
	Orientation Orientation        `json:"orientation"`
}

// Candidate is one move available from the current navigation state.
type Candidate struct {
	Index     int    `json:"index"`
	Token     string `json:"token"`
	From      string `json:"from"`
	To        string `json:"to"`
	IsBlunder bool   `json:"is_blunder"`
	Position  string `json:"position"`
}

// View is what a renderer needs for one navigation state.
type View struct {
	Path        []int       `json:"path"`
	Position    string      `json:"position"`
	Candidates  []Candidate `json:"candidates"`
	Orientation Orientation `json:"orientation"`
	BoardSide   Orientation `json:"board_side"`
}

type ShareLink struct {
	Token string `json:"token"`
	URL   string `json:"url,omitempty"`
}

type SavedLine struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Text      string    `json:"text" bson:"text"`
	Token     string    `json:"token" bson:"token"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
