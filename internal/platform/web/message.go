package web

import (
	"github.com/vovakirdan/redlight-arcade/internal/games/redlight"
)

// Inbound message types.
const (
	MsgPress   = "press"
	MsgRelease = "release"
	MsgFreeze  = "freeze"
	MsgStart   = "start"
	MsgRestart = "restart"
)

// Outbound message types.
const (
	MsgField    = "field"
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

// ClientMessage is a command from the browser.
// Key carries a direction token for press and release ("ArrowUp", "w", "up").
type ClientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
}

// ServerMessage is pushed to the browser. Exactly one payload is set.
type ServerMessage struct {
	Type     string             `json:"type"`
	Field    *redlight.Field    `json:"field,omitempty"`
	Snapshot *redlight.Snapshot `json:"snapshot,omitempty"`
	Error    string             `json:"error,omitempty"`
}
