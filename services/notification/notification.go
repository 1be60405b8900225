package notification

import (
	"fmt"

	"restaurante360/constants"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Session keys set on every websocket connection.
const (
	KeyUserID = "userID"
	KeyRole   = "role"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// Event is a live-update pushed to connected clients after a commit.
type Event struct {
	Collection string      `json:"collection"`
	Action     string      `json:"action"`
	ID         string      `json:"id"`
	Data       interface{} `json:"data,omitempty"`

	// Audience lists user ids that may read the document.
	Audience []string `json:"-"`
	// Managers delivers the event to every manager-level session as well.
	Managers bool `json:"-"`
}

type Publisher interface {
	Publish(evt Event) error
}

// MelodyHub fans events out to websocket sessions allowed to see them.
type MelodyHub struct {
	m *melody.Melody
}

func NewMelodyHub(m *melody.Melody) *MelodyHub {
	return &MelodyHub{m: m}
}

func (h *MelodyHub) Publish(evt Event) error {
	if h.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return h.m.BroadcastFilter(payload, func(s *melody.Session) bool {
		userID, _ := s.Get(KeyUserID)
		role, _ := s.Get(KeyRole)
		uid, _ := userID.(string)
		r, _ := role.(string)
		return CanReceive(evt, uid, r)
	})
}

// CanReceive reports whether a session of userID/role may see evt.
func CanReceive(evt Event, userID, role string) bool {
	if userID == "" {
		return false
	}
	if evt.Managers && constants.IsManagerRole(role) {
		return true
	}
	return constants.Contains(evt.Audience, userID)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) error { return nil }
