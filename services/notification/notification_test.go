package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanReceive(t *testing.T) {
	evt := Event{Collection: "checklists", Action: ActionUpdated, ID: "c1", Audience: []string{"u1", "m1"}}

	assert.True(t, CanReceive(evt, "u1", "garcon"))
	assert.True(t, CanReceive(evt, "m1", "manager"))
	assert.False(t, CanReceive(evt, "u2", "garcon"))
	assert.False(t, CanReceive(evt, "m2", "manager"), "managers only see their own documents")
	assert.False(t, CanReceive(evt, "", "manager"))

	broadcast := Event{Collection: "dashboard", Action: ActionUpdated, Managers: true}
	assert.True(t, CanReceive(broadcast, "m2", "gestor"))
	assert.False(t, CanReceive(broadcast, "u1", "cozinha"))
}

func TestNilHub(t *testing.T) {
	assert.Error(t, NewMelodyHub(nil).Publish(Event{}))
	assert.NoError(t, NopPublisher{}.Publish(Event{}))
}
