// websocket/notifier.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefreshNotifier implements the workflow Notifier port: after any
// successful mutation it pushes a minimal "something changed" event so
// dependent views can re-fetch. There is no payload contract beyond the
// entity reference.
type RefreshNotifier struct {
	hub *Hub
}

func NewRefreshNotifier(hub *Hub) *RefreshNotifier {
	return &RefreshNotifier{hub: hub}
}

type refreshEvent struct {
	Type       string    `json:"type"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Timestamp  time.Time `json:"timestamp"`
}

func (n *RefreshNotifier) EntityChanged(orgID primitive.ObjectID, entityType string, id primitive.ObjectID) {
	event := refreshEvent{
		Type:       "ENTITY_CHANGED",
		EntityType: entityType,
		EntityID:   id.Hex(),
		Timestamp:  time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal refresh event: %v", err)
		return
	}

	org := ""
	if !orgID.IsZero() {
		org = orgID.Hex()
	}
	n.hub.Broadcast(org, data)
}
