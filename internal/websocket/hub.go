package websocket

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
)

// EventLabelCreated is pushed to label stations for every stored label
const EventLabelCreated = "label.created"

// LabelEvent is the payload of a label.created message
type LabelEvent struct {
	Type        string    `json:"type"`
	LabelID     int64     `json:"labelId"`
	PickingID   int64     `json:"pickingId"`
	PickingName string    `json:"pickingName"`
	CarrierType string    `json:"carrierType,omitempty"`
	Name        string    `json:"name"`
	FileType    string    `json:"fileType"`
	TrackingID  *int64    `json:"trackingId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Hub maintains the set of active label stations and broadcasts messages
type Hub struct {
	// Registered clients map: StationID -> Client
	clients map[string]*Client

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Messages for every client
	broadcast chan []byte

	// Station listing requests
	stations chan chan []string

	quit chan struct{}
	log  *logger.Logger
}

// NewHub creates a new Hub instance
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		stations:   make(chan chan []string),
		quit:       make(chan struct{}),
		clients:    make(map[string]*Client),
		log:        log.WithComponent("websocket"),
	}
}

// Run starts the hub's main loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			for id, client := range h.clients {
				close(client.send)
				delete(h.clients, id)
			}
			return

		case client := <-h.register:
			// A station connecting again replaces its old connection
			if old, ok := h.clients[client.StationID]; ok && old != client {
				close(old.send)
			}
			h.clients[client.StationID] = client
			h.log.Infof("🖨️  Label station connected: %s", client.StationID)

		case client := <-h.unregister:
			if current, ok := h.clients[client.StationID]; ok && current == client {
				delete(h.clients, client.StationID)
				close(client.send)
				h.log.Infof("📴 Label station disconnected: %s", client.StationID)
			}

		case reply := <-h.stations:
			ids := make([]string, 0, len(h.clients))
			for id := range h.clients {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			reply <- ids

		case message := <-h.broadcast:
			for id, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full or client dead
					close(client.send)
					delete(h.clients, id)
				}
			}
		}
	}
}

// Stop ends Run and disconnects every station
func (h *Hub) Stop() {
	close(h.quit)
}

// Stations returns the ids of the connected label stations, sorted
func (h *Hub) Stations() []string {
	reply := make(chan []string, 1)
	select {
	case h.stations <- reply:
		return <-reply
	case <-h.quit:
		return nil
	}
}

// Broadcast queues a message for every connected station
func (h *Hub) Broadcast(message interface{}) bool {
	jsonMsg, err := json.Marshal(message)
	if err != nil {
		h.log.Errorf("Error marshaling message: %v", err)
		return false
	}

	select {
	case h.broadcast <- jsonMsg:
		return true
	default:
		h.log.Warn("⚠️  Broadcast queue full, message dropped")
		return false
	}
}

// LabelCreated announces a stored label to the label stations
func (h *Hub) LabelCreated(picking *models.StockPicking, label *models.ShippingLabel) {
	event := LabelEvent{
		Type:        EventLabelCreated,
		LabelID:     label.ID,
		PickingID:   picking.ID,
		PickingName: picking.Name,
		CarrierType: picking.CarrierType,
		FileType:    label.FileType,
		TrackingID:  label.TrackingID,
		CreatedAt:   label.CreatedAt,
	}
	if label.Attachment != nil {
		event.Name = label.Attachment.Name
	}
	h.Broadcast(event)
}
