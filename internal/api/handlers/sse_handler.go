package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/providers"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/observability"
)

// SSEHandler handles Server-Sent Events for real-time pharmacy updates
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[string]map[chan *entities.PharmacyEvent]bool // channel -> clients
	mu       sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[string]map[chan *entities.PharmacyEvent]bool),
	}
}

// StreamPharmacyUpdates handles SSE connections for pharmacy-wide updates
// GET /api/stream/pharmacies/{id}
func (h *SSEHandler) StreamPharmacyUpdates(w http.ResponseWriter, r *http.Request) {
	pharmacyID := r.PathValue("id")
	if pharmacyID == "" {
		respondWithError(w, http.StatusBadRequest, "pharmacy ID is required")
		return
	}
	h.stream(w, r, providers.GetPharmacyChannel(pharmacyID), map[string]interface{}{
		"pharmacy_id": pharmacyID,
		"timestamp":   time.Now(),
	})
}

// StreamStockAlerts handles SSE connections for low-stock alerts
// GET /api/stream/stock
func (h *SSEHandler) StreamStockAlerts(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelStock, map[string]interface{}{
		"timestamp": time.Now(),
	})
}

// StreamTelepharmacyEvents handles SSE connections for teleconsultation events
// GET /api/stream/telepharmacy
func (h *SSEHandler) StreamTelepharmacyEvents(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelTelepharmacy, map[string]interface{}{
		"timestamp": time.Now(),
	})
}

func (h *SSEHandler) stream(w http.ResponseWriter, r *http.Request, channel string, connectedPayload map[string]interface{}) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	logger := observability.LoggerFromContext(r.Context())

	clientChan := make(chan *entities.PharmacyEvent, 10)
	h.registerClient(channel, clientChan)
	defer h.unregisterClient(channel, clientChan)

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		logger.Error().Err(err).Str("channel", channel).Msg("failed to subscribe to channel")
		return
	}

	h.sendEvent(w, "connected", connectedPayload)
	flusher.Flush()

	go h.forwardEvents(r.Context(), eventChan, clientChan)

	// Heartbeats keep intermediaries from dropping the connection
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Debug().Str("channel", channel).Msg("client disconnected from stream")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// forwardEvents forwards events from the event bus to a client channel
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.PharmacyEvent, clientChan chan<- *entities.PharmacyEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

// registerClient registers a client for a channel
func (h *SSEHandler) registerClient(channel string, clientChan chan *entities.PharmacyEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[channel] == nil {
		h.clients[channel] = make(map[chan *entities.PharmacyEvent]bool)
	}
	h.clients[channel][clientChan] = true
}

// unregisterClient unregisters a client from a channel
func (h *SSEHandler) unregisterClient(channel string, clientChan chan *entities.PharmacyEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[channel]; exists {
		delete(clients, clientChan)
		if len(clients) == 0 {
			delete(h.clients, channel)
		}
	}
}

// sendEvent sends an SSE event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		observability.GetLogger().Error().Err(err).Msg("failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients for debugging
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
