package ws

import (
	"sync"

	"lms_backend/internal/logger"
)

// Manager is the broadcast hub. Clients subscribe to a single course on
// connect; broadcasts only reach clients of that course. All state is
// owned by the run loop plus a mutex so BroadcastToCourse can be called
// from any request goroutine.
type Manager struct {
	mu      sync.RWMutex
	courses map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	queueSize int
}

func NewManager(queueSize int) *Manager {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Manager{
		courses:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		queueSize:  queueSize,
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.addClient(client)
		case client := <-m.unregister:
			m.removeClient(client)
		}
	}
}

func (m *Manager) addClient(client *Client) {
	m.mu.Lock()
	group, ok := m.courses[client.CourseID]
	if !ok {
		group = make(map[*Client]struct{})
		m.courses[client.CourseID] = group
	}
	group[client] = struct{}{}
	total := len(group)
	m.mu.Unlock()

	wsActiveConnections.Inc()
	logger.Info("ws client connected",
		"user_id", client.UserID,
		"course_id", client.CourseID,
		"course_clients", total,
	)
}

func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	group, ok := m.courses[client.CourseID]
	if ok {
		if _, present := group[client]; present {
			delete(group, client)
			close(client.Send)
			if len(group) == 0 {
				delete(m.courses, client.CourseID)
			}
			m.mu.Unlock()

			wsActiveConnections.Dec()
			logger.Info("ws client disconnected",
				"user_id", client.UserID,
				"course_id", client.CourseID,
			)
			return
		}
	}
	m.mu.Unlock()
}

// BroadcastToCourse queues the event on every client subscribed to the
// course. A slow client loses its oldest queued frame rather than
// blocking the broadcast; live chat frames are worthless once stale and
// history is replayed over HTTP on reconnect.
func (m *Manager) BroadcastToCourse(courseID string, event any) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	group, ok := m.courses[courseID]
	if !ok {
		return
	}

	wsBroadcastsTotal.Inc()
	for client := range group {
		select {
		case client.Send <- event:
		default:
			select {
			case <-client.Send:
				wsDroppedFramesTotal.Inc()
			default:
			}
			select {
			case client.Send <- event:
			default:
				wsDroppedFramesTotal.Inc()
			}
		}
	}
}

// CourseClientCount reports how many clients are subscribed to the
// course, used by tests and the health endpoint.
func (m *Manager) CourseClientCount(courseID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.courses[courseID])
}
