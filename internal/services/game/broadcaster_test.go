package game

import "sync"

type recordedEvent struct {
	target  string
	exclude []string
	event   *Event
}

// recordingBroadcaster captures everything the service sends
type recordingBroadcaster struct {
	mu         sync.Mutex
	members    map[string]map[string]bool
	broadcasts []recordedEvent
	sends      []recordedEvent
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{members: map[string]map[string]bool{}}
}

func (b *recordingBroadcaster) JoinRoom(roomID, playerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.members[roomID] == nil {
		b.members[roomID] = map[string]bool{}
	}
	b.members[roomID][playerID] = true
}

func (b *recordingBroadcaster) LeaveRoom(roomID, playerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.members[roomID], playerID)
}

func (b *recordingBroadcaster) Broadcast(roomID string, event *Event, exclude ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.broadcasts = append(b.broadcasts, recordedEvent{target: roomID, exclude: exclude, event: event})
}

func (b *recordingBroadcaster) Send(playerID string, event *Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sends = append(b.sends, recordedEvent{target: playerID, event: event})
}

// broadcastsOf returns room broadcasts of one type in send order
func (b *recordingBroadcaster) broadcastsOf(eventType EventType) []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedEvent
	for _, e := range b.broadcasts {
		if e.event.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// sendsOf returns private sends of one type in send order
func (b *recordingBroadcaster) sendsOf(eventType EventType) []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedEvent
	for _, e := range b.sends {
		if e.event.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (b *recordingBroadcaster) isMember(roomID, playerID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.members[roomID][playerID]
}
