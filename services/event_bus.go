package services

import "time"

type eventDeps struct {
	rt *RealtimeHub
}

var _events eventDeps

func InitEventDeps(rt *RealtimeHub) {
	_events = eventDeps{rt: rt}
}

// EmitEvent pushes a progress event to the user's live connections. Events
// are display signals only; nothing is stored. Safe to call anywhere.
func EmitEvent(userID, kind string, data map[string]any) {
	if _events.rt == nil { return } // not initialized
	_events.rt.BroadcastEvent(userID, map[string]any{
		"kind": kind,
		"data": data,
		"at":   time.Now().UTC().Format(time.RFC3339),
	})
}
