package events

import "reflect"

// Helper function to extract the game ID from events
func ExtractGameID(event Event) string {
	val := reflect.ValueOf(event)

	// If it's a pointer, get the underlying element
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct {
		gameID := val.FieldByName("GameID")
		if gameID.IsValid() && gameID.Kind() == reflect.String {
			return gameID.String()
		}
	}

	return ""
}

// Recipient returns the only player allowed to see the event, or "" when it is public.
func Recipient(event Event) string {
	switch e := event.(type) {
	case HandDealt:
		return e.PlayerID
	case *HandDealt:
		return e.PlayerID
	}
	return ""
}
