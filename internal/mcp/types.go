package mcp

// --- Tool Arguments ---

type FindDestinationArgs struct {
	Query string `json:"query" jsonschema:"The spoken destination to look up (e.g. 'computer lab', 'b101'),required"`
}

type FindDestinationResult struct {
	Found  bool   `json:"found"`
	NodeID string `json:"node_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Floor  string `json:"floor,omitempty"`
	// Message is ready to be spoken to the visitor.
	Message string `json:"message"`
}

type NavigateToArgs struct {
	Destination string `json:"destination" jsonschema:"The destination the visitor asked for,required"`
}

type NavigateToResult struct {
	// Message is the narration for the visitor ("Showing the path to X." /
	// the apology variants).
	Message string `json:"message"`
	// SessionID identifies the playback session the map view is animating;
	// empty when no route was produced.
	SessionID string `json:"session_id,omitempty"`
}

type CloseMapArgs struct{}

type CloseMapResult struct {
	Message string `json:"message"`
}
