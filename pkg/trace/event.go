package trace

import "time"

// Event represents one entry in a SCPI exchange trace.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the connection (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates message flow relative to the host.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Resource is the instrument resource string.
	Resource string `cbor:"5,keyasint,omitempty"`

	// Command is the SCPI command or query string sent.
	Command string `cbor:"6,keyasint,omitempty"`

	// Response is the raw response line (response events only).
	Response string `cbor:"7,keyasint,omitempty"`

	// State is the new connection state (state events only).
	State string `cbor:"8,keyasint,omitempty"`

	// Message is the error message (error events only).
	Message string `cbor:"9,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionOut indicates host-to-instrument traffic.
	DirectionOut Direction = 0
	// DirectionIn indicates instrument-to-host traffic.
	DirectionIn Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "OUT"
	case DirectionIn:
		return "IN"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCommand indicates a command with no response.
	CategoryCommand Category = 0
	// CategoryQuery indicates a query being sent.
	CategoryQuery Category = 1
	// CategoryResponse indicates a response to a query.
	CategoryResponse Category = 2
	// CategoryState indicates a connection state change.
	CategoryState Category = 3
	// CategoryError indicates a transport error.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCommand:
		return "COMMAND"
	case CategoryQuery:
		return "QUERY"
	case CategoryResponse:
		return "RESPONSE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
