package notify

// Event categories, mirroring the flash-message levels the frontend renders.
const (
	CategoryInfo    = "info"
	CategoryDanger  = "danger"
	CategoryWarning = "warning"
)

// Event is a single notification broadcast to connected clients.
type Event struct {
	Message  string         `json:"message"`
	Category string         `json:"category"`
	Data     map[string]any `json:"data"`
}

// Publisher fans an event out to all currently subscribed listeners.
// Delivery is best-effort, at-most-once: listeners that connect later are
// never replayed missed events.
type Publisher interface {
	Publish(event Event)
}
