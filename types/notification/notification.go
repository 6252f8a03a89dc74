package notification

// ListQuery captures the optional filters of the notification list endpoint.
type ListQuery struct {
	UnreadOnly bool `query:"unread_only"`
}

// MarkAllReadResponse reports how many notifications were marked.
type MarkAllReadResponse struct {
	Marked int64 `json:"marked"`
}
