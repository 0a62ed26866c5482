package domain

// Profile is the subset of a LINE group member profile the bot needs.
type Profile struct {
	UserID      string
	DisplayName string
}

// SourceKind tells where an inbound event came from.
type SourceKind string

const (
	SourceGroup SourceKind = "group"
	SourceRoom  SourceKind = "room"
	SourceUser  SourceKind = "user"
)

// Source identifies the origin of one inbound webhook event.
type Source struct {
	Kind    SourceKind
	GroupID string
	UserID  string
}
