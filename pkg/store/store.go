package store

// Store is an interface for managing teams, groups, access rules, contacts
// and their related records.
type Store interface {
	TeamStore
	GroupStore
	FieldAccessStore
	ContactStore
	AttributeStore
	SocialLinkStore
	ChangeLogStore
	EventStore
	PostalCodeStore
}
