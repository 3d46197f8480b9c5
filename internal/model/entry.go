package model

// GuestbookEntry is a published guestbook message.
// Entries are immutable once appended; ledger order is display order.
type GuestbookEntry struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
