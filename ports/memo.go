package ports

// MemoEncoder produces an opaque authenticated token addressed to a recipient
// public key. The sender key is fixed at construction (the service's own
// posting-level secret).
type MemoEncoder interface {
	Encode(recipientPub, plaintext string) (string, error)
}
