package domain

// NotificationKind identifies the workflow event behind an outbound notice.
type NotificationKind string

const (
	NotifyUserCredentials    NotificationKind = "USER_CREDENTIALS"
	NotifySignatureRequested NotificationKind = "SIGNATURE_REQUESTED"
	NotifyDueAdded           NotificationKind = "DUE_ADDED"
	NotifyDueApproved        NotificationKind = "DUE_APPROVED"
)

// Notification is a fire-and-forget outbound notice handed to the notifier
// after the triggering transaction has committed. Delivery is best-effort;
// the workflow never depends on it.
type Notification struct {
	Kind      NotificationKind  `json:"kind"`
	Recipient string            `json:"recipient"` // email address
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Meta      map[string]string `json:"meta,omitempty"`
}
