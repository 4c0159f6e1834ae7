package models

// Message senders after normalization. The backend also emits "support"
// and "customer", which normalize to assistant/user respectively.
const (
	FromUser      = "user"
	FromAssistant = "assistant"
)

type ChatMessage struct {
	ID          string           `json:"id"`
	From        string           `json:"from"`
	SenderID    string           `json:"sender_id,omitempty"`
	Text        string           `json:"text"`
	Timestamp   int64            `json:"timestamp"` // unix millis
	Attachments []ChatAttachment `json:"attachments,omitempty"`

	// Pending marks an optimistic message that has not been confirmed by
	// the server yet. Reconciliation must never drop these.
	Pending bool `json:"-"`
}

type ChatAttachment struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
	IsLocal  bool   `json:"isLocal"`
}

// Outgoing attachment staged client-side before a send completes.
type AttachmentUpload struct {
	FileName string
	MimeType string
	Data     []byte
}

type Comment struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	ProductID   string  `json:"productId"`
	Rating      float64 `json:"rating"`
	Text        string  `json:"text"`
	DisplayName string  `json:"displayName,omitempty"`
	Approved    bool    `json:"approved"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// Review drafted locally before moderation.
type Review struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	Rating      float64 `json:"rating"`
	Comment     string  `json:"comment"`
	DisplayName string  `json:"displayName"`
	Date        string  `json:"date"`
	Approved    bool    `json:"approved"`
}
