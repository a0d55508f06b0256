package clio

// User is the authenticated Clio user (the responsible attorney).
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomField is a platform-configured attribute slot definition.
type CustomField struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	FieldType string `json:"field_type"`
}

// CustomFieldValue sets one custom field on a matter.
type CustomFieldValue struct {
	CustomField CustomFieldRef `json:"custom_field"`
	Value       string         `json:"value"`
}

// CustomFieldRef references a custom field definition by id.
type CustomFieldRef struct {
	ID int64 `json:"id"`
}

// Contact is a person record.
type Contact struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ContactRequest creates a new person contact.
type ContactRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// PracticeArea groups matters, stages and workflows.
type PracticeArea struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Matter is a case record.
type Matter struct {
	ID            int64  `json:"id"`
	Etag          string `json:"etag,omitempty"`
	DisplayNumber string `json:"display_number,omitempty"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status,omitempty"`
}

// MatterRequest creates a new matter under a client contact.
type MatterRequest struct {
	ClientID              int64
	Description           string
	ResponsibleAttorneyID int64
	PracticeAreaID        int64 // 0 means no practice area
}

// MatterStage is a workflow stage within a practice area.
type MatterStage struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Calendar is a scheduling calendar the user can write to.
type Calendar struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Reminder schedules a notification ahead of a calendar entry, expressed as
// a minutes offset before the start time.
type Reminder struct {
	Duration int64  `json:"duration"`
	Method   string `json:"method"`
}

// CalendarEntryRequest creates a calendar entry on a matter.
type CalendarEntryRequest struct {
	CalendarID  int64
	MatterID    int64
	AttendeeID  int64
	Summary     string
	Description string
	StartAt     string // ISO 8601 with local offset
	EndAt       string
	AllDay      bool
	Reminders   []Reminder
}

// DocumentTemplate is an uploaded merge-field document template.
type DocumentTemplate struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Filename string `json:"filename,omitempty"`
}

// DocumentVersion identifies one rendered binary version of a document.
type DocumentVersion struct {
	ID int64 `json:"id"`
}

// Document is a document record on a matter. The binary content renders
// asynchronously; LatestVersion stays nil until materialization completes.
type Document struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	LatestVersion *DocumentVersion `json:"latest_document_version,omitempty"`
}

// Ready reports whether the document's binary content has materialized.
func (d *Document) Ready() bool {
	return d != nil && d.LatestVersion != nil && d.LatestVersion.ID != 0
}

// TokenStatus describes the client's current credential state.
type TokenStatus struct {
	HasAccessToken     bool   `json:"has_access_token"`
	HasRefreshToken    bool   `json:"has_refresh_token"`
	AccessTokenPreview string `json:"access_token_preview,omitempty"`
}
