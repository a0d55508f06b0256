package model

// EmailData carries everything needed to compose and send the client email.
type EmailData struct {
	ToEmail               string
	ClientFirstName       string
	AccidentDateFormatted string // e.g. "March 15, 2024"
	AccidentLocation      string
	AccidentDescription   string // One sentence
	BookingLink           string
	BookingType           string // "in-office" or "virtual"
	AttachmentBytes       []byte
	AttachmentName        string
}
