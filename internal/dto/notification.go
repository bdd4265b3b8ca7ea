package dto

// BookingConfirmation is the message published after a booking is committed
// and consumed by the notification worker. Amounts travel as decimal strings.
type BookingConfirmation struct {
	BookingID     string `json:"booking_id"`
	Reference     string `json:"reference"`
	EventTitle    string `json:"event_title"`
	EventDate     string `json:"event_date"`
	Venue         string `json:"venue"`
	Quantity      int    `json:"quantity"`
	TotalAmount   string `json:"total_amount"`
	AttendeeName  string `json:"attendee_name"`
	AttendeeEmail string `json:"attendee_email"`
	Status        string `json:"status"`
}
