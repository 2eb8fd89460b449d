package models

// PaymentConfirmedRequest is the JSON body posted by the payment gateway
// when a payment settles.
type PaymentConfirmedRequest struct {
	EventID      string `json:"event_id"`
	EventType    string `json:"event_type"`
	PlanID       string `json:"plan_id"`
	Email        string `json:"email"`
	MembershipID string `json:"membership_id"`
	UserName     string `json:"user_name"`
}

// Validate reports the missing required fields, keyed by field name.
func (r PaymentConfirmedRequest) Validate() map[string]string {
	details := make(map[string]string)
	if r.MembershipID == "" {
		details["membership_id"] = "membership_id is required"
	}
	if r.PlanID == "" {
		details["plan_id"] = "plan_id is required"
	}
	if r.Email == "" {
		details["email"] = "email is required"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
