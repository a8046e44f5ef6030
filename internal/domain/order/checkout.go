package order

// CheckoutSession is a hosted payment session created by the backend. The
// client navigates the user to URL and never talks to the payment processor
// directly; completion is detected when the user lands back on the success
// route carrying the session id.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
