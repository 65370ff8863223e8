package mailer

// Job templates understood by the email worker.
const (
	TemplateVerifyEmail   = "verify_email"
	TemplateResetPassword = "reset_password"
	TemplateOrderBuyer    = "order_confirmation"
	TemplateOrderSeller   = "order_sold"
)

// EmailJob is the JSON payload put on the RabbitMQ queue. Template selects
// one of the known templates and Data feeds it; the worker derives the
// subject from the template.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}
