package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Minimal transactional email templates. Each entry renders from the
// EmailJob data map; subjects live alongside so the worker stays dumb.

var subjects = map[string]string{
	"verify_email":       "Verify your email address",
	"reset_password":     "Reset your password",
	"order_confirmation": "Your purchase is confirmed",
	"order_sold":         "Your product has been sold",
}

var bodies = map[string]*template.Template{
	"verify_email": template.Must(template.New("verify_email").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
  <p>Click the link below to verify your email address:</p>
  <p><a href="{{.Link}}">Verify email</a></p>
  <p style="color:#999;font-size:12px;">This link expires in {{.ExpiresIn}}.</p>
</div>`)),

	"reset_password": template.Must(template.New("reset_password").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Reset your password</h2>
  <p>Click the link below to choose a new password:</p>
  <p><a href="{{.Link}}">Reset password</a></p>
  <p style="color:#999;font-size:12px;">This link expires in {{.ExpiresIn}}.</p>
  <p style="color:#999;font-size:12px;">If you did not request this, you can ignore this email.</p>
</div>`)),

	"order_confirmation": template.Must(template.New("order_confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Purchase confirmed</h2>
  <p>Thanks for your purchase{{if .Name}}, {{.Name}}{{end}}.</p>
  <p>Product: <strong>{{.ProductTitle}}</strong></p>
  <p>Quantity: {{.Quantity}}</p>
  <p>Total: <strong>&euro;{{.TotalPrice}}</strong></p>
</div>`)),

	"order_sold": template.Must(template.New("order_sold").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>You sold a product</h2>
  <p><strong>{{.ProductTitle}}</strong> was bought by {{.BuyerName}}.</p>
  <p>Quantity: {{.Quantity}}</p>
  <p>Total: <strong>&euro;{{.TotalPrice}}</strong></p>
</div>`)),
}

// Render returns the subject and HTML body for a template name.
func Render(name string, data map[string]any) (subject, html string, err error) {
	tpl, ok := bodies[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subjects[name], buf.String(), nil
}
