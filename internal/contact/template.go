package contact

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

type templateData struct {
	BusinessName string
	SiteName     string
	ClientName   string
	ClientEmail  string
	Subject      string
	Message      string
	Year         int
}

var emailTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>New Client Message</title>
  <style>
    body { font-family: Arial, sans-serif; background-color: #f4f4f9; color: #333; line-height: 1.6; margin: 0; }
    .email-container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 10px; overflow: hidden; box-shadow: 0 4px 10px rgba(0, 0, 0, 0.1); }
    .email-header { background-color: #5bbad5; color: #ffffff; text-align: center; padding: 20px; }
    .email-body { padding: 20px; }
    .email-body h2 { font-size: 20px; color: #5bbad5; margin-bottom: 15px; }
    .contact-details { background-color: #f9f9f9; padding: 15px; border-radius: 8px; margin-bottom: 20px; }
    .contact-details h3 { font-size: 18px; color: #5bbad5; margin-bottom: 10px; }
    .email-footer { text-align: center; padding: 15px; background-color: #f4f4f9; font-size: 12px; color: #666; }
  </style>
</head>
<body>
  <div class="email-container">
    <div class="email-header">
      <h1>New Message from {{.ClientName}}</h1>
      <p>You have received a new message from a client.</p>
    </div>
    <div class="email-body">
      <h2>Hello {{.BusinessName}},</h2>
      <p>A client has reached out to you with the following details:</p>
      <div class="contact-details">
        <h3>Client Details</h3>
        <p><strong>Name:</strong> {{.ClientName}}</p>
        <p><strong>Email:</strong> {{.ClientEmail}}</p>
        <p><strong>Subject:</strong> {{.Subject}}</p>
        <p><strong>Message:</strong> {{.Message}}</p>
      </div>
      <p>Please respond to the client at your earliest convenience. You can reply directly to this email or use the client's email address provided above.</p>
    </div>
    <div class="email-footer">
      <p>&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
    </div>
  </div>
</body>
</html>
`))

func renderEmail(data templateData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	var b bytes.Buffer
	err := emailTemplate.Execute(&b, data)
	if err != nil {
		return "", fmt.Errorf("failed to render contact email: %w", err)
	}
	return b.String(), nil
}
