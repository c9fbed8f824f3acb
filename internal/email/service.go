// Package email sends transactional notifications over SMTP.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const dialTimeout = 10 * time.Second

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	AppURL   string
}

// Service reads its configuration on every send, so it can be constructed
// before the environment is loaded
type Service struct {
	getConfig func() Config
}

func NewService(getConfig func() Config) *Service {
	return &Service{getConfig: getConfig}
}

func (s *Service) IsConfigured() bool {
	config := s.getConfig()
	return config.Host != "" && config.Port != "" && config.From != ""
}

type InvitationData struct {
	AppName      string
	InviteeName  string
	InviteeEmail string
	InviterName  string
	ProjectName  string
	Role         string
	InvitesURL   string
}

// SendInvitation tells a user they were invited to collaborate on a project
func (s *Service) SendInvitation(ctx context.Context, data InvitationData) error {
	config := s.getConfig()
	if !s.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	if data.AppName == "" {
		data.AppName = "Sketchflow"
	}
	if data.InvitesURL == "" {
		data.InvitesURL = strings.TrimRight(config.AppURL, "/") + "/invitations"
	}

	html, err := renderTemplate(invitationEmailTemplate, data)
	if err != nil {
		return fmt.Errorf("render invitation template: %w", err)
	}

	subject := fmt.Sprintf("%s invited you to %s", data.InviterName, data.ProjectName)
	message := buildHTMLMessage(config, data.InviteeEmail, subject, html)

	return send(ctx, config, data.InviteeEmail, message)
}

func buildHTMLMessage(config Config, to, subject, htmlBody string) []byte {
	from := config.From
	if config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", config.FromName, config.From)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "%s\r\n", htmlBody)

	return msg.Bytes()
}

func send(ctx context.Context, config Config, to string, message []byte) error {
	dialer := &net.Dialer{Timeout: dialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(config.Host, config.Port))
	if err != nil {
		return fmt.Errorf("dial smtp server: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, config.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("create smtp client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: config.Host}); err != nil {
			return fmt.Errorf("start tls: %w", err)
		}
	}

	if config.Username != "" {
		auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(config.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	if _, err := writer.Write(message); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write message: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	return client.Quit()
}

func renderTemplate(tmpl string, data any) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const invitationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.InviterName}} invited you to {{.ProjectName}}</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Hi {{if .InviteeName}}{{.InviteeName}}{{else}}there{{end}},</h2>

    <p><strong>{{.InviterName}}</strong> invited you to collaborate on <strong>{{.ProjectName}}</strong> as {{.Role}}.</p>

    <p>
        <a href="{{.InvitesURL}}" style="display: inline-block; padding: 12px 24px; background: #0066cc; color: white; text-decoration: none; border-radius: 4px;">Review invitation</a>
    </p>

    <p style="font-size: 12px; color: #666;">You received this email because someone invited you on {{.AppName}}. You can ignore it if you do not want to join.</p>
</body>
</html>`
