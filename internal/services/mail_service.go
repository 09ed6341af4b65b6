package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

type IMailService interface {
	SendMailToResetPassword(ctx context.Context, to, token string) error
	SendContactNotice(ctx context.Context, to, fromName, fromEmail, message string) error
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool // implicit TLS, usually 465
	RequireTLS bool // fail when STARTTLS is not offered

	AppName    string
	AppBaseURL string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
	logger  *zap.Logger
}

// NewSMTPMailService returns a mailer that only logs when no SMTP host is
// configured, so local setups can run the reset flow.
func NewSMTPMailService(cfg SMTPConfig, logger *zap.Logger) IMailService {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(mailHTMLTemplate)),
		textTpl: template.Must(template.New("text").Parse(mailTextTemplate)),
		logger:  logger.Named("mail"),
	}
}

func (s *smtpMailService) SendMailToResetPassword(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	subject := "Reset your " + s.cfg.AppName + " password"

	return s.deliver(ctx, to, subject, EmailData{
		Title:     subject,
		Intro:     "We received a request to reset your password. Use the link below within the next hour. If you did not ask for this, ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset password",
	})
}

func (s *smtpMailService) SendContactNotice(ctx context.Context, to, fromName, fromEmail, message string) error {
	return s.deliver(ctx, to, "New contact message from "+fromName, EmailData{
		Title: "New contact message",
		Intro: fmt.Sprintf("%s <%s> wrote:\n\n%s", fromName, fromEmail, message),
	})
}

type EmailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const mailHTMLTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:32px 16px;background:#f1f5f9;font-family:Helvetica,Arial,sans-serif;color:#0f172a">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:12px;padding:32px">
    <div style="font-weight:700;color:#0d9488;letter-spacing:.5px">{{.AppName}}</div>
    <h1 style="font-size:22px">{{.Title}}</h1>
    <p style="line-height:1.6;white-space:pre-line">{{.Intro}}</p>
    {{if .ButtonURL}}
    <p><a href="{{.ButtonURL}}" style="display:inline-block;padding:12px 24px;background:#0d9488;color:#ffffff;border-radius:8px;text-decoration:none">{{.ButtonTxt}}</a></p>
    <p style="font-size:12px;color:#64748b">Or open: {{.ButtonURL}}</p>
    {{end}}
    <p style="font-size:12px;color:#94a3b8">&copy; {{.Year}} {{.AppName}}</p>
  </div>
</body>
</html>`

const mailTextTemplate = `{{.Title}}

{{.Intro}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}
{{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) deliver(ctx context.Context, to, subject string, data EmailData) error {
	data.AppName = s.cfg.AppName
	data.Year = time.Now().Year()

	if s.cfg.Host == "" {
		s.logger.Info("smtp disabled, mail not sent",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("link", data.ButtonURL))
		return nil
	}

	msg, err := s.buildMessage(to, subject, data)
	if err != nil {
		return err
	}
	if err := s.send(ctx, to, msg); err != nil {
		s.logger.Error("smtp send failed", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}

func (s *smtpMailService) buildMessage(to, subject string, data EmailData) ([]byte, error) {
	var htmlBody, textBody bytes.Buffer
	if err := s.htmlTpl.Execute(&htmlBody, data); err != nil {
		return nil, err
	}
	if err := s.textTpl.Execute(&textBody, data); err != nil {
		return nil, err
	}

	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())
	var msg bytes.Buffer
	write := func(format string, a ...any) { fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, textBody.String())
	write("--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, htmlBody.String())
	write("--%s--\r\n", boundary)

	return msg.Bytes(), nil
}

func (s *smtpMailService) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	var (
		conn net.Conn
		err  error
	)
	if s.cfg.UseSSL {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsCfg}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("smtp server %s does not support STARTTLS", s.cfg.Host)
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), s.cfg.From)
}
