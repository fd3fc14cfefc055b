package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

// SMTPSender sends emails through a plain SMTP relay. Used when the center
// routes mail through the university relay instead of Resend.
type SMTPSender struct {
	addr string // host:port
	auth smtp.Auth
	from string
}

// NewSMTPSender creates an SMTPSender.
// PRE: addr is "host:port"; username/password may be empty for open relays
// POST: Returns a ready-to-use sender
func NewSMTPSender(addr, username, password, from string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.LastIndex(addr, ":"); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{addr: addr, auth: auth, from: from}
}

// Send builds a MIME message and submits it to the relay.
// PRE: req has at least one recipient and a subject
// POST: Message accepted by the relay or an error is returned
// The context deadline is not honored mid-transaction; net/smtp has no
// context support. Callers bound the call with a dial-level timeout instead.
func (s *SMTPSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	if err := ctx.Err(); err != nil {
		return SendResult{}, err
	}

	from := req.From
	if from == "" {
		from = s.from
	}

	msg := buildMIME(from, req)
	if err := smtp.SendMail(s.addr, s.auth, envelopeFrom(from), req.To, msg); err != nil {
		slog.Error("smtp_send_failed", "error", err, "to", req.To, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("smtp send failed: %w", err)
	}

	slog.Info("smtp_sent", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("smtp-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// envelopeFrom extracts the bare address from a "Name <addr>" header value.
func envelopeFrom(from string) string {
	if i := strings.Index(from, "<"); i >= 0 {
		if j := strings.Index(from[i:], ">"); j > 0 {
			return from[i+1 : i+j]
		}
	}
	return from
}

// buildMIME renders the message as multipart/mixed when attachments are
// present, plain HTML otherwise.
func buildMIME(from string, req SendRequest) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(req.To, ", "))
	if req.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", req.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", req.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(req.Attachments) == 0 {
		buf.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		buf.WriteString(req.HTML)
		return buf.Bytes()
	}

	const boundary = "cpgg-mime-boundary"
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	buf.WriteString(req.HTML)
	buf.WriteString("\r\n")

	for _, a := range req.Attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", contentType)
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", a.Filename)
		writeBase64(&buf, a.Content)
		buf.WriteString("\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes()
}

// writeBase64 writes base64 content wrapped at 76 columns per RFC 2045.
func writeBase64(buf *bytes.Buffer, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
}
