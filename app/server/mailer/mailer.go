package mailer

import (
	"fmt"
	"gopkg.in/gomail.v2"
)

// Mailer 抽象出邮件发送，方便在测试里替换为记录用的假实现
type Mailer interface {
	Send(from string, to string, subject string, body string) error
	SendHTML(from string, to string, subject string, htmlBody string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTP(host string, port int, username string, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
	}
}

func (m *SMTPMailer) Send(from string, to string, subject string, body string) error {
	return m.send(from, to, subject, "text/plain", body)
}

func (m *SMTPMailer) SendHTML(from string, to string, subject string, htmlBody string) error {
	return m.send(from, to, subject, "text/html", htmlBody)
}

func (m *SMTPMailer) send(from string, to string, subject string, contentType string, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody(contentType, body)

	// 发送失败不能静默吞掉，调用方需要把错误反馈给触发这次发送的请求
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}
