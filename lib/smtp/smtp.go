package smtp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Provider interface {
	SendEMail(from, to, message, subject string) error
	SendHTMLEMail(from, to, htmlBody, subject string) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) configured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(from, to, message, subject string) (err error) {
	logger := log.WithField("sender", from).WithField("recipient", to)
	if !i.configured() {
		logger.Warn("email not sent, smtp client is not configured")
		return nil
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	body := strings.NewReader(fmt.Sprintf("Subject: %s\n%s\r\n%s\r\n", subject, mimeHeaders, message))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("email send failed")
		return err
	}
	logger.Info("email sent")
	return nil
}

// SendHTMLEMail delivers templated HTML bodies (stage-change and interview
// notifications) through the same smtp credentials.
func (i impl) SendHTMLEMail(from, to, htmlBody, subject string) error {
	logger := log.WithField("sender", from).WithField("recipient", to)
	if !i.configured() {
		logger.Warn("email not sent, smtp client is not configured")
		return nil
	}
	port, err := strconv.Atoi(i.port)
	if err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(i.host, port, i.user, i.password)
	if err := d.DialAndSend(m); err != nil {
		logger.WithError(err).Error("html email send failed")
		return err
	}
	logger.Info("html email sent")
	return nil
}
