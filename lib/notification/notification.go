package notification

import (
	"time"

	"ats-backend/config"
	"ats-backend/db"
	"ats-backend/lib/smtp"
	pushstore "ats-backend/lib/ws/push-store"
	connectionhub "ats-backend/lib/ws/hub/connection-hub"
	"ats-backend/models"
	dbmodels "ats-backend/models/db"
	wsmodels "ats-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// Message is one pending notification. Messages are collected into an
// Outbox while a transaction is open and flushed only after commit.
type Message struct {
	Channel  Channel
	ToEmail  string
	ToUserID string
	Subject  string
	Body     string
	PushCode models.PushCode
}

// Outbox is the in-process task list for post-commit side effects. It is
// deliberately not persistent: delivery is fire-and-forget and a lost
// notification never invalidates the committed state change.
type Outbox struct {
	messages []Message
}

func (o *Outbox) Add(msg Message) {
	o.messages = append(o.messages, msg)
}

func (o *Outbox) AddEmail(to, subject, body string) {
	if to == "" {
		return
	}
	o.Add(Message{Channel: ChannelEmail, ToEmail: to, Subject: subject, Body: body})
}

func (o *Outbox) AddPush(userID string, code models.PushCode, text string) {
	if userID == "" {
		return
	}
	o.Add(Message{Channel: ChannelPush, ToUserID: userID, PushCode: code, Body: text})
}

func (o *Outbox) Messages() []Message {
	return o.messages
}

type Provider interface {
	// Flush delivers every message in the outbox. Errors are logged and
	// swallowed; the caller's state change has already committed.
	Flush(outbox *Outbox)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		pushStore: pushstore.NewInstance(db.DB),
	}
}

type impl struct {
	pushStore pushstore.Provider
}

func (i impl) Flush(outbox *Outbox) {
	if outbox == nil {
		return
	}
	for _, msg := range outbox.Messages() {
		switch msg.Channel {
		case ChannelEmail:
			i.sendEmail(msg)
		case ChannelPush:
			i.sendPush(msg)
		}
	}
}

func (i impl) sendEmail(msg Message) {
	err := smtp.Instance.SendHTMLEMail(config.Conf.Smtp.EmailFrom, msg.ToEmail, msg.Body, msg.Subject)
	if err != nil {
		log.WithError(err).
			WithField("recipient", msg.ToEmail).
			WithField("subject", msg.Subject).
			Error("notification email failed, delivery abandoned")
	}
}

func (i impl) sendPush(msg Message) {
	logger := log.WithField("user_id", msg.ToUserID).WithField("code", msg.PushCode)
	if connectionhub.Instance != nil && connectionhub.Instance.IsConnected(msg.ToUserID) {
		connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
			ToUserID: msg.ToUserID,
			Time:     time.Now().Format("02.01.2006 15:04:05"),
			Code:     string(msg.PushCode),
			Msg:      msg.Body,
		})
		return
	}
	// user offline, keep the event for the next connect
	err := i.pushStore.Create(dbmodels.PushData{
		UserID: msg.ToUserID,
		Code:   string(msg.PushCode),
		Msg:    msg.Body,
	})
	if err != nil {
		logger.WithError(err).Error("failed to store undelivered push event")
	}
}
