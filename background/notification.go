package background

import (
	"context"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/tresidus/tresidus-api/external/mailer"
	"github.com/tresidus/tresidus-api/schema"
	"github.com/tresidus/tresidus-api/utils"
)

// NotificationCenter delivers the notification of a new consulting request
type NotificationCenter interface {
	NotifyConsultingRequest(ctx context.Context, request schema.ConsultingRequest) error
}

// EmailNotificationCenter renders a localized plain text email and hands it
// to a mailer
type EmailNotificationCenter struct {
	sender    mailer.Sender
	from      string
	recipient string
	lang      string
}

func NewEmailNotificationCenter(sender mailer.Sender, from, recipient, lang string) *EmailNotificationCenter {
	if lang == "" {
		lang = "en"
	}

	return &EmailNotificationCenter{
		sender:    sender,
		from:      from,
		recipient: recipient,
		lang:      lang,
	}
}

func (e *EmailNotificationCenter) NotifyConsultingRequest(ctx context.Context, request schema.ConsultingRequest) error {
	msg, err := e.compose(request)
	if err != nil {
		return err
	}

	if err := e.sender.Send(ctx, msg); err != nil {
		return err
	}

	log.WithField("id", request.ID).Info("consulting request notification sent")
	return nil
}

func (e *EmailNotificationCenter) compose(r schema.ConsultingRequest) (mailer.Message, error) {
	loc := utils.NewLocalizer(e.lang)

	notSpecified, err := loc.Localize(&i18n.LocalizeConfig{MessageID: utils.MsgConsultingNotSpecified})
	if err != nil {
		return mailer.Message{}, err
	}

	orNotSpecified := func(s string) string {
		if s == "" {
			return notSpecified
		}
		return s
	}

	data := map[string]interface{}{
		"ID":                      r.ID,
		"Name":                    r.Name,
		"Email":                   r.Email,
		"Company":                 orNotSpecified(r.Company),
		"Phone":                   orNotSpecified(r.Phone),
		"ProjectType":             r.ProjectType,
		"Budget":                  r.Budget,
		"Timeline":                r.Timeline,
		"PreferredDate":           orNotSpecified(r.PreferredDate),
		"PreferredTime":           orNotSpecified(r.PreferredTime),
		"CommunicationPreference": r.CommunicationPreference,
		"Description":             r.Description,
		"Submitted":               r.CreatedAt.UTC().Format(time.RFC3339),
	}

	subject, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    utils.MsgConsultingSubject,
		TemplateData: data,
	})
	if err != nil {
		return mailer.Message{}, err
	}

	body, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    utils.MsgConsultingBody,
		TemplateData: data,
	})
	if err != nil {
		return mailer.Message{}, err
	}

	return mailer.Message{
		From:    e.from,
		To:      []string{e.recipient},
		Subject: subject,
		Body:    body,
	}, nil
}
