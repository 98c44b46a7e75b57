package utils

import (
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

const (
	MsgConsultingSubject      = "notification.consulting.subject"
	MsgConsultingBody         = "notification.consulting.body"
	MsgConsultingNotSpecified = "notification.consulting.not_specified"
)

// built-in English messages. Files under the i18n directory override them.
var defaultMessages = []*i18n.Message{
	{
		ID:    MsgConsultingSubject,
		Other: "New Consulting Request from {{.Name}}",
	},
	{
		ID: MsgConsultingBody,
		Other: `New Consulting Request

Name: {{.Name}}
Email: {{.Email}}
Company: {{.Company}}
Phone: {{.Phone}}
Project Type: {{.ProjectType}}
Budget: {{.Budget}}
Timeline: {{.Timeline}}
Preferred Date: {{.PreferredDate}}
Preferred Time: {{.PreferredTime}}
Communication Preference: {{.CommunicationPreference}}

Description:
{{.Description}}

Request ID: {{.ID}}
Submitted: {{.Submitted}}`,
	},
	{
		ID:    MsgConsultingNotSpecified,
		Other: "Not specified",
	},
}

var bundle = newBundle()

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	if err := b.AddMessages(language.English, defaultMessages...); err != nil {
		panic(err)
	}
	return b
}

// InitI18NBundle loads every yaml message file in dir on top of the
// built-in messages. An empty dir keeps the built-in messages only.
func InitI18NBundle(dir string) error {
	b := newBundle()

	if dir != "" {
		files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
		if err != nil {
			return err
		}

		for _, f := range files {
			if _, err := b.LoadMessageFile(f); err != nil {
				return err
			}
		}
	}

	bundle = b
	return nil
}

func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}
