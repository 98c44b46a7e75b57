package utils

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localize(t *testing.T, lang, id string, data map[string]interface{}) string {
	s, err := NewLocalizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	require.NoError(t, err)
	return s
}

func TestBuiltInMessages(t *testing.T) {
	require.NoError(t, InitI18NBundle(""))

	assert.Equal(t, "New Consulting Request from Ada", localize(t, "en", MsgConsultingSubject, map[string]interface{}{
		"Name": "Ada",
	}))
	// unknown languages fall back to English
	assert.Equal(t, "Not specified", localize(t, "fr", MsgConsultingNotSpecified, nil))
}

func TestShippedMessageFile(t *testing.T) {
	require.NoError(t, InitI18NBundle(filepath.Join("..", "i18n")))
	defer InitI18NBundle("")

	body := localize(t, "en", MsgConsultingBody, map[string]interface{}{
		"Name":        "Ada",
		"ID":          "r1",
		"Description": "Need ML help",
	})
	assert.Contains(t, body, "Name: Ada\n")
	assert.Contains(t, body, "Description:\nNeed ML help\n")
	assert.Contains(t, body, "Request ID: r1")
}

func TestMessageFileOverridesBuiltIn(t *testing.T) {
	dir, err := ioutil.TempDir("", "tresidus-i18n")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "en.yaml"),
		[]byte(`notification.consulting.not_specified: "n/a"`), 0600))

	require.NoError(t, InitI18NBundle(dir))
	defer InitI18NBundle("")

	assert.Equal(t, "n/a", localize(t, "en", MsgConsultingNotSpecified, nil))
	assert.Equal(t, "New Consulting Request from Ada", localize(t, "en", MsgConsultingSubject, map[string]interface{}{
		"Name": "Ada",
	}))
}

func TestInitI18NBundleRejectsBrokenFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "tresidus-i18n")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "en.yaml"), []byte("key: [unclosed"), 0600))
	assert.Error(t, InitI18NBundle(dir))
}
