package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationLookup(t *testing.T) {
	assert.Equal(t, "Xəta baş verdi", T("az", "error.generic"))
	assert.Equal(t, "An error occurred", T("en", "error.generic"))
	assert.Equal(t, "Произошла ошибка", T("ru", "error.generic"))
}

func TestUnknownLanguageFallsBackToDefault(t *testing.T) {
	assert.Equal(t, T("az", "error.generic"), T("tr", "error.generic"))
}

func TestUnknownKeyFallsBackToKey(t *testing.T) {
	assert.Equal(t, "no.such.key", T("az", "no.such.key"))
}

func TestAllLanguagesCoverTheSameKeys(t *testing.T) {
	base := messages[DefaultLanguage]
	for _, lang := range Supported() {
		assert.Len(t, messages[lang], len(base), "language %s", lang)
		for key := range base {
			_, ok := messages[lang][key]
			assert.True(t, ok, "language %s missing key %s", lang, key)
		}
	}
}
