package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogNotifier_LanguageFollowsCallback(t *testing.T) {
	t.Parallel()

	lang := "en"
	n := NewLogNotifier(func() string { return lang })

	params := map[string]string{"name": "Santé"}
	assert.Equal(t, `Category "Santé" created`, n.message("notification.category_added", params))

	// a profile language change applies to the next notification
	lang = "fr"
	assert.Equal(t, "Catégorie « Santé » créée", n.message("notification.category_added", params))

	// unknown languages fall back to the default dictionary
	lang = "de"
	assert.Equal(t, `Category "Santé" created`, n.message("notification.category_added", params))
}
