package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lang   string
		key    string
		params map[string]string
		want   string
	}{
		{
			name:   "english with params",
			lang:   "en",
			key:    "notification.payment_recorded",
			params: map[string]string{"amount": "200.00€", "name": "Car loan"},
			want:   "Payment of 200.00€ recorded on \"Car loan\"",
		},
		{
			name:   "french with params",
			lang:   "fr",
			key:    "notification.category_added",
			params: map[string]string{"name": "Santé"},
			want:   "Catégorie « Santé » créée",
		},
		{
			name: "unknown language falls back to english",
			lang: "de",
			key:  "notification.data_reset",
			want: "All data reset",
		},
		{
			name: "unknown key returns the key",
			lang: "en",
			key:  "notification.unknown",
			want: "notification.unknown",
		},
		{
			name:   "missing param leaves placeholder",
			lang:   "en",
			key:    "notification.goal_added",
			params: nil,
			want:   "Savings goal \"{{name}}\" created",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := New(tt.lang)
			assert.Equal(t, tt.want, tr.Resolve(tt.key, tt.params))
		})
	}
}
