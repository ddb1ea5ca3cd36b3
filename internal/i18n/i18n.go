// Package i18n resolves user-facing message keys into localized text.
// It covers notification and report labels only; computations never depend
// on it.
package i18n

import "strings"

// DefaultLanguage is the fallback when a key is missing from the requested
// dictionary.
const DefaultLanguage = "en"

var dictionaries = map[string]map[string]string{
	"en": {
		"notification.expense_added":      "Expense \"{{description}}\" added ({{amount}})",
		"notification.expense_deleted":    "Expense deleted",
		"notification.category_added":     "Category \"{{name}}\" created",
		"notification.category_deleted":   "Category \"{{name}}\" deleted",
		"notification.budget_updated":     "Budget for \"{{name}}\" set to {{amount}}",
		"notification.budgets_optimized":  "Budgets optimized across {{count}} categories",
		"notification.goal_added":         "Savings goal \"{{name}}\" created",
		"notification.goal_deleted":       "Savings goal \"{{name}}\" deleted",
		"notification.savings_added":      "{{amount}} added to \"{{name}}\"",
		"notification.savings_removed":    "{{amount}} withdrawn from \"{{name}}\"",
		"notification.debt_added":         "Debt \"{{name}}\" added",
		"notification.debt_deleted":       "Debt \"{{name}}\" deleted",
		"notification.payment_recorded":   "Payment of {{amount}} recorded on \"{{name}}\"",
		"notification.autodebit_enabled":  "Automatic payment enabled for \"{{name}}\"",
		"notification.autodebit_disabled": "Automatic payment disabled for \"{{name}}\"",
		"notification.revenue_added":      "Income source \"{{name}}\" added",
		"notification.revenue_deleted":    "Income source \"{{name}}\" deleted",
		"notification.recurring_added":    "Recurring charge \"{{description}}\" added",
		"notification.recurring_deleted":  "Recurring charge deleted",
		"notification.recurring_run":      "{{count}} recurring items processed",
		"notification.data_imported":      "Data imported successfully",
		"notification.data_reset":         "All data reset",
		"report.month_summary":            "Summary for {{month}}",
	},
	"fr": {
		"notification.expense_added":      "Dépense « {{description}} » ajoutée ({{amount}})",
		"notification.expense_deleted":    "Dépense supprimée",
		"notification.category_added":     "Catégorie « {{name}} » créée",
		"notification.category_deleted":   "Catégorie « {{name}} » supprimée",
		"notification.budget_updated":     "Budget de « {{name}} » fixé à {{amount}}",
		"notification.budgets_optimized":  "Budgets optimisés sur {{count}} catégories",
		"notification.goal_added":         "Objectif d'épargne « {{name}} » créé",
		"notification.goal_deleted":       "Objectif d'épargne « {{name}} » supprimé",
		"notification.savings_added":      "{{amount}} ajouté à « {{name}} »",
		"notification.savings_removed":    "{{amount}} retiré de « {{name}} »",
		"notification.debt_added":         "Dette « {{name}} » ajoutée",
		"notification.debt_deleted":       "Dette « {{name}} » supprimée",
		"notification.payment_recorded":   "Paiement de {{amount}} enregistré sur « {{name}} »",
		"notification.autodebit_enabled":  "Paiement automatique activé pour « {{name}} »",
		"notification.autodebit_disabled": "Paiement automatique désactivé pour « {{name}} »",
		"notification.revenue_added":      "Source de revenu « {{name}} » ajoutée",
		"notification.revenue_deleted":    "Source de revenu « {{name}} » supprimée",
		"notification.recurring_added":    "Charge récurrente « {{description}} » ajoutée",
		"notification.recurring_deleted":  "Charge récurrente supprimée",
		"notification.recurring_run":      "{{count}} éléments récurrents traités",
		"notification.data_imported":      "Données importées avec succès",
		"notification.data_reset":         "Toutes les données ont été réinitialisées",
		"report.month_summary":            "Résumé de {{month}}",
	},
}

// Translator resolves keys for one language.
type Translator struct {
	lang string
}

// New returns a translator for the given language, falling back to the
// default language when the language is unknown.
func New(lang string) *Translator {
	if _, ok := dictionaries[lang]; !ok {
		lang = DefaultLanguage
	}
	return &Translator{lang: lang}
}

// Language returns the language this translator resolves for.
func (t *Translator) Language() string {
	return t.lang
}

// Resolve returns the localized message for key with {{param}} placeholders
// interpolated. Lookup falls back to the default language, then to the raw
// key itself, so a missing entry never fails a mutation.
func (t *Translator) Resolve(key string, params map[string]string) string {
	msg, ok := dictionaries[t.lang][key]
	if !ok {
		msg, ok = dictionaries[DefaultLanguage][key]
	}
	if !ok {
		return key
	}

	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{{"+name+"}}", value)
	}
	return msg
}
