// Package i18n translates user-facing API messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when the client states no supported preference.
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator holds messages per locale. It is read-only after construction.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator with the built-in messages.
func NewTranslator() *Translator {
	return &Translator{messages: messages}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to DefaultLocale and
// finally to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// T translates key for the locale requested by c.
func T(c *gin.Context, key string) string {
	return GetTranslator().Translate(key, GetLocale(c))
}

// GetLocale returns the first supported language of the Accept-Language header, in the
// order the client listed them. Region subtags are ignored.
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}

	for _, part := range strings.Split(header, ",") {
		lang, _, _ := strings.Cut(part, ";")
		lang, _, _ = strings.Cut(strings.TrimSpace(lang), "-")
		lang = strings.ToLower(lang)
		if _, ok := messages[lang]; ok {
			return lang
		}
	}
	return DefaultLocale
}

var messages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:      "Invalid request",
		ErrKeyInvalidRequestBody:  "Invalid request body",
		ErrKeyInternalError:       "An unexpected error occurred",
		ErrKeyNotFound:            "Not found",
		ErrKeyTimeout:             "The request took too long to complete",
		ErrKeyServiceUnavailable:  "The request log store is unavailable",
		ErrKeyMissingTargetAmount: "Request body must contain 'target_amount'",
		ErrKeyMissingInvoices:     "Request body must contain a list of 'invoices'",
		ErrKeyAmountOutOfRange:    "An amount is outside the supported range",
		ErrKeyInvalidQuery:        "Invalid query parameters",
		SuccessKeyReconciled:      "Reconciliation completed",
	},
	"pt": {
		ErrKeyInvalidRequest:      "Requisição inválida",
		ErrKeyInvalidRequestBody:  "Corpo da requisição inválido",
		ErrKeyInternalError:       "Ocorreu um erro inesperado",
		ErrKeyNotFound:            "Não encontrado",
		ErrKeyTimeout:             "A requisição demorou demais para ser concluída",
		ErrKeyServiceUnavailable:  "O armazenamento de logs está indisponível",
		ErrKeyMissingTargetAmount: "O corpo da requisição deve conter 'target_amount'",
		ErrKeyMissingInvoices:     "O corpo da requisição deve conter uma lista de 'invoices'",
		ErrKeyAmountOutOfRange:    "Um valor está fora do intervalo suportado",
		ErrKeyInvalidQuery:        "Parâmetros de consulta inválidos",
		SuccessKeyReconciled:      "Conciliação concluída",
	},
	"nl": {
		ErrKeyInvalidRequest:      "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:  "Ongeldige aanvraag body",
		ErrKeyInternalError:       "Er is een onverwachte fout opgetreden",
		ErrKeyNotFound:            "Niet gevonden",
		ErrKeyTimeout:             "Het verzoek duurde te lang",
		ErrKeyServiceUnavailable:  "De opslag voor verzoeklogs is niet beschikbaar",
		ErrKeyMissingTargetAmount: "De aanvraag moet 'target_amount' bevatten",
		ErrKeyMissingInvoices:     "De aanvraag moet een lijst 'invoices' bevatten",
		ErrKeyAmountOutOfRange:    "Een bedrag valt buiten het ondersteunde bereik",
		ErrKeyInvalidQuery:        "Ongeldige queryparameters",
		SuccessKeyReconciled:      "Afstemming voltooid",
	},
}
