package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedTags = []language.Tag{
	language.English,
	language.MustParse("pt-BR"),
}

var tagMatcher = language.NewMatcher(supportedTags)

var translations = map[string]map[string]string{
	"pt-BR": {
		"Username":       "Nome de usuário",
		"First Name":     "Nome",
		"Role":           "Função",
		"Select role...": "Selecione a função...",
		"No users found": "Nenhum usuário encontrado",
		"Administrator":  "Administrador",
		"Editor":         "Editor",
		"Author":         "Autor",
		"Contributor":    "Colaborador",
		"Subscriber":     "Assinante",
		"Users":          "Usuários",
	},
}

func init() {
	for tag, entries := range translations {
		t := language.MustParse(tag)
		for key, value := range entries {
			_ = message.SetString(t, key, value)
		}
	}
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Match resolves a configured language name to the closest supported tag.
func Match(lang string) language.Tag {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return Default()
	}
	parsed, err := language.Parse(lang)
	if err != nil {
		return Default()
	}
	_, index, confidence := tagMatcher.Match(parsed)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Translate looks up a runtime string, such as a role name stored in the database.
// Unknown strings are returned unchanged.
func Translate(p *message.Printer, s string) string {
	if p == nil || s == "" {
		return s
	}
	return p.Sprintf(message.Key(s, strings.ReplaceAll(s, "%", "%%")))
}
