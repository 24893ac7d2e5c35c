package delivery

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/SlavaShagalov/user-list/internal/userlist/usecase"
	"github.com/SlavaShagalov/user-list/internal/userlist/view"
)

// ListRequestDTO carries the only request values the list reads.
type ListRequestDTO struct {
	Role    string
	OrderBy string
	Order   string
	Page    string
}

func (dto ListRequestDTO) RawOptions() usecase.RawOptions {
	return usecase.RawOptions{
		Role:    dto.Role,
		OrderBy: dto.OrderBy,
		Order:   dto.Order,
		Page:    dto.Page,
	}
}

// Apply copies the request values that were sent into form.
func (dto ListRequestDTO) Apply(form *view.Form) {
	form.Set(view.InputRole, dto.Role)
	if dto.OrderBy != "" {
		form.Set(view.InputOrderBy, dto.OrderBy)
	}
	if dto.Order != "" {
		form.Set(view.InputOrder, dto.Order)
	}
	if dto.Page != "" {
		form.Set(view.InputPage, dto.Page)
	}
}

// Sanitize reduces a request value to plain single-line text: markup is
// dropped, control characters removed and whitespace runs collapsed.
func Sanitize(value string) string {
	if value == "" {
		return ""
	}

	if strings.ContainsRune(value, '<') {
		value = stripTags(value)
	}

	value = strings.Map(func(r rune) rune {
		switch {
		case r == unicode.ReplacementChar:
			return -1
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, value)

	return strings.Join(strings.Fields(value), " ")
}

func stripTags(value string) string {
	var sb strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(value))
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.StartTagToken:
			if name, _ := tokenizer.TagName(); isRawText(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := tokenizer.TagName(); isRawText(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				sb.Write(tokenizer.Raw())
			}
		}
	}
}

func isRawText(name []byte) bool {
	tag := string(name)
	return tag == "script" || tag == "style"
}
