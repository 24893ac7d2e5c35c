package view

import "github.com/SlavaShagalov/user-list/internal/models"

type LinkKind int

const (
	LinkNumber LinkKind = iota
	LinkFirst
	LinkPrevious
	LinkNext
	LinkLast
)

type PageLink struct {
	Kind LinkKind
	Page int
	// Current links render as plain text.
	Current bool
}

// Window builds the pagination strip for page: first and previous links when
// page > 1, the numbers within five pages of page, next and last links when
// page is before the last page.
func Window(page, total, pageLength int) []PageLink {
	if page < 1 {
		page = 1
	}
	last := models.MaxPage(total, pageLength)

	links := make([]PageLink, 0, 15)
	add := func(kind LinkKind, number int) {
		links = append(links, PageLink{Kind: kind, Page: number, Current: number == page})
	}

	if page > 1 {
		add(LinkFirst, 1)
		add(LinkPrevious, page-1)
	}

	for i := max(1, page-5); i <= min(last, page+5); i++ {
		add(LinkNumber, i)
	}

	if page < last {
		add(LinkNext, page+1)
		add(LinkLast, last)
	}

	return links
}

func (l Labels) text(link PageLink) string {
	switch link.Kind {
	case LinkFirst:
		return l.First
	case LinkPrevious:
		return l.Previous
	case LinkNext:
		return l.Next
	case LinkLast:
		return l.Last
	default:
		return itoa(link.Page)
	}
}
