package telegram

import (
	"fmt"
	"strings"
	"time"

	"dfo-news-digest/internal/digest/dto"
)

const maxMessageLen = 4090

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// FormatDigestForTelegram formats a digest into Markdown messages,
// splitting into parts so that no message exceeds the Telegram limit.
func FormatDigestForTelegram(d *dto.DigestResponse) []string {
	if d == nil || len(d.Items) == 0 {
		day := ""
		if d != nil {
			day = d.Day
		}
		return []string{fmt.Sprintf("📰 Дайджест ДФО за %s пуст: подходящих новостей нет.", day)}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("📰 *Дайджест ДФО за %s*\n\n", d.Day))
		} else {
			current.WriteString(fmt.Sprintf("---*Дайджест ДФО за %s, часть %d*---\n\n", d.Day, part))
		}
	}
	startNewPart()

	for _, it := range d.Items {
		var entry strings.Builder

		title := it.Title
		if it.TitleShort != nil && *it.TitleShort != "" {
			title = *it.TitleShort
		}
		entry.WriteString(fmt.Sprintf("*%d. %s*\n", it.Rank, escapeMarkdown(title)))

		if it.Bulletin != nil && *it.Bulletin != "" {
			entry.WriteString(escapeMarkdown(*it.Bulletin))
			entry.WriteString("\n")
		}
		if it.InterestScore != nil {
			entry.WriteString(fmt.Sprintf("🎯 Интерес: %d/10\n", *it.InterestScore))
		}
		entry.WriteString(fmt.Sprintf("🔗 %s: %s\n\n", escapeMarkdown(it.SourceName), it.URL))

		s := entry.String()
		if current.Len()+len(s) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(s)
	}

	messages = append(messages, current.String())
	return messages
}

// FormatErrorAlertMessage formats a failed automation run.
func FormatErrorAlertMessage(at time.Time, runID, day, errMsg string) string {
	return fmt.Sprintf(`📛 [AUTOMATION FAILED]
%s
🗓 %s
🔧 run %s
⚠️ %s
`, at.Format("02 Jan 2006 15:04 MST"), day, runID, escapeMarkdown(errMsg))
}

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
