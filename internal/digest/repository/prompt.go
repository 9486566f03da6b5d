package repository

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"dfo-news-digest/internal/digest/dto"
)

const scriptPromptTemplate = `Ты редактор и сценарист ежедневного делового выпуска новостей по Дальнему Востоку РФ. Собери связный сценарий выпуска на дату %s. Дано %d новостей (каждая уже отфильтрована и кратко описана).

Нужно:
1) Приветствие и вступление (intro), 1–2 предложения.
2) %d блоков новостей по rank, у каждого:
   - text: 2–4 предложения для ведущего (можно опираться на bulletin/summary)
   - transition: 1 короткое предложение-переход к следующей новости (для последней можно опустить)
3) Заключение (outro), 1–2 предложения и прощание с аудиторией.

Требования:
- Стиль: %s, без воды, без выдуманных фактов, цифр и компаний.
- Нельзя повторять одно и то же разными словами.
- Упоминай географию ДФО, когда она есть в материале.
- В каждом блоке используй item_id и rank, чтобы сценарий был привязан к данным.
- Числа и даты пиши полными словами с правильными падежами, без цифр.
- Названия на английском пиши транслитом.

Верни СТРОГО JSON без markdown и без лишних полей по схеме:
{"segments": [{"type":"intro","text":"..."}, {"type":"item","rank":1,"item_id":123,"text":"...","transition":"..."}, {"type":"outro","text":"..."}]}

Входные новости:
%s`

// BuildDigestScriptPrompt renders the script-writer prompt for a digest.
func BuildDigestScriptPrompt(req *dto.ScriptRequest) string {
	items := make([]dto.ScriptItem, len(req.Items))
	copy(items, req.Items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Rank < items[j].Rank })

	for i := range items {
		items[i].TitleShort = clip(items[i].TitleShort, 120)
		items[i].Bulletin = clip(items[i].Bulletin, 700)
		items[i].Summary = clip(items[i].Summary, 1200)
		items[i].Why = clip(items[i].Why, 500)
		items[i].SourceName = clip(items[i].SourceName, 120)
		items[i].URL = clip(items[i].URL, 600)
	}

	tone := req.Tone
	if tone == "" {
		tone = "деловой"
	}

	pack, _ := json.Marshal(items)
	return fmt.Sprintf(scriptPromptTemplate, req.Day, len(items), len(items), tone, string(pack))
}

// ParseScriptResponse extracts and normalizes the segments of a provider answer.
func ParseScriptResponse(model, raw string) (*dto.ScriptResult, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")
	raw = strings.TrimPrefix(raw, "json")
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	var payload struct {
		Segments []struct {
			Type       string      `json:"type"`
			Rank       json.Number `json:"rank"`
			ItemID     json.Number `json:"item_id"`
			Text       string      `json:"text"`
			Transition *string     `json:"transition"`
		} `json:"segments"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal digest script: %w", err)
	}

	result := &dto.ScriptResult{Model: model}
	for _, s := range payload.Segments {
		kind := strings.TrimSpace(s.Type)
		if kind != dto.SegmentIntro && kind != dto.SegmentItem && kind != dto.SegmentOutro {
			continue
		}
		seg := dto.ScriptSegment{Type: kind, Text: strings.TrimSpace(s.Text)}
		if seg.Text == "" {
			continue
		}
		if kind == dto.SegmentItem {
			if n, err := s.Rank.Int64(); err == nil {
				seg.Rank = int(n)
			}
			if n, err := s.ItemID.Int64(); err == nil && n > 0 {
				seg.ItemID = uint(n)
			}
			if s.Transition != nil {
				seg.Transition = strings.TrimSpace(*s.Transition)
			}
		}
		result.Segments = append(result.Segments, seg)
	}

	if len(result.Segments) == 0 {
		return nil, fmt.Errorf("digest script has no usable segments")
	}
	return result, nil
}

func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
