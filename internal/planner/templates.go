package planner

import (
	"strings"

	"planner/internal/dates"
	"planner/internal/storage"
)

// DefaultTemplateEmoji is used for templates created without an emoji.
const DefaultTemplateEmoji = "📝"

var seedTemplates = map[string][]storage.Template{
	"en": {
		{ID: "tpl_1", Text: "Morning exercise", Emoji: "💪"},
		{ID: "tpl_2", Text: "Read for 30 minutes", Emoji: "📚"},
		{ID: "tpl_3", Text: "Plan the day", Emoji: "📝"},
		{ID: "tpl_4", Text: "Go for a walk", Emoji: "🚶"},
		{ID: "tpl_5", Text: "Learn 10 new words", Emoji: "🧠"},
		{ID: "tpl_6", Text: "Meditate", Emoji: "🧘"},
	},
	"ru": {
		{ID: "tpl_1", Text: "Утренняя зарядка", Emoji: "💪"},
		{ID: "tpl_2", Text: "Чтение 30 минут", Emoji: "📚"},
		{ID: "tpl_3", Text: "Спланировать день", Emoji: "📝"},
		{ID: "tpl_4", Text: "Прогулка", Emoji: "🚶"},
		{ID: "tpl_5", Text: "Выучить 10 слов", Emoji: "🧠"},
		{ID: "tpl_6", Text: "Медитация", Emoji: "🧘"},
	},
}

// DefaultTemplates returns the seed catalog installed on first run.
func DefaultTemplates(locale dates.Locale) []storage.Template {
	seed, ok := seedTemplates[locale.Tag()]
	if !ok {
		seed = seedTemplates["en"]
	}
	return append([]storage.Template(nil), seed...)
}

// Templates returns a copy of the template catalog.
func (p *Planner) Templates() []storage.Template {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]storage.Template(nil), p.templates...)
}

// AddTemplate creates a template. An empty emoji becomes DefaultTemplateEmoji.
func (p *Planner) AddTemplate(text, emoji string) (storage.Template, error) {
	text, emoji, err := cleanText(text, emoji)
	if err != nil {
		return storage.Template{}, err
	}
	if emoji == "" {
		emoji = DefaultTemplateEmoji
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	tpl := storage.Template{ID: p.newID(), Text: text, Emoji: emoji}
	p.templates = append(p.templates, tpl)
	p.notePersist(p.saveTemplates())
	p.log.Debug("template added", "id", tpl.ID)
	return tpl, nil
}

// DeleteTemplate removes a template. Tasks created from it keep their
// FromTemplate reference.
func (p *Planner) DeleteTemplate(id string) error {
	id = strings.TrimSpace(id)

	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.templateIndex(id)
	if i < 0 {
		return notFoundErr("template", id)
	}
	p.templates = append(p.templates[:i:i], p.templates[i+1:]...)
	p.notePersist(p.saveTemplates())
	p.log.Debug("template deleted", "id", id)
	return nil
}

func (p *Planner) templateIndex(id string) int {
	for i := range p.templates {
		if p.templates[i].ID == id {
			return i
		}
	}
	return -1
}
