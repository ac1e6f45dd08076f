package post

import (
	"fmt"
	"slices"
)

// Tone стилистическая установка поста.
type Tone string

const (
	ToneProfessional Tone = "pro"
	ToneStorytelling Tone = "storytelling"
	ToneHumour       Tone = "humour"
)

var tones = []Tone{ToneProfessional, ToneStorytelling, ToneHumour}

// Tones возвращает все допустимые тона в порядке показа в UI.
func Tones() []Tone { return slices.Clone(tones) }

// ParseTone возвращает ErrInvalidTone для идентификатора вне набора.
func ParseTone(s string) (Tone, error) {
	t := Tone(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTone, s)
	}
	return t, nil
}

func (t Tone) Valid() bool { return slices.Contains(tones, t) }

// Directive инструкция для модели. Для каждого тона из Tones() она непустая.
func (t Tone) Directive() string {
	switch t {
	case ToneProfessional:
		return "Adopte un ton professionnel, structuré et crédible."
	case ToneStorytelling:
		return "Adopte un ton storytelling, inspirant et engageant."
	case ToneHumour:
		return "Adopte un ton professionnel avec une légère touche d’humour."
	default:
		return ""
	}
}

// Label подпись варианта в выпадающем списке.
func (t Tone) Label() string {
	switch t {
	case ToneProfessional:
		return "💼 Professionnel & Expert"
	case ToneStorytelling:
		return "📖 Storytelling & Inspirant"
	case ToneHumour:
		return "🎉 Humour & Décontracté"
	default:
		return string(t)
	}
}

func (t Tone) String() string { return string(t) }

func init() {
	for _, t := range tones {
		if t.Directive() == "" {
			panic(fmt.Sprintf("post: tone %q has no directive", t))
		}
	}
}
