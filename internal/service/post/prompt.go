package post

import (
	"fmt"
	"strings"
)

const promptTemplate = `
Tu es un expert en personal branding LinkedIn.

MISSION :

1. Analyse précisément l’image fournie.
2. Identifie clairement le sujet principal visible.
3. Si c’est un logo ou un outil connu (ex: GitHub, Notion, OpenAI...), explique ce que c’est et son utilité.
4. Si c’est un objet, un robot, une personne ou un concept, explique son rôle et son importance.
5. Base entièrement le post sur le sujet réellement présent dans l’image (pas d’invention).

GÉNÈRE ENSUITE un post LinkedIn en français avec cette structure STRICTE :

- 1 accroche forte (1 seule ligne)
- 3 à 6 bullet points (commençant par "- ")
- 1 mini conclusion (1 à 2 lignes)
- 3 à 6 hashtags maximum

RÈGLES :

- Clair
- Impactant
- Pas trop long
- Emojis optionnels
- Aucun texte hors format demandé

TON :
%s

Le post doit être prêt à copier-coller sur LinkedIn.
`

// BuildPrompt собирает инструкцию для модели. Неизвестный тон даёт ошибку,
// поэтому промпт без установки тона собрать нельзя.
func BuildPrompt(t Tone) (string, error) {
	directive := t.Directive()
	if directive == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTone, string(t))
	}
	return strings.TrimLeft(fmt.Sprintf(promptTemplate, directive), "\n"), nil
}
