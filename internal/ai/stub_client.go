package ai

import "context"

// StubPost ответ заглушки. Повторяет структуру настоящего поста.
const StubPost = `Une image vaut mille mots, encore faut-il savoir la lire.
- Le sujet principal est bien identifié
- Le contexte est posé en une phrase
- Le message reste concret
Un post de démonstration, généré sans appel au modèle.
#LinkedIn #PersonalBranding #Demo`

// StubClient заглушка, которая не делает реальных запросов
type StubClient struct{}

func NewStubClient() *StubClient { return &StubClient{} }

func (c *StubClient) SendRequest(_ context.Context, _, _ string) (*string, error) {
	post := StubPost
	return &post, nil
}
