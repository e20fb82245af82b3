// Package moderation implements the pre-flight admission gate. It is a fixed
// literal-term blocklist, not an NLP classifier: disallowed topics phrased
// without the literal terms pass through, which is an accepted limitation.
package moderation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRejected is returned when a message contains a blocked term. It is the
// only error kind that crosses the core boundary; the HTTP layer maps it to a
// client error with RejectionMessage.
var ErrRejected = errors.New("message rejected by moderation")

// RejectionMessage is the fixed, user-facing rationale for a rejection.
const RejectionMessage = "Desculpe, não posso ajudar com esse tipo de assunto. " +
	"Que tal conversarmos sobre os projetos do portfólio?"

// blockedTerms are matched case-insensitively as substrings. The list is
// policy, not mechanism; extending it does not change the contract.
var blockedTerms = []string{
	"senha",
	"hackear",
	"invadir",
	"roubar",
	"cartão de crédito",
	"cartao de credito",
	"golpe",
	"fraude",
	"cpf de",
}

// Gate checks inbound text before any session lookup or provider call, so
// rejected requests incur zero downstream cost.
type Gate struct {
	terms []string
}

// NewGate creates a gate with the default blocklist.
func NewGate() *Gate {
	return &Gate{terms: blockedTerms}
}

// NewGateWithTerms creates a gate with a custom blocklist.
func NewGateWithTerms(terms []string) *Gate {
	return &Gate{terms: terms}
}

// Check returns ErrRejected when text contains any blocked term. It is pure
// and deterministic: the same input always yields the same outcome regardless
// of call order or session state.
func (g *Gate) Check(text string) error {
	lowered := strings.ToLower(text)
	for _, term := range g.terms {
		if strings.Contains(lowered, term) {
			return fmt.Errorf("%w: matched term %q", ErrRejected, term)
		}
	}
	return nil
}
