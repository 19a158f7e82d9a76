package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers with no text at all.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Request is one generation request. Audio, when set, carries a voice message
// alongside the prompt; providers that cannot take audio return an error.
type Request struct {
	Prompt string
	Audio  *Audio
}

type Audio struct {
	Data []byte
	MIME string
}

type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}
