package mdstats

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenEncoding is the BPE used for token estimates.
const TokenEncoding = "cl100k_base"

var encoding = sync.OnceValues(func() (*tiktoken.Tiktoken, error) {
	return tiktoken.GetEncoding(TokenEncoding)
})

// CountTokens estimates how many tokens markdown costs an LLM. The encoding
// is loaded on first use, which may need network access.
func CountTokens(markdown string) (int, error) {
	enc, err := encoding()
	if err != nil {
		return 0, fmt.Errorf("failed to get encoding: %v", err)
	}
	return len(enc.Encode(markdown, nil, nil)), nil
}
