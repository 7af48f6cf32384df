package llm

import "fmt"

// NoFunctionCallError indicates the provider replied successfully but the
// response did not contain the expected tool-call envelope. RawText carries
// whatever plain text came back, for debug snippets.
type NoFunctionCallError struct {
	Reason  string
	RawText string
}

func (e *NoFunctionCallError) Error() string {
	return fmt.Sprintf("malformed provider response: %s", e.Reason)
}
