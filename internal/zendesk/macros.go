package zendesk

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/spec-kit/contact-bridge/internal/domain"
)

type macroEnvelope struct {
	Macro domain.Macro `json:"macro"`
}

// GetMacro fetches a macro definition.
func (c *Client) GetMacro(ctx context.Context, macroID string) (*domain.Macro, error) {
	var env macroEnvelope
	err := c.do(ctx, resty.MethodGet, "/macros/{macroID}.json", func(r *resty.Request) {
		r.SetPathParam("macroID", macroID)
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Macro, nil
}
