package fivehundredpx

import (
	"github.com/rs/zerolog"
)

// Labels passed to a LogFunc
const (
	LabelDefaultParams = "default params"
	LabelRequestParams = "request params"
)

// LogFunc receives diagnostic events. It is called synchronously, twice per
// request, with a copy of the parameters: first the default (credential)
// parameters, then the merged request parameters.
type LogFunc func(label string, payload Params)

// ZerologLogFunc returns a LogFunc that writes each event to logger at debug
// level. The consumer secret is masked in the logged copy.
func ZerologLogFunc(logger zerolog.Logger) LogFunc {
	return func(label string, payload Params) {
		redacted := payload.clone()
		if _, ok := redacted[paramConsumerSecret]; ok {
			redacted[paramConsumerSecret] = "[redacted]"
		}
		logger.Debug().
			Interface("params", map[string]any(redacted)).
			Msg(label)
	}
}

func (c *Client) logMessage(label string, payload Params) {
	if c.logFunc == nil {
		return
	}
	c.logFunc(label, payload.clone())
}
