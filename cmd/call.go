package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/pxpub/fivehundredpx"
)

var (
	callParams      []string
	callMethod      string
	callSelect      string
	callConcurrency int
)

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call ENDPOINT [ENDPOINT...]",
	Short: "Call API endpoints and print the JSON response",
	Long: `Call one or more 500px API endpoints with the given parameters and print each
response body. Several endpoints are requested concurrently and printed in the
order given.`,
	Example: `  pxpub call photos/search -p term=mountains -p rpp=10
  pxpub call photos -p feature=popular --select 'photos.#.name'
  pxpub call photos/4928401 users/show -p id=1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringArrayVarP(&callParams, "param", "p", nil, "request parameter as key=value (repeat a key to send a list)")
	callCmd.Flags().StringVarP(&callMethod, "method", "X", "GET", "HTTP method (GET or POST)")
	callCmd.Flags().StringVar(&callSelect, "select", "", "gjson path to print instead of the whole body")
	callCmd.Flags().IntVar(&callConcurrency, "concurrency", 4, "maximum number of concurrent requests")
}

// caller is the subset of the client used by the call command
type caller interface {
	Call(ctx context.Context, endpoint string, params fivehundredpx.Params, method string) (*fivehundredpx.Response, error)
}

func runCall(cmd *cobra.Command, args []string) error {
	params, err := parseParams(callParams)
	if err != nil {
		return err
	}

	results, err := callEndpoints(cmd.Context(), client, args, params, callMethod, callConcurrency)
	if err != nil {
		return err
	}

	for i, resp := range results {
		out, err := formatResponse(resp, callSelect)
		if err != nil {
			return fmt.Errorf("%s: %w", args[i], err)
		}
		if len(results) > 1 {
			fmt.Printf("# %s\n", args[i])
		}
		fmt.Println(out)
	}

	return nil
}

// parseParams turns key=value pairs into request parameters.
// A key given more than once becomes a list.
func parseParams(pairs []string) (fivehundredpx.Params, error) {
	params := make(fivehundredpx.Params, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", pair)
		}

		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{existing, value}
		case []string:
			params[key] = append(existing, value)
		}
	}
	return params, nil
}

// callEndpoints requests every endpoint with at most limit requests in flight.
// Results are returned in endpoint order; the first failure cancels the rest.
func callEndpoints(ctx context.Context, api caller, endpoints []string, params fivehundredpx.Params, method string, limit int) ([]*fivehundredpx.Response, error) {
	results := make([]*fivehundredpx.Response, len(endpoints))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, endpoint := range endpoints {
		g.Go(func() error {
			logger.Debug().Str("endpoint", endpoint).Str("method", method).Msg("Calling 500px API")

			resp, err := api.Call(ctx, endpoint, params, method)
			if err != nil {
				return fmt.Errorf("%s: %w", endpoint, err)
			}
			results[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// formatResponse renders the body, or the value at a gjson path, as indented JSON
func formatResponse(resp *fivehundredpx.Response, path string) (string, error) {
	raw := []byte(resp.Raw)
	if path != "" {
		result := resp.Get(path)
		if !result.Exists() {
			return "", fmt.Errorf("path %q not found in response", path)
		}
		if !result.IsObject() && !result.IsArray() {
			return result.String(), nil
		}
		raw = []byte(result.Raw)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format response: %w", err)
	}
	return buf.String(), nil
}
