// Package fivehundredpx provides a client for the public (consumer key only)
// endpoints of the 500px REST API.
//
// The client builds request URLs of the form
// https://api.500px.com/v<version>/<endpoint>, attaches the consumer key and
// secret to every call, and returns the decoded JSON body. It does not handle
// OAuth, pagination or retries.
//
// # Usage
//
//	client, err := fivehundredpx.New(fivehundredpx.Config{
//		Key:    "your-consumer-key",
//		Secret: "your-consumer-secret",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Get(ctx, "photos/search", fivehundredpx.Params{
//		"term": "mountains",
//		"tag":  "landscape,nature",
//		"rpp":  40,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(resp.Get("photos.#.name"))
//
// # Diagnostics
//
// A LogFunc set on Config receives the default parameters and the merged
// request parameters before every request. ZerologLogFunc adapts a
// zerolog.Logger to that hook.
//
// # Error Handling
//
// Every failure is returned as an *APIError. Its Kind tells configuration,
// transport, parse and response errors apart, and the sentinels ErrConfig,
// ErrTransport, ErrParse and ErrResponse can be matched with errors.Is:
//
//	if errors.Is(err, fivehundredpx.ErrResponse) {
//		var apiErr *fivehundredpx.APIError
//		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//			// Handle missing resource
//		}
//	}
package fivehundredpx
