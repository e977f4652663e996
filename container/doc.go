// Package container implements the authenticated request pipeline of
// the Skygear client: it turns a logical API call into one or two HTTP
// exchanges, attaches credential headers, transparently refreshes a
// stale access token and retries exactly once, and decodes the uniform
// response envelope via the skyerr package.
//
// A Container owns the client's access token. The transport, the
// refresh capability, the extra-session-info supplier and the token
// store are all injected collaborators; only the API key and endpoint
// are mandatory.
//
//	c, err := container.New(container.Config{
//	    APIKey:   "api_key",
//	    Endpoint: "https://myapp.skygear.dev",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw, err := c.FetchRaw(ctx, container.Request{
//	    Method:  http.MethodPost,
//	    Path:    "/_auth/me",
//	    Payload: map[string]any{},
//	})
//
// Typed decoding goes through the generic helper:
//
//	user, err := container.Fetch[User](ctx, c, req)
//
// Concurrent calls are not serialized against each other. Two calls
// that both observe a stale-token signal will both invoke the refresh
// capability; making that safe is the refresh capability's contract.
package container
