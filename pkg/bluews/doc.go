// Package bluews is a client for action-dispatch web services.
//
// A WebService describes the endpoint (address, HTTP method and failure policy).
// A Request names an action, carries positional parameters and decodes the
// server response into a typed value:
//
//	ws, err := bluews.NewWebService("https://example.org/api/", bluews.MethodPost)
//	req := bluews.NewRequest[Reply](ws).Add(42)
//	reply, err := req.Call(ctx, "Echo")
//
// The payload always contains the "action" field. With parameters it also
// contains a JSON encoded "data" field: a single parameter is sent as-is, two or
// more are sent as a JSON array in insertion order. Named parameters are sent by
// adding a single map or struct value.
//
// An empty action is replaced by the name of the function calling Call,
// CallAsync or Do, so a method Login may simply call req.Call(ctx, "").
//
// Whatever the policy, the outcome of the last call is available through
// Success, NoNetwork, RawResponse and Response. Failures are only returned by
// Call when the WebService is throwable; Do always returns them.
package bluews
