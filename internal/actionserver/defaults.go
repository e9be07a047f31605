package actionserver

import (
	"context"
	"encoding/json"
	"errors"
)

// DeniedReason is the reason sent by the DeniedAction.
const DeniedReason = "The user must be admin."

type message struct {
	Message string `json:"Message"`
}

// RegisterDefaults registers the demonstration actions.
func RegisterDefaults(d *Dispatcher) {
	hello := func(context.Context, json.RawMessage) (any, error) {
		return message{Message: "Hello world!"}, nil
	}
	notJSON := func(context.Context, json.RawMessage) (any, error) {
		return Raw("This response is not JSON."), nil
	}
	loggedIn := func(context.Context, json.RawMessage) (any, error) {
		return message{Message: "Success"}, nil
	}

	d.Register("Echo", hello)
	d.Register("TestAction0", notJSON)
	d.Register("TestAction1", hello)
	d.Register("TestAction2", notJSON)
	d.Register("TestAction3", func(context.Context, json.RawMessage) (any, error) {
		return struct {
			Explanation string `json:"Explanation"`
		}{Explanation: "You did something wrong."}, nil
	})
	d.Register("TestAction4", loggedIn)
	d.Register("TestAction5", func(context.Context, json.RawMessage) (any, error) {
		return nil, errors.New("User denied: " + DeniedReason)
	})
	d.Register("TestAction6", loggedIn)
	d.Register("TestAction7", func(context.Context, json.RawMessage) (any, error) {
		return struct {
			ActionParameter int `json:"ActionParameter"`
		}{ActionParameter: 42}, nil
	})
	d.Register("TestAction8", func(_ context.Context, data json.RawMessage) (any, error) {
		return struct {
			Data json.RawMessage `json:"data"`
		}{Data: data}, nil
	})
}
