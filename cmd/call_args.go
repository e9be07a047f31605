package cmd

import (
	"time"

	"github.com/isometry/bluews/internal/config"
	"github.com/isometry/bluews/internal/helpers"
)

var callEnvMapString = map[*string]boundEnvVar[string]{
	&config.Client.Address: {
		Name:        "address",
		Description: "Address of the action-dispatch web service",
		Short:       helpers.Ptr("a"),
	},
	&config.Client.AddressSSMKey: {
		Name:        "address-ssm-key",
		Description: "SSM parameter holding the web service address. Takes precedence over --address",
	},
	&config.Client.Method: {
		Name:        "method",
		Description: "HTTP method used to send actions: GET or POST",
		Short:       helpers.Ptr("m"),
	},
	&config.Client.Token: {
		Name:        "token",
		Description: "Bearer token sent with every call",
		Env:         helpers.Ptr("BLUEWS_TOKEN"),
		Hidden:      true,
	},
	&config.Archive.BucketName: {
		Name:        "archive-bucket",
		Description: "S3 bucket receiving the call reports",
	},
}

var callEnvMapBool = map[*bool]boundEnvVar[bool]{
	&config.Client.Throwable: {
		Name:        "throwable",
		Description: "Fail the command on transport and decode failures",
		Short:       helpers.Ptr("t"),
	},
	&config.Archive.Enabled: {
		Name:        "archive",
		Description: "Archive the call report to S3",
	},
	&callPostLogin: {
		Name:        "post-login",
		Description: "Treat 'User denied' replies as a denial instead of a response",
	},
	&callAsync: {
		Name:        "async",
		Description: "Run the call asynchronously and wait for its result",
	},
}

var callEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Client.Timeout: {
		Name:        "timeout",
		Description: "Timeout of the call, 0 disables it",
	},
}
