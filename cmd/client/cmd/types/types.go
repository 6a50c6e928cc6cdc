// Package types holds the context keys shared by the CLI command packages.
package types

type contextKey string

// ClientAppKey carries the *client.App from the root command to subcommands.
const ClientAppKey contextKey = "clientApp"
