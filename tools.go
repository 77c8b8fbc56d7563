//go:build tools

// Developer tooling that the build itself never imports.
//
// goose (migrations) is pinned through the go.mod tool directive and
// runs via `go tool goose`. moq (consumer-side interface mocks) is
// go-installed on demand; the generated mocks are committed, so CI
// never needs it.
package tools
