//go:build tools

package tools

// mockery v3 runs as an installed binary and reads .mockery.yml.
// Regenerate pkg/configurator/mocks with: mockery
