// Package observability carries opt-in profiling toggles so production
// deploys stay lean by default.
package observability

// Config captures the observability switches wired into the HTTP surface.
type Config struct {
	EnablePprofTrace bool
}
