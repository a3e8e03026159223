// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// The application core (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (HTTP, file system, zerolog, the system clock).
//
// # Port Interfaces
//
//   - [BoardSender]: transmits grids and fallback text to the board endpoint
//   - [CacheRepository]: persists and loads dispatch cache records
//   - [ContentSource]: resolves a content identity into source lines
//   - [Clock]: time source, injectable for deterministic rate-gate tests
//   - [Logger]: structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// This separation keeps the dispatch protocol testable with fakes and keeps
// the core's test suite independent of the physical board and of any
// third-party page structure upstream.
package ports
